package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/bakelabs/bake/internal/bakefile"
	"github.com/bakelabs/bake/internal/resolve"
	"github.com/charmbracelet/lipgloss"
)

var (
	taskNameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	depListStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle   = lipgloss.NewStyle().Bold(true)
	abortedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// printTaskList renders the registered tasks in document order, each with
// its declared dependency tokens.
func printTaskList(w io.Writer, doc *bakefile.Bakefile) {
	names := doc.TaskNames()
	if len(names) == 0 {
		fmt.Fprintf(w, "No tasks in %s.\n", doc.Path())
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Tasks in %s:", doc.Path())))
	registry := doc.Tasks()
	for _, name := range names {
		line := "  " + taskNameStyle.Render(name)
		if deps := registry[name].DependencyTokens(); len(deps) > 0 {
			line += " " + depListStyle.Render(strings.Join(deps, " "))
		}
		fmt.Fprintln(w, line)
	}
}

// printActionHeader announces the action about to run.
func printActionHeader(w io.Writer, action resolve.Action) {
	marker := "+"
	if !resolve.IsTask(action) {
		marker = "@"
	}
	fmt.Fprintf(w, "%s %s\n", marker, taskNameStyle.Render(action.Name()))
}

func renderAborted() string {
	return abortedStyle.Render("Aborted.")
}
