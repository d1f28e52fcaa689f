package bakefile

import (
	"fmt"
	"strings"

	"github.com/bakelabs/bake/internal/errors"
)

// indentPrefixes are the recognized body indentation styles: exactly one tab
// or exactly four spaces. A body line carrying one of these prefixes is part
// of the task script; any other body line is dropped from the script.
var indentPrefixes = []string{"\t", "    "}

// Task is a named executable unit backed by one document chunk. A Task never
// owns its chunk; it references the owning Bakefile and a chunk index.
type Task struct {
	doc        *Bakefile
	chunkIndex int
}

// NewTask constructs a Task over the chunk at index i. Constructing a task
// without a backing chunk is a programming error and fails immediately with
// errors.ErrNoBackingChunk.
func NewTask(doc *Bakefile, i int) (*Task, error) {
	if doc == nil || i < 0 || i >= len(doc.chunks) {
		return nil, fmt.Errorf("chunk index %d: %w", i, errors.ErrNoBackingChunk)
	}
	return &Task{doc: doc, chunkIndex: i}, nil
}

// Name returns the task name from its declaration line.
func (t *Task) Name() string {
	return t.chunk().Name()
}

// Bakefile returns the owning document.
func (t *Task) Bakefile() *Bakefile {
	return t.doc
}

// ChunkIndex returns the index of the backing chunk in the document.
func (t *Task) ChunkIndex() int {
	return t.chunkIndex
}

func (t *Task) chunk() Chunk {
	return t.doc.chunks[t.chunkIndex]
}

// DeclarationLine returns the header line of the backing chunk.
func (t *Task) DeclarationLine() string {
	return t.chunk().Header()
}

// DependencyTokens returns the whitespace-separated tokens after the first
// colon of the declaration line. Tokens are returned in header order; an
// empty dependency list yields nil.
func (t *Task) DependencyTokens() []string {
	_, rest, ok := strings.Cut(t.DeclarationLine(), ":")
	if !ok {
		return nil
	}
	return strings.Fields(rest)
}

// Script returns the task's derived script text: body lines that begin with
// a recognized indent prefix, with that prefix stripped, newline-joined in
// order. Body lines without a recognized prefix are dropped, as are lines
// that are empty once the prefix is stripped.
func (t *Task) Script() string {
	var lines []string
	for _, line := range t.chunk().Lines[1:] {
		stripped, ok := stripIndent(line)
		if ok && stripped != "" {
			lines = append(lines, stripped)
		}
	}
	return strings.Join(lines, "\n")
}

// stripIndent removes the first recognized indent prefix from line.
func stripIndent(line string) (string, bool) {
	for _, prefix := range indentPrefixes {
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):], true
		}
	}
	return "", false
}

func (t *Task) String() string {
	return fmt.Sprintf("<Task %s>", t.Name())
}
