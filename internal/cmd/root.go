// Package cmd wires the bake command-line surface: document discovery,
// dependency resolution, and the sequential execution of resolved actions.
package cmd

import (
	"strings"

	"github.com/bakelabs/bake/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "bake [task] [args...]",
	Short: "Run tasks from the nearest Bashfile",
	Long: `Bake runs named tasks declared in a Bashfile. A task's dependency list
is resolved into an ordered set of actions (other tasks and inline
filters such as @confirm), and each action runs as an isolated bash
process. Extra arguments after the task name are passed to the script.

Without arguments, bake lists the available tasks.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagList        bool
	flagSilent      bool
	flagYes         bool
	flagNoDeps      bool
	flagDebug       bool
	flagLegacyOrder bool
	flagEnviron     string
	flagFile        string
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolVarP(&flagList, "list", "l", false, "list available tasks")
	rootCmd.Flags().BoolVarP(&flagSilent, "silent", "s", false, "do not indent task output")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "auto-confirm all confirmation filters")
	rootCmd.Flags().BoolVar(&flagNoDeps, "no-deps", false, "run only the named task, skipping its dependencies")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "print each composed shell invocation")
	rootCmd.Flags().BoolVar(&flagLegacyOrder, "legacy-order", false, "use the historical cycle-blind dependency ordering")
	rootCmd.Flags().StringVarP(&flagEnviron, "environ", "e", "", "environment overlay: inline JSON or a path to a JSON file")
	rootCmd.Flags().StringVarP(&flagFile, "file", "f", "", "task document to use instead of searching for one")

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/bake/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/bake")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BAKE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., BAKE_DOCUMENT_FILENAME for document.filename
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
