// Command baseline runs rule-based baseline agents on recorded energy
// traces and audits the legacy battery rule.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/energybaselines/internal/config"

	// Register the baseline agent types
	_ "github.com/samuelfneumann/energybaselines/agent/baseline/battery"
	_ "github.com/samuelfneumann/energybaselines/agent/baseline/dispatch"
	_ "github.com/samuelfneumann/energybaselines/agent/baseline/flex"
)

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "baseline",
		Short: "Rule-based baseline agents for energy environments",
		Long: `Runs hand-written baseline agents on recorded energy traces.

Agents are configured by a JSON experiment document. Runner settings
are read from flags, a settings file given by --config, and BASELINE_*
environment variables.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().String("config", "", "Settings file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", config.Default().LogLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCmd(), newAuditCmd())
	return rootCmd
}

// loadConfig reads the runner settings of cmd
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	if err := config.Bind(v, cmd.Flags()); err != nil {
		return nil, err
	}

	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(v, file)
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
