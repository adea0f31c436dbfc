// Package cmd contains the CLI command definitions for aim.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aimcli/aim/internal/pkg/config"
	apperrors "github.com/aimcli/aim/internal/pkg/errors"
)

// NewRootCmd creates the root command for the aim CLI.
func NewRootCmd(version, commitHash, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aim",
		Short: "AI-generated git commit messages",
		Long: `aim sends your staged git diff to an OpenAI-compatible chat-completion
endpoint and prints the suggested commit message, or commits with it directly.

Get started:
  aim config --set apikey=sk-...
  git add -p
  aim commit`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			apperrors.SetOutput(cmd.ErrOrStderr())
			apperrors.SetVerbose(verbose)
		},
	}

	// Set version template
	rootCmd.SetVersionTemplate(`aim {{.Version}}
Commit: ` + commitHash + `
Built:  ` + date + "\n")

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: ~/.aim/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewCommitCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

// configStore builds the configuration store honoring --config.
func configStore(cmd *cobra.Command) (*config.ViperManager, error) {
	configPath, _ := cmd.Flags().GetString("config")
	store, err := config.NewManager(configPath)
	if err != nil {
		return nil, apperrors.NewConfigIOError(err, "Failed to locate configuration file")
	}
	if configPath != "" {
		apperrors.Debug("Using custom config path: %s", configPath)
	}
	return store, nil
}
