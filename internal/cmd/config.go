package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aimcli/aim/internal/pkg/config"
	apperrors "github.com/aimcli/aim/internal/pkg/errors"
	"github.com/aimcli/aim/internal/pkg/ui"
)

// ConfigFlags holds the flags for the config command.
type ConfigFlags struct {
	Show        bool
	Set         string
	SetChanged  bool
	Reset       bool
	Interactive bool
}

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	flags := &ConfigFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change aim configuration",
		Long: `Show or change aim configuration.

Configuration is stored in ~/.aim/config.yaml by default. Environment
variables (AIM_API_KEY, AIM_API_ENDPOINT, AIM_MODEL, AIM_AUTO_COMMIT,
AIM_MAX_SUBJECT_LENGTH, AIM_DIFF_NAME_ONLY) override the file.

Keys: apikey, apiendpoint, model, autocommit, maxsubjectlength, diffnameonly

Examples:
  aim config                           # Show current settings
  aim config --set apikey=sk-xxx
  aim config --set maxsubjectlength=72
  aim config --reset
  aim config --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.SetChanged = cmd.Flags().Changed("set")

			store, err := configStore(cmd)
			if err != nil {
				return err
			}
			return runConfig(store, ui.NewPrinter(cmd.OutOrStdout()), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Show, "show", false, "Show current configuration")
	cmd.Flags().StringVar(&flags.Set, "set", "", "Set a value (key=value)")
	cmd.Flags().BoolVar(&flags.Reset, "reset", false, "Reset configuration to defaults")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Edit connection settings in a form")
	cmd.MarkFlagsMutuallyExclusive("show", "set", "reset", "interactive")

	return cmd
}

// runConfig dispatches on the config flags. With no flag it shows the configuration.
func runConfig(store config.Manager, p *ui.Printer, flags *ConfigFlags) error {
	switch {
	case flags.Reset:
		if err := store.Reset(); err != nil {
			return apperrors.NewConfigIOError(err, "Failed to reset configuration")
		}
		p.Success("Configuration reset to defaults")
		return nil

	case flags.SetChanged || flags.Set != "":
		return runConfigSet(store, p, flags.Set)

	case flags.Interactive:
		if err := ui.RunInteractiveSetup(store, p); err != nil {
			if apperrors.IsAppError(err) {
				return err
			}
			return apperrors.NewConfigIOError(err, "Interactive setup failed")
		}
		return nil

	default:
		if err := store.Show(p.Writer()); err != nil {
			return apperrors.NewConfigIOError(err, "Failed to read configuration")
		}
		return nil
	}
}

func runConfigSet(store config.Manager, p *ui.Printer, assignment string) error {
	key, value, err := config.ParseAssignment(assignment)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidArguments, "Invalid format. Use: --set key=value")
	}

	if !config.IsValidKey(key) {
		return apperrors.NewInvalidConfigError(fmt.Sprintf("Unknown configuration key: %s", key)).
			WithSuggestion("Valid keys: " + strings.Join(config.Keys(), ", "))
	}

	if err := store.Set(key, value); err != nil {
		if errors.Is(err, config.ErrInvalidValue) {
			return apperrors.NewInvalidConfigError(err.Error())
		}
		return apperrors.NewConfigIOError(err, "Failed to save configuration")
	}

	display := value
	if strings.EqualFold(key, "apikey") && value != "" {
		display = apperrors.MaskAPIKey(value)
	}
	p.Success("Set %s = %s", key, display)
	return nil
}
