package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/aimcli/aim/internal/pkg/config"
	apperrors "github.com/aimcli/aim/internal/pkg/errors"
)

// setupValues holds the fields edited by the interactive form.
type setupValues struct {
	apiKey     string
	endpoint   string
	model      string
	autoCommit bool
}

func newSetupValues(cfg *config.Config) *setupValues {
	return &setupValues{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.APIEndpoint,
		model:      cfg.Model,
		autoCommit: cfg.AutoCommit,
	}
}

// apply copies the edited fields onto cfg. Other settings are kept.
func (v *setupValues) apply(cfg *config.Config) {
	cfg.APIKey = strings.TrimSpace(v.apiKey)
	cfg.APIEndpoint = strings.TrimSpace(v.endpoint)
	cfg.Model = strings.TrimSpace(v.model)
	cfg.AutoCommit = v.autoCommit
}

func validateAPIKey(s string) error {
	if len(strings.TrimSpace(s)) < 5 {
		return fmt.Errorf("api key too short")
	}
	return nil
}

func validateEndpoint(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http(s) URL")
	}
	return nil
}

func validateModel(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("model name cannot be empty")
	}
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API Key").
				Description("OpenAI-compatible API key").
				Value(&v.apiKey).
				Password(true).
				Validate(validateAPIKey),
			huh.NewInput().
				Title("API Endpoint").
				Description("Base URL of the chat-completion API").
				Value(&v.endpoint).
				Validate(validateEndpoint),
			huh.NewInput().
				Title("Model Name").
				Description("Model to use").
				Value(&v.model).
				Validate(validateModel),
			huh.NewConfirm().
				Title("Commit automatically?").
				Value(&v.autoCommit),
		),
	)
}

// runForm runs a form on the terminal. Replaced in tests.
var runForm = func(f *huh.Form) error { return f.Run() }

// RunInteractiveSetup prompts for the connection settings and saves them.
// The form starts from the file contents; AIM_ variables are never saved.
func RunInteractiveSetup(store config.Manager, p *Printer) error {
	cfg, err := store.LoadFile()
	if err != nil {
		return err
	}

	values := newSetupValues(cfg)
	if err := runForm(newSetupForm(values)); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return apperrors.NewCancelledError(err)
		}
		return err
	}

	values.apply(cfg)
	if err := store.Save(cfg); err != nil {
		return err
	}

	p.Success("Configuration saved to %s", store.GetConfigPath())
	return nil
}
