package config

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/aimcli/aim/internal/pkg/errors"
)

// Format renders cfg as aligned "key: value" lines keyed by the --set names.
// The API key is masked.
func Format(cfg *Config) string {
	apiKey := "(not set)"
	if cfg.APIKey != "" {
		apiKey = apperrors.MaskAPIKey(cfg.APIKey)
	}

	rows := [][2]string{
		{"apikey", apiKey},
		{"apiendpoint", cfg.APIEndpoint},
		{"model", cfg.Model},
		{"autocommit", fmt.Sprintf("%t", cfg.AutoCommit)},
		{"maxsubjectlength", fmt.Sprintf("%d", cfg.MaxSubjectLength)},
		{"diffnameonly", fmt.Sprintf("%t", cfg.DiffNameOnly)},
	}

	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "  %-17s %s\n", row[0]+":", row[1])
	}
	return sb.String()
}

// Show loads the current configuration and writes it to w.
func (m *ViperManager) Show(w io.Writer) error {
	cfg, err := m.Load()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Configuration (%s):\n", m.configPath)
	fmt.Fprint(w, Format(cfg))
	return nil
}
