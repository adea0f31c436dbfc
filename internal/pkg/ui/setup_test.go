package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimcli/aim/internal/pkg/config"
	apperrors "github.com/aimcli/aim/internal/pkg/errors"
)

// The huh form itself needs a TTY; these tests cover the logic around it
// with runForm stubbed.

func TestValidateAPIKey(t *testing.T) {
	assert.Error(t, validateAPIKey("123"))
	assert.Error(t, validateAPIKey("   1234  "))
	assert.NoError(t, validateAPIKey("12345"))
	assert.NoError(t, validateAPIKey("sk-longer_key_value"))
}

func TestValidateEndpoint(t *testing.T) {
	assert.NoError(t, validateEndpoint("https://api.openai.com/v1"))
	assert.NoError(t, validateEndpoint("http://localhost:11434/v1"))
	assert.Error(t, validateEndpoint("api.openai.com"))
	assert.Error(t, validateEndpoint("ftp://host/v1"))
	assert.Error(t, validateEndpoint(""))
}

func TestValidateModel(t *testing.T) {
	assert.NoError(t, validateModel("gpt-4o-mini"))
	assert.Error(t, validateModel("  "))
}

func TestSetupValues_Apply(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSubjectLength = 72
	cfg.DiffNameOnly = true

	v := newSetupValues(cfg)
	assert.Equal(t, config.DefaultModel, v.model)
	assert.Equal(t, config.DefaultAPIEndpoint, v.endpoint)

	v.apiKey = "  sk-new-key  "
	v.endpoint = "http://localhost:8080/v1 "
	v.model = "llama3"
	v.autoCommit = true
	v.apply(cfg)

	assert.Equal(t, "sk-new-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.APIEndpoint)
	assert.Equal(t, "llama3", cfg.Model)
	assert.True(t, cfg.AutoCommit)
	assert.Equal(t, 72, cfg.MaxSubjectLength)
	assert.True(t, cfg.DiffNameOnly)
}

func TestNewSetupForm(t *testing.T) {
	form := newSetupForm(newSetupValues(config.Default()))
	assert.NotNil(t, form)
}

// stubForm replaces runForm for the duration of the test.
func stubForm(t *testing.T, fn func(*huh.Form) error) {
	t.Helper()
	orig := runForm
	runForm = fn
	t.Cleanup(func() { runForm = orig })
}

func newFileStore(t *testing.T) *config.ViperManager {
	t.Helper()
	for _, name := range []string{
		"AIM_API_KEY", "AIM_API_ENDPOINT", "AIM_MODEL",
		"AIM_AUTO_COMMIT", "AIM_MAX_SUBJECT_LENGTH", "AIM_DIFF_NAME_ONLY",
	} {
		t.Setenv(name, "")
	}
	store, err := config.NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	return store
}

func TestRunInteractiveSetup_SavesFormValues(t *testing.T) {
	store := newFileStore(t)
	stubForm(t, func(*huh.Form) error { return nil })

	var out bytes.Buffer
	require.NoError(t, RunInteractiveSetup(store, NewPrinter(&out)))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Contains(t, out.String(), "✓ Configuration saved to "+store.GetConfigPath())
}

func TestRunInteractiveSetup_DoesNotPersistEnvironment(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, store.Set("model", "file-model"))

	t.Setenv("AIM_API_KEY", "sk-from-env-0000000000")
	t.Setenv("AIM_MODEL", "env-model")

	stubForm(t, func(*huh.Form) error { return nil })

	require.NoError(t, RunInteractiveSetup(store, NewPrinter(&bytes.Buffer{})))

	data, err := os.ReadFile(store.GetConfigPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-from-env")
	assert.NotContains(t, string(data), "env-model")
	assert.Contains(t, string(data), "model: file-model")
}

func TestRunInteractiveSetup_AbortIsCancellation(t *testing.T) {
	store := newFileStore(t)
	stubForm(t, func(*huh.Form) error { return huh.ErrUserAborted })

	err := RunInteractiveSetup(store, NewPrinter(&bytes.Buffer{}))

	require.Error(t, err)
	assert.True(t, apperrors.IsCancelled(err))
	assert.NoFileExists(t, store.GetConfigPath())
}

func TestRunInteractiveSetup_FormError(t *testing.T) {
	store := newFileStore(t)
	boom := errors.New("no tty")
	stubForm(t, func(*huh.Form) error { return boom })

	err := RunInteractiveSetup(store, NewPrinter(&bytes.Buffer{}))

	assert.ErrorIs(t, err, boom)
	assert.False(t, apperrors.IsAppError(err))
}
