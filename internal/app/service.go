// Package app contains the application layer with business orchestration logic.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aimcli/aim/internal/pkg/ai"
	"github.com/aimcli/aim/internal/pkg/config"
	apperrors "github.com/aimcli/aim/internal/pkg/errors"
	"github.com/aimcli/aim/internal/pkg/message"
	"github.com/aimcli/aim/internal/pkg/ui"
)

// SeparatorWidth is the width of the dashed lines framing the generated message.
const SeparatorWidth = 60

var separator = strings.Repeat("-", SeparatorWidth)

// GitClient is the subset of git operations the commit workflow uses.
type GitClient interface {
	StagedDiff(ctx context.Context, nameOnly bool) (string, error)
	LastCommitDiff(ctx context.Context, nameOnly bool) (string, error)
	Add(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string, amend, stageAll bool) error
}

// CommitOptions contains options for the commit workflow.
type CommitOptions struct {
	// All stages the working tree before collecting the diff.
	All bool
	// Amend targets the message at rewriting HEAD.
	Amend bool
}

// CommitService orchestrates the commit message generation workflow.
type CommitService struct {
	gitClient  GitClient
	completer  ai.Completer
	store      config.Manager
	newSpinner ui.SpinnerFactory
	out        *ui.Printer
	errOut     *ui.Printer
}

// NewCommitService creates a new CommitService with the given dependencies.
// A nil spinner factory disables the progress animation.
func NewCommitService(
	gitClient GitClient,
	completer ai.Completer,
	store config.Manager,
	spinners ui.SpinnerFactory,
	out io.Writer,
	errOut io.Writer,
) *CommitService {
	if spinners == nil {
		spinners = ui.NewSpinnerFactory(io.Discard)
	}
	return &CommitService{
		gitClient:  gitClient,
		completer:  completer,
		store:      store,
		newSpinner: spinners,
		out:        ui.NewPrinter(out),
		errOut:     ui.NewPrinter(errOut),
	}
}

// GenerateAndCommit runs the workflow: stage → load config → collect diff →
// validate → build prompt → complete → emit or commit. It stops at the first failure.
func (s *CommitService) GenerateAndCommit(ctx context.Context, opts *CommitOptions) error {
	if opts == nil {
		opts = &CommitOptions{}
	}

	// Step 1: Stage everything. A failed add is reported but not fatal.
	if opts.All {
		if err := s.gitClient.Add(ctx); err != nil {
			if apperrors.IsCancelled(err) {
				return err
			}
			apperrors.Warn("git add failed: %v", err)
			s.errOut.Warning("staging failed, continuing with the current index")
		}
	}

	// Step 2: Load config
	cfg, err := s.store.Load()
	if err != nil {
		return apperrors.NewConfigIOError(err, "Failed to load configuration")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return apperrors.NewMissingAPIKeyError()
	}

	// Step 3-4: Collect and validate the diff
	diff, err := s.collectDiff(ctx, cfg, opts.Amend)
	if err != nil {
		return err
	}
	if strings.TrimSpace(diff) == "" {
		return apperrors.NewNoChangesError()
	}

	// Step 5-6: Prompt and completion
	s.out.Println("Generating commit message...")
	msg, err := s.complete(ctx, cfg, ai.BuildPrompt(diff, cfg.MaxSubjectLength))
	if err != nil {
		return err
	}

	// Step 7: Emit
	s.display(msg, cfg.MaxSubjectLength)

	if cfg.AutoCommit {
		s.out.Println()
		return s.gitClient.Commit(ctx, msg, opts.Amend, true)
	}

	amendFlag := ""
	if opts.Amend {
		amendFlag = "--amend "
	}
	s.out.Println()
	s.out.Println(fmt.Sprintf("To use: git commit %s-m \"%s\"", amendFlag, msg))
	s.out.Info("Or run: aim config --set autocommit=true")
	return nil
}

// collectDiff returns the staged diff, followed by the HEAD patch when amending.
// Only a failure of the staged diff is fatal.
func (s *CommitService) collectDiff(ctx context.Context, cfg *config.Config, amend bool) (string, error) {
	diff, err := s.gitClient.StagedDiff(ctx, cfg.DiffNameOnly)
	if err != nil {
		return "", err
	}

	if amend {
		last, err := s.gitClient.LastCommitDiff(ctx, cfg.DiffNameOnly)
		if err != nil {
			if apperrors.IsCancelled(err) {
				return "", err
			}
			apperrors.Warn("could not read the last commit: %v", err)
		}
		diff += last
	}

	apperrors.Debug("collected diff: %d bytes (amend=%t, name_only=%t)", len(diff), amend, cfg.DiffNameOnly)
	return diff, nil
}

// complete asks the model for a message while a spinner runs.
func (s *CommitService) complete(ctx context.Context, cfg *config.Config, prompt string) (string, error) {
	spinner := s.newSpinner(fmt.Sprintf("Waiting for %s...", cfg.Model))
	spinner.Start()
	text, err := s.completer.Complete(ctx, ai.Request{
		Prompt:   prompt,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
		Endpoint: cfg.APIEndpoint,
	})
	spinner.Stop()

	if err != nil {
		if apperrors.IsAppError(err) {
			return "", err
		}
		if apperrors.IsCancelled(err) {
			return "", apperrors.NewCancelledError(err)
		}
		return "", apperrors.NewCompletionError(err)
	}

	msg := strings.TrimSpace(text)
	if msg == "" {
		return "", apperrors.NewEmptyMessageError()
	}
	return msg, nil
}

// display prints the framed message and any advisory warnings.
func (s *CommitService) display(msg string, maxSubjectLength int) {
	s.out.Println()
	s.out.Title("Generated commit message:")
	s.out.Println(separator)
	s.out.Println(msg)
	s.out.Println(separator)

	for _, w := range message.Inspect(msg, maxSubjectLength) {
		s.errOut.Warning("%s", w)
	}
}
