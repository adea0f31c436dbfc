package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aimcli/aim/internal/app"
	"github.com/aimcli/aim/internal/pkg/ai"
	"github.com/aimcli/aim/internal/pkg/git"
	"github.com/aimcli/aim/internal/pkg/ui"
)

// Constructors for external collaborators, replaced in tests.
var (
	newGitRunner = func() git.Runner { return git.NewRunner() }
	newCompleter = func() ai.Completer { return ai.NewClient() }
)

// CommitFlags holds the flags for the commit command.
type CommitFlags struct {
	All   bool
	Amend bool
}

// NewCommitCmd creates the commit command.
func NewCommitCmd() *cobra.Command {
	flags := &CommitFlags{}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Generate a commit message for the staged changes",
		Long: `Generate a commit message from your staged git diff.

The message is printed together with the git command to apply it. With
autocommit enabled in the configuration, aim commits directly.

Examples:
  aim commit              # Suggest a message for the staged diff
  aim commit --all        # Stage everything first
  aim commit --amend      # Reword the last commit including staged changes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.All, "all", "a", false, "Stage all changes (git add .) before generating")
	cmd.Flags().BoolVar(&flags.Amend, "amend", false, "Generate a message for amending the last commit")

	return cmd
}

// runCommit executes the commit command logic.
func runCommit(cmd *cobra.Command, flags *CommitFlags) error {
	store, err := configStore(cmd)
	if err != nil {
		return err
	}

	gitClient := git.NewClient(newGitRunner(), cmd.OutOrStdout(), cmd.ErrOrStderr())

	service := app.NewCommitService(
		gitClient,
		newCompleter(),
		store,
		ui.NewSpinnerFactory(cmd.ErrOrStderr()),
		cmd.OutOrStdout(),
		cmd.ErrOrStderr(),
	)

	return service.GenerateAndCommit(cmd.Context(), &app.CommitOptions{
		All:   flags.All,
		Amend: flags.Amend,
	})
}
