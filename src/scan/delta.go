package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// targetBranchVars are the CI variables naming a merge request's target.
var targetBranchVars = []string{
	"CI_MERGE_REQUEST_TARGET_BRANCH_NAME", // GitLab
	"GITHUB_BASE_REF",                     // GitHub Actions
	"BITBUCKET_PR_DESTINATION_BRANCH",     // Bitbucket
	"CHANGE_TARGET",                       // Jenkins
}

// Delta finds the pattern files a branch touches, so --changed can limit a
// scan to them.
type Delta struct {
	RootDir      string
	TargetBranch string
}

// ChangedFiles returns the repo-relative paths that are modified, staged or
// untracked in the working tree, or that differ between the target branch
// and HEAD. A nil set means "scan everything": RootDir is not a repository
// or git could not answer.
func (d *Delta) ChangedFiles(ctx context.Context) (map[string]bool, error) {
	repo, err := git.PlainOpen(d.RootDir)
	if err != nil {
		slog.Debug("delta: not a git repository", "dir", d.RootDir)
		return nil, nil
	}

	changed := make(map[string]bool)

	if err := addWorktreeChanges(repo, changed); err != nil {
		slog.Debug("delta: worktree status failed", "error", err)
		return nil, nil
	}
	if err := addBranchChanges(ctx, repo, d.resolveTarget(repo), changed); err != nil {
		slog.Debug("delta: branch diff failed", "error", err)
		return nil, nil
	}

	slog.Debug("delta", "changed", len(changed))
	return changed, nil
}

func addWorktreeChanges(repo *git.Repository, changed map[string]bool) error {
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	status, err := wt.Status()
	if err != nil {
		return err
	}
	for name, st := range status {
		if st.Worktree != git.Unmodified || st.Staging != git.Unmodified {
			changed[name] = true
		}
	}
	return nil
}

// addBranchChanges diffs HEAD against target. On the target branch itself
// the last commit is diffed against its parent instead. A target that does
// not exist locally or on origin adds nothing.
func addBranchChanges(ctx context.Context, repo *git.Repository, target string, changed map[string]bool) error {
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("reading HEAD: %w", err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("reading HEAD commit: %w", err)
	}

	base, ok := lookupBranch(repo, target)
	if !ok {
		return nil
	}
	baseCommit, err := repo.CommitObject(base)
	if err != nil {
		return fmt.Errorf("reading %s: %w", target, err)
	}

	if baseCommit.Hash == headCommit.Hash {
		if headCommit.NumParents() == 0 {
			return nil
		}
		if baseCommit, err = headCommit.Parent(0); err != nil {
			return nil
		}
	}

	baseTree, err := baseCommit.Tree()
	if err != nil {
		return err
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return err
	}

	changes, err := object.DiffTreeWithOptions(ctx, baseTree, headTree, &object.DiffTreeOptions{})
	if err != nil {
		return fmt.Errorf("diffing %s..HEAD: %w", target, err)
	}
	for _, c := range changes {
		if name := changedPath(c); name != "" {
			changed[name] = true
		}
	}
	return nil
}

func lookupBranch(repo *git.Repository, branch string) (plumbing.Hash, bool) {
	for _, name := range []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(branch),
		plumbing.NewRemoteReferenceName("origin", branch),
	} {
		if ref, err := repo.Reference(name, true); err == nil {
			return ref.Hash(), true
		}
	}
	return plumbing.ZeroHash, false
}

// resolveTarget picks the baseline branch: WPSCRIPTS_TARGET_BRANCH, then
// scan.target_branch, then the CI merge request variables, then whatever
// origin/HEAD points at, then "main".
func (d *Delta) resolveTarget(repo *git.Repository) string {
	if b := os.Getenv("WPSCRIPTS_TARGET_BRANCH"); b != "" {
		return b
	}
	if d.TargetBranch != "" {
		return d.TargetBranch
	}
	for _, v := range targetBranchVars {
		if b := os.Getenv(v); b != "" {
			return b
		}
	}

	const originPrefix = "refs/remotes/origin/"
	if ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", "HEAD"), false); err == nil {
		if target := ref.Target().String(); strings.HasPrefix(target, originPrefix) {
			return strings.TrimPrefix(target, originPrefix)
		}
	}
	return "main"
}

func changedPath(c *object.Change) string {
	action, err := c.Action()
	if err != nil {
		return ""
	}
	switch action {
	case merkletrie.Insert, merkletrie.Modify:
		return c.To.Name
	case merkletrie.Delete:
		return c.From.Name
	}
	return ""
}

// DeltaFilter returns a Scanner.Include func admitting only files whose
// path relative to base is in changed. A nil set admits everything, so the
// returned func is nil too.
func DeltaFilter(base string, changed map[string]bool) func(string) bool {
	if changed == nil {
		return nil
	}
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	return func(path string) bool {
		abs, err := filepath.Abs(path)
		if err != nil {
			return true
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil {
			return true
		}
		return changed[filepath.ToSlash(rel)]
	}
}
