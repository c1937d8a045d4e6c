// Package git provides optional git-based backup for the animation
// library directory. Sync is best-effort: a library without a git
// remote simply reports sync as unavailable.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/mizuki/animlib/internal/errors"
)

const commandTimeout = 30 * time.Second

// Sync manages a git repository rooted at the library directory.
type Sync struct {
	dir string
}

// NewSync creates a sync handle for the given library directory.
func NewSync(dir string) *Sync {
	return &Sync{dir: dir}
}

// Available reports whether the directory is a git repository with a
// configured remote.
func (g *Sync) Available() bool {
	return g.isRepository() && g.hasRemote()
}

// Setup initializes the repository if needed and configures the origin
// remote.
func (g *Sync) Setup(remoteURL string) error {
	if remoteURL == "" {
		return apperrors.NewAppError(apperrors.ErrCodeGitNotConfigured, "remote URL is required")
	}
	if !g.isRepository() {
		if _, err := g.run("init"); err != nil {
			return apperrors.GitError("init", err)
		}
	}
	if g.hasRemote() {
		if _, err := g.run("remote", "set-url", "origin", remoteURL); err != nil {
			return apperrors.GitError("remote set-url", err)
		}
	} else {
		if _, err := g.run("remote", "add", "origin", remoteURL); err != nil {
			return apperrors.GitError("remote add", err)
		}
	}
	return nil
}

// Push commits local changes and pushes them to the remote.
func (g *Sync) Push(message string) error {
	if !g.Available() {
		return apperrors.NewAppError(apperrors.ErrCodeGitNotConfigured, "git sync is not configured; run 'animlib git setup <url>' first")
	}
	if message == "" {
		message = fmt.Sprintf("animation library sync %s", time.Now().Format("2006-01-02 15:04"))
	}
	if _, err := g.run("add", "-A"); err != nil {
		return apperrors.GitError("add", err)
	}
	if g.hasStagedChanges() {
		if _, err := g.run("commit", "-m", message); err != nil {
			return apperrors.GitError("commit", err)
		}
	}
	if _, err := g.run("push", "-u", "origin", "HEAD"); err != nil {
		return apperrors.GitError("push", err)
	}
	return nil
}

// Pull fetches and integrates remote changes.
func (g *Sync) Pull() error {
	if !g.Available() {
		return apperrors.NewAppError(apperrors.ErrCodeGitNotConfigured, "git sync is not configured; run 'animlib git setup <url>' first")
	}
	if _, err := g.run("pull", "--rebase", "origin", "HEAD"); err != nil {
		return apperrors.GitError("pull", err)
	}
	return nil
}

// Status returns a short human-readable sync status.
func (g *Sync) Status() string {
	if !g.isRepository() {
		return "not a git repository"
	}
	if !g.hasRemote() {
		return "no remote configured"
	}
	out, err := g.run("status", "--porcelain")
	if err != nil {
		return "status unavailable"
	}
	if strings.TrimSpace(out) == "" {
		return "clean"
	}
	lines := strings.Count(strings.TrimSpace(out), "\n") + 1
	return fmt.Sprintf("%d uncommitted change(s)", lines)
}

func (g *Sync) isRepository() bool {
	info, err := os.Stat(filepath.Join(g.dir, ".git"))
	return err == nil && info.IsDir()
}

func (g *Sync) hasRemote() bool {
	out, err := g.run("remote")
	return err == nil && strings.TrimSpace(out) != ""
}

func (g *Sync) hasStagedChanges() bool {
	// diff --cached --quiet exits non-zero when something is staged.
	_, err := g.run("diff", "--cached", "--quiet")
	return err != nil
}

func (g *Sync) run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
