package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// RepoConfig locates a corpus mirror. Mirrors are read-only checkouts; the
// clone is shallow because only the tip tree is ever read.
type RepoConfig struct {
	URL    string
	Path   string
	Remote string // default: origin
}

type Repo struct {
	cfg    RepoConfig
	runner Runner
}

func New(cfg RepoConfig) *Repo {
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}
	return &Repo{cfg: cfg, runner: Runner{Timeout: 2 * time.Minute}}
}

type Runner struct {
	Timeout time.Duration
}

func (r Runner) Git(ctx context.Context, dir string, args ...string) (string, error) {
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Start(); err != nil {
		return "", formatGitError(args, err, stderr.String())
	}
	done := make(chan error, 1)
	go func() { done <- c.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return "", formatGitError(args, err, stderr.String())
		}
		return stdout.String(), nil
	case <-time.After(r.Timeout):
		_ = c.Process.Kill()
		<-done
		return "", formatGitTimeoutError(args, r.Timeout, stderr.String())
	case <-ctx.Done():
		_ = c.Process.Kill()
		<-done
		return "", formatGitContextError(args, ctx.Err(), stderr.String())
	}
}

func formatGitError(args []string, cause error, stderr string) error {
	cmd := strings.Join(args, " ")
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("git %s: %w: %s", cmd, cause, stderr)
	}
	return fmt.Errorf("git %s: %w", cmd, cause)
}

func formatGitTimeoutError(args []string, timeout time.Duration, stderr string) error {
	return formatGitError(args, fmt.Errorf("command timed out after %s", timeout), stderr)
}

func formatGitContextError(args []string, cause error, stderr string) error {
	if cause == nil {
		cause = errors.New("context canceled")
	}
	return formatGitError(args, cause, stderr)
}

// Sync clones the mirror if missing, otherwise fetches the remote tip. It
// returns the ref whose tree reflects the synced state: HEAD for a fresh
// clone, FETCH_HEAD after a fetch.
func (r *Repo) Sync(ctx context.Context) (string, error) {
	abs, err := filepath.Abs(r.cfg.Path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		if _, err := r.runner.Git(ctx, "", "clone", "--depth=1", "--no-tags", r.cfg.URL, abs); err != nil {
			return "", err
		}
		return "HEAD", nil
	}
	if err := r.Fetch(ctx); err != nil {
		return "", err
	}
	return "FETCH_HEAD", nil
}

func (r *Repo) Fetch(ctx context.Context, extraArgs ...string) error {
	args := append([]string{"fetch", "--prune", r.cfg.Remote}, extraArgs...)
	_, err := r.runner.Git(ctx, r.cfg.Path, args...)
	return err
}

// SHA resolves a ref to its commit id.
func (r *Repo) SHA(ctx context.Context, ref string) (string, error) {
	out, err := r.runner.Git(ctx, r.cfg.Path, "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ListFiles returns repo-relative paths at the given ref.
func (r *Repo) ListFiles(ctx context.Context, ref string) ([]string, error) {
	out, err := r.runner.Git(ctx, r.cfg.Path, "ls-tree", "-r", "--name-only", ref)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var files []string
	for _, l := range lines {
		if l != "" {
			files = append(files, l)
		}
	}
	return files, nil
}

// ShowFile reads a file blob at ref:path.
func (r *Repo) ShowFile(ctx context.Context, ref, path string) ([]byte, error) {
	spec := fmt.Sprintf("%s:%s", ref, path)
	out, err := r.runner.Git(ctx, r.cfg.Path, "show", spec)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}
