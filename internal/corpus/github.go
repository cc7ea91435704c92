package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	vcsurl "github.com/gitsight/go-vcsurl"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/avoronov/zakondex/internal/logging"
)

// NewGitHubClient builds an API client, authenticated when a token is
// present. Public legal corpora work unauthenticated within rate limits.
func NewGitHubClient(token string) *github.Client {
	if token == "" {
		return github.NewClient(&http.Client{Timeout: 30 * time.Second})
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = 30 * time.Second
	return github.NewClient(tc)
}

// GitHubSource reads corpus files from a repository through the contents
// API, without a local checkout. Suited to small corpora; use GitSource
// for full mirrors.
type GitHubSource struct {
	client     *github.Client
	owner      string
	repo       string
	dir        string
	ref        string
	extensions []string
	log        logging.Logger
}

func NewGitHubSource(client *github.Client, repoURL, dir, ref string, extensions []string, log logging.Logger) (*GitHubSource, error) {
	info, err := vcsurl.Parse(repoURL)
	if err != nil {
		return nil, fmt.Errorf("parse repo url %s: %w", repoURL, err)
	}
	if len(extensions) == 0 {
		extensions = []string{".txt"}
	}
	return &GitHubSource{
		client:     client,
		owner:      info.Username,
		repo:       info.Name,
		dir:        dir,
		ref:        ref,
		extensions: extensions,
		log:        logging.New(log.Logr()).WithName("corpus.github"),
	}, nil
}

func (s *GitHubSource) Load(ctx context.Context) ([]Document, error) {
	var docs []Document
	if err := s.loadDir(ctx, s.dir, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *GitHubSource) loadDir(ctx context.Context, dir string, docs *[]Document) error {
	opts := &github.RepositoryContentGetOptions{Ref: s.ref}
	file, entries, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, dir, opts)
	if err != nil {
		return fmt.Errorf("list %s/%s %s: %w", s.owner, s.repo, dir, err)
	}
	if file != nil {
		return s.loadFile(ctx, file.GetPath(), file.GetName(), docs)
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch entry.GetType() {
		case "dir":
			if err := s.loadDir(ctx, entry.GetPath(), docs); err != nil {
				return err
			}
		case "file":
			if !hasExtension(entry.GetName(), s.extensions) {
				continue
			}
			if err := s.loadFile(ctx, entry.GetPath(), entry.GetName(), docs); err != nil {
				s.log.Error(err, "skipping file", "path", entry.GetPath())
			}
		}
	}
	return nil
}

func (s *GitHubSource) loadFile(ctx context.Context, path, name string, docs *[]Document) error {
	opts := &github.RepositoryContentGetOptions{Ref: s.ref}
	rc, _, err := s.client.Repositories.DownloadContents(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return fmt.Errorf("download %s: %w", path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	text, enc, err := DecodeText(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	s.log.Debug("loaded corpus file", "path", path, "encoding", enc)
	*docs = append(*docs, Document{
		ID:   DocumentID(name),
		Name: name,
		Path: path,
		Text: text,
	})
	return nil
}
