package corpus

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	vcsurl "github.com/gitsight/go-vcsurl"

	"github.com/avoronov/zakondex/internal/gitrepo"
	"github.com/avoronov/zakondex/internal/logging"
)

// GitSource reads corpus files from a local mirror of a git repository,
// cloning or refreshing it on Load. Unlike GitHubSource it pulls the whole
// tree in one network round trip, which is what large corpora want.
type GitSource struct {
	repo       *gitrepo.Repo
	dir        string
	ref        string
	extensions []string
	log        logging.Logger
}

func NewGitSource(repoURL, cacheDir, dir, ref string, extensions []string, log logging.Logger) (*GitSource, error) {
	info, err := vcsurl.Parse(repoURL)
	if err != nil {
		return nil, fmt.Errorf("parse repo url %s: %w", repoURL, err)
	}
	if len(extensions) == 0 {
		extensions = []string{".txt"}
	}
	repo := gitrepo.New(gitrepo.RepoConfig{
		URL:  repoURL,
		Path: filepath.Join(cacheDir, info.Name),
	})
	return &GitSource{
		repo:       repo,
		dir:        dir,
		ref:        ref,
		extensions: extensions,
		log:        logging.New(log.Logr()).WithName("corpus.git"),
	}, nil
}

func (s *GitSource) Load(ctx context.Context) ([]Document, error) {
	ref := s.ref
	synced, err := s.repo.Sync(ctx)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		ref = synced
	}
	// Pin to a commit so the listing and the file reads see one tree.
	sha, err := s.repo.SHA(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve ref %s: %w", ref, err)
	}
	ref = sha
	s.log.Debug("corpus repo synced", "ref", s.ref, "commit", sha)
	files, err := s.repo.ListFiles(ctx, ref)
	if err != nil {
		return nil, err
	}
	var docs []Document
	for _, file := range files {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if s.dir != "" && !strings.HasPrefix(file, s.dir+"/") {
			continue
		}
		if !hasExtension(file, s.extensions) {
			continue
		}
		data, err := s.repo.ShowFile(ctx, ref, file)
		if err != nil {
			s.log.Error(err, "skipping file", "path", file)
			continue
		}
		text, enc, err := DecodeText(data)
		if err != nil {
			s.log.Error(err, "skipping file", "path", file)
			continue
		}
		s.log.Debug("loaded corpus file", "path", file, "encoding", enc)
		name := path.Base(file)
		docs = append(docs, Document{
			ID:   DocumentID(name),
			Name: name,
			Path: file,
			Text: text,
		})
	}
	return docs, nil
}
