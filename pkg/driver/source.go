package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SourceSpec names a program: a local file, or a file inside a git
// repository at a revision. Rev, Tag and Branch are mutually exclusive;
// with none set the remote HEAD is used.
type SourceSpec struct {
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// Source is a loaded program. Commit is empty for local files.
type Source struct {
	Name   string
	Text   string
	Commit string
}

// LoadSource reads the program named by spec.
func LoadSource(spec SourceSpec) (*Source, error) {
	path := strings.TrimSpace(spec.Path)
	if path == "" {
		return nil, fmt.Errorf("source: empty path")
	}
	if strings.TrimSpace(spec.Git) == "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("source: read %s: %w", path, err)
		}
		return &Source{Name: path, Text: string(data)}, nil
	}
	return loadGitSource(spec)
}

func loadGitSource(spec SourceSpec) (*Source, error) {
	url := strings.TrimSpace(spec.Git)
	revision, label, err := gitRevisionFromSpec(spec)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "szpakowski-git-*")
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	repo, err := git.PlainClone(tmpDir, true, &git.CloneOptions{URL: url})
	if err != nil {
		return nil, fmt.Errorf("source: git clone %s: %w", url, err)
	}
	hash, err := resolveRevision(repo, revision)
	if err != nil {
		return nil, fmt.Errorf("source: resolve revision %s: %w", label, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("source: read commit %s: %w", hash, err)
	}
	filePath := filepath.ToSlash(filepath.Clean(spec.Path))
	file, err := commit.File(filePath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("source: %s not found at %s", filePath, shortHash(hash))
		}
		return nil, fmt.Errorf("source: read %s: %w", filePath, err)
	}
	text, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", filePath, err)
	}
	return &Source{
		Name:   fmt.Sprintf("%s@%s:%s", url, shortHash(hash), filePath),
		Text:   text,
		Commit: hash.String(),
	}, nil
}

// resolveRevision also tries the remote-tracking ref, since a clone only
// creates a local branch for the remote HEAD.
func resolveRevision(repo *git.Repository, revision plumbing.Revision) (*plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(revision)
	if err == nil {
		return hash, nil
	}
	if !strings.HasPrefix(string(revision), "refs/") {
		if remote, rerr := repo.ResolveRevision(plumbing.Revision("refs/remotes/origin/" + string(revision))); rerr == nil {
			return remote, nil
		}
	}
	return nil, err
}

func gitRevisionFromSpec(spec SourceSpec) (plumbing.Revision, string, error) {
	set := 0
	for _, v := range []string{spec.Rev, spec.Tag, spec.Branch} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set > 1 {
		return "", "", fmt.Errorf("source: rev, tag and branch are mutually exclusive")
	}
	if rev := strings.TrimSpace(spec.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(spec.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(spec.Branch); branch != "" {
		return plumbing.Revision("refs/remotes/origin/" + branch), branch, nil
	}
	return plumbing.Revision(plumbing.HEAD), "HEAD", nil
}

func shortHash(hash *plumbing.Hash) string {
	s := hash.String()
	if len(s) > 12 {
		return s[:12]
	}
	return s
}
