package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

func TestLoadSourceLocalFile(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "square.szp"), "repeat(4) { go(1); left(90); }\n")
	src, err := LoadSource(SourceSpec{Path: path})
	if err != nil {
		t.Fatalf("LoadSource: %v", err)
	}
	if src.Name != path || src.Commit != "" {
		t.Fatalf("unexpected source %#v", src)
	}
	if src.Text != "repeat(4) { go(1); left(90); }\n" {
		t.Fatalf("Text = %q", src.Text)
	}
}

func TestLoadSourceErrors(t *testing.T) {
	if _, err := LoadSource(SourceSpec{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadSource(SourceSpec{Path: filepath.Join(t.TempDir(), "nope.szp")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadSourceFromGit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "drawings", "line.szp"), "go(1);\n")
	first := initGitRepo(t, dir)

	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	if err := repo.Storer.SetReference(plumbing.NewHashReference("refs/heads/first", plumbing.NewHash(first))); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	writeFile(t, filepath.Join(dir, "drawings", "line.szp"), "go(2);\n")
	second := commitAll(t, repo, dir, "longer line")
	if _, err := repo.CreateTag("v1", plumbing.NewHash(second), nil); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	cases := []struct {
		name   string
		spec   SourceSpec
		text   string
		commit string
	}{
		{name: "head", spec: SourceSpec{}, text: "go(2);\n", commit: second},
		{name: "rev", spec: SourceSpec{Rev: first}, text: "go(1);\n", commit: first},
		{name: "branch", spec: SourceSpec{Branch: "first"}, text: "go(1);\n", commit: first},
		{name: "tag", spec: SourceSpec{Tag: "v1"}, text: "go(2);\n", commit: second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := tc.spec
			spec.Git = dir
			spec.Path = "drawings/line.szp"
			src, err := LoadSource(spec)
			if err != nil {
				t.Fatalf("LoadSource: %v", err)
			}
			if src.Text != tc.text {
				t.Fatalf("Text = %q, want %q", src.Text, tc.text)
			}
			if src.Commit != tc.commit {
				t.Fatalf("Commit = %s, want %s", src.Commit, tc.commit)
			}
			wantName := dir + "@" + tc.commit[:12] + ":drawings/line.szp"
			if src.Name != wantName {
				t.Fatalf("Name = %q, want %q", src.Name, wantName)
			}
		})
	}
}

func TestLoadSourceFromGitMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.szp"), "go(1);\n")
	initGitRepo(t, dir)

	_, err := LoadSource(SourceSpec{Git: dir, Path: "b.szp"})
	if err == nil || !strings.Contains(err.Error(), "b.szp not found at") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoadSourceRejectsConflictingRevisions(t *testing.T) {
	_, err := LoadSource(SourceSpec{Git: "unused", Path: "a.szp", Rev: "abc", Branch: "main"})
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestLoadSourceBadRepository(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent", missing)
	}
	if _, err := LoadSource(SourceSpec{Git: missing, Path: "a.szp"}); err == nil {
		t.Fatalf("expected clone error")
	}
}
