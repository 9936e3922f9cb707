package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

const yamlFull = `
configVersion: "1"
identity:
  name: CI Bot
  email: ci@example.com
commit:
  message: "chore: autocommit"
  args: "--no-verify --signoff"
branch: autosave
fetch:
  enabled: true
  args: "--prune"
pull:
  enabled: true
  args: "--rebase"
tag:
  args: "-a nightly -m nightly"
  pushArgs: "--force"
push: true
errors:
  pathspecHandling: exitAtEnd
limits:
  chunkBytes: 1048576
workers: 2
`

func TestLoadYAMLFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, "seshat.yaml", yamlFull))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Commit.Message != "chore: autocommit" {
		t.Fatalf("unexpected message: %q", cfg.Commit.Message)
	}
	if len(cfg.Commit.Args) != 2 || cfg.Commit.Args[0] != "--no-verify" {
		t.Fatalf("unexpected commit args: %v", cfg.Commit.Args)
	}
	if cfg.Identity.CommitterName != "CI Bot" || cfg.Identity.CommitterEmail != "ci@example.com" {
		t.Fatalf("committer should fall back to author: %+v", cfg.Identity)
	}
	if !cfg.Fetch.Enabled || cfg.Fetch.Remote != "origin" {
		t.Fatalf("unexpected fetch: %+v", cfg.Fetch)
	}
	if cfg.Push.Kind != PushEnabled {
		t.Fatalf("expected push enabled, got %+v", cfg.Push)
	}
	if cfg.Pathspec != PathspecExitAtEnd {
		t.Fatalf("unexpected pathspec handling: %q", cfg.Pathspec)
	}
	if cfg.Limits.ChunkBytes != 1048576 {
		t.Fatalf("unexpected chunk limit: %d", cfg.Limits.ChunkBytes)
	}
	if len(cfg.Tag.Args) != 4 || !cfg.Tag.Enabled() {
		t.Fatalf("unexpected tag args: %v", cfg.Tag.Args)
	}
}

func TestLoadYAMLDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "min.yml", "configVersion: \"1\"\ncommit:\n  message: save\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Repo != "." {
		t.Fatalf("unexpected repo default: %q", cfg.Repo)
	}
	if cfg.Pathspec != PathspecExitImmediately {
		t.Fatalf("unexpected default handling: %q", cfg.Pathspec)
	}
	if cfg.Limits.ChunkBytes != DefaultChunkBytes {
		t.Fatalf("unexpected default limit: %d", cfg.Limits.ChunkBytes)
	}
	if cfg.Push.Enabled() {
		t.Fatalf("push should default to disabled")
	}
	if cfg.Tag.Enabled() {
		t.Fatalf("tag should default to disabled")
	}
}

func TestLoadPushWithArgs(t *testing.T) {
	cfg, err := Load(writeConfig(t, "p.yaml", "configVersion: \"1\"\ncommit:\n  message: save\npush: \"--force-with-lease\"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Push.Kind != PushEnabledWithArgs || len(cfg.Push.Args) != 1 {
		t.Fatalf("unexpected push: %+v", cfg.Push)
	}
}

func TestLoadPushFalse(t *testing.T) {
	cfg, err := Load(writeConfig(t, "p.yaml", "configVersion: \"1\"\ncommit:\n  message: save\npush: false\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Push.Enabled() {
		t.Fatalf("expected disabled push")
	}
}

func TestLoadRejectsBadPathspecHandling(t *testing.T) {
	_, err := Load(writeConfig(t, "bad.yaml", "configVersion: \"1\"\ncommit:\n  message: save\nerrors:\n  pathspecHandling: whatever\n"))
	if err == nil || !strings.Contains(err.Error(), "pathspecHandling") {
		t.Fatalf("expected pathspecHandling error, got %v", err)
	}
}

func TestLoadRejectsMissingMessage(t *testing.T) {
	_, err := Load(writeConfig(t, "nomsg.yaml", "configVersion: \"1\"\n"))
	if err == nil || !strings.Contains(err.Error(), "commit.message") {
		t.Fatalf("expected commit.message error, got %v", err)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load(writeConfig(t, "conf.toml", "x = 1"))
	if err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

const cueFull = `
configVersion: "1"
commit: {
	message: "chore: autocommit"
	args:    "--no-verify"
}
branch: "autosave"
push: "--force-with-lease"
errors: pathspecHandling: "ignore"
limits: chunkBytes: 2048
`

func TestLoadCUE(t *testing.T) {
	cfg, err := Load(writeConfig(t, "seshat.cue", cueFull))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Branch != "autosave" {
		t.Fatalf("unexpected branch: %q", cfg.Branch)
	}
	if cfg.Push.Kind != PushEnabledWithArgs || len(cfg.Push.Args) != 1 {
		t.Fatalf("unexpected push: %+v", cfg.Push)
	}
	if cfg.Pathspec != PathspecIgnore {
		t.Fatalf("unexpected handling: %q", cfg.Pathspec)
	}
	if cfg.Limits.ChunkBytes != 2048 {
		t.Fatalf("unexpected limit: %d", cfg.Limits.ChunkBytes)
	}
}

func TestLoadCUELargeChunkLimit(t *testing.T) {
	cfg, err := Load(writeConfig(t, "big.cue",
		"configVersion: \"1\"\ncommit: message: \"save\"\nlimits: chunkBytes: 3221225472\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits.ChunkBytes != 3221225472 {
		t.Fatalf("limit above 2 GiB must survive, got %d", cfg.Limits.ChunkBytes)
	}
}

func TestLoadCUEMissingVersion(t *testing.T) {
	_, err := Load(writeConfig(t, "v.cue", "commit: message: \"m\"\n"))
	if err == nil || !strings.Contains(err.Error(), "configVersion") {
		t.Fatalf("expected configVersion error, got %v", err)
	}
}

func TestLoadCUEAndYAMLAgree(t *testing.T) {
	y, err := Load(writeConfig(t, "a.yaml", "configVersion: \"1\"\ncommit:\n  message: save\n  args: \"-S\"\npush: true\n"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	c, err := Load(writeConfig(t, "a.cue", "configVersion: \"1\"\ncommit: {message: \"save\", args: \"-S\"}\npush: true\n"))
	if err != nil {
		t.Fatalf("cue: %v", err)
	}
	if y.Commit.Message != c.Commit.Message || y.Push.Kind != c.Push.Kind || len(y.Commit.Args) != len(c.Commit.Args) {
		t.Fatalf("yaml and cue disagree: %+v vs %+v", y, c)
	}
}

func TestSplitArgsQuoting(t *testing.T) {
	args, err := splitArgs(`-m "two words" --flag`)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(args) != 3 || args[1] != "two words" {
		t.Fatalf("unexpected tokens: %v", args)
	}
}

func TestSplitArgsUnterminatedQuote(t *testing.T) {
	if _, err := splitArgs(`-m "oops`); err == nil {
		t.Fatalf("expected tokenize error")
	}
}
