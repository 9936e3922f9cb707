package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// PathspecHandling selects what happens when an add/rm pathspec matches no
// working-tree entries.
type PathspecHandling string

const (
	// PathspecIgnore swallows pathspec misses.
	PathspecIgnore PathspecHandling = "ignore"
	// PathspecExitImmediately aborts the run on the first pathspec miss.
	PathspecExitImmediately PathspecHandling = "exitImmediately"
	// PathspecExitAtEnd defers pathspec misses and fails once at the end.
	PathspecExitAtEnd PathspecHandling = "exitAtEnd"
)

// PushKind is the resolved form of the bool-or-string push setting.
type PushKind int

const (
	PushDisabled PushKind = iota
	PushEnabled
	PushEnabledWithArgs
)

// Push is the union push setting resolved once at load time.
type Push struct {
	Kind PushKind
	Args []string
}

// Enabled reports whether any push should happen.
func (p Push) Enabled() bool { return p.Kind != PushDisabled }

// Identity holds author and committer details. Committer fields fall back to
// the author when empty.
type Identity struct {
	Name           string
	Email          string
	CommitterName  string
	CommitterEmail string
}

// Commit holds the commit message and extra commit arguments.
type Commit struct {
	Message    string
	Args       []string
	AllowEmpty bool
}

// Fetch holds the optional remote synchronization settings.
type Fetch struct {
	Enabled bool
	Remote  string
	Args    []string
}

// Pull holds the optional pull settings.
type Pull struct {
	Enabled bool
	Args    []string
}

// Tag holds tagging arguments; tagging is enabled when Args is non-empty.
type Tag struct {
	Args     []string
	PushArgs []string
}

// Enabled reports whether a tag should be created.
func (t Tag) Enabled() bool { return len(t.Args) > 0 }

// Filter holds the optional Lua predicate over changed files.
type Filter struct {
	Inline string
}

// Limits bounds the cumulative size of one chunk.
type Limits struct {
	ChunkBytes int64
}

// UI holds progress reporting settings.
type UI struct {
	Progress           bool
	ProgressIntervalMs int
}

// DefaultChunkBytes keeps chunk totals under common remote push ceilings
// (~2 GiB) with margin: 1800 MiB.
const DefaultChunkBytes = int64(1800) * 1024 * 1024

// Config is the fully resolved configuration for one run. Argument strings
// are tokenized and the push union is resolved at load; nothing is
// re-interpreted at use sites.
type Config struct {
	ConfigVersion string
	Repo          string
	Identity      Identity
	Commit        Commit
	Branch        string
	Fetch         Fetch
	Pull          Pull
	Tag           Tag
	Push          Push
	Pathspec      PathspecHandling
	Limits        Limits
	Filter        Filter
	Workers       int
	UI            UI
}

// Load reads and resolves a config file, dispatching on extension.
func Load(path string) (*Config, error) {
	switch filepath.Ext(path) {
	case ".cue":
		raw, err := parseCUE(path)
		if err != nil {
			return nil, err
		}
		return resolve(raw)
	case ".yaml", ".yml":
		raw, err := parseYAML(path)
		if err != nil {
			return nil, err
		}
		return resolve(raw)
	default:
		return nil, errors.New("unsupported config format: expected .cue or .yaml")
	}
}

// rawConfig is the on-disk shape before argument tokenizing and union
// resolution.
type rawConfig struct {
	ConfigVersion string `yaml:"configVersion"`
	Repo          string `yaml:"repo"`
	Identity      struct {
		Name           string `yaml:"name"`
		Email          string `yaml:"email"`
		CommitterName  string `yaml:"committerName"`
		CommitterEmail string `yaml:"committerEmail"`
	} `yaml:"identity"`
	Commit struct {
		Message    string `yaml:"message"`
		Args       string `yaml:"args"`
		AllowEmpty bool   `yaml:"allowEmpty"`
	} `yaml:"commit"`
	Branch string `yaml:"branch"`
	Fetch  struct {
		Enabled bool   `yaml:"enabled"`
		Remote  string `yaml:"remote"`
		Args    string `yaml:"args"`
	} `yaml:"fetch"`
	Pull struct {
		Enabled bool   `yaml:"enabled"`
		Args    string `yaml:"args"`
	} `yaml:"pull"`
	Tag struct {
		Args     string `yaml:"args"`
		PushArgs string `yaml:"pushArgs"`
	} `yaml:"tag"`
	Push   any `yaml:"push"`
	Errors struct {
		PathspecHandling string `yaml:"pathspecHandling"`
	} `yaml:"errors"`
	Limits struct {
		ChunkBytes int64 `yaml:"chunkBytes"`
	} `yaml:"limits"`
	Filter struct {
		Inline string `yaml:"inline"`
	} `yaml:"filter"`
	Workers int `yaml:"workers"`
	UI      struct {
		Progress           bool `yaml:"progress"`
		ProgressIntervalMs int  `yaml:"progressIntervalMs"`
	} `yaml:"ui"`
}

// resolve validates required fields, tokenizes argument strings and resolves
// the push union into its tagged form.
func resolve(raw rawConfig) (*Config, error) {
	if raw.ConfigVersion == "" {
		return nil, errors.New("missing required field: configVersion")
	}
	if raw.Commit.Message == "" {
		return nil, errors.New("missing required field: commit.message")
	}

	cfg := &Config{
		ConfigVersion: raw.ConfigVersion,
		Repo:          raw.Repo,
		Branch:        raw.Branch,
		Workers:       raw.Workers,
	}
	if cfg.Repo == "" {
		cfg.Repo = "."
	}

	cfg.Identity = Identity(raw.Identity)
	if cfg.Identity.CommitterName == "" {
		cfg.Identity.CommitterName = cfg.Identity.Name
	}
	if cfg.Identity.CommitterEmail == "" {
		cfg.Identity.CommitterEmail = cfg.Identity.Email
	}

	var err error
	cfg.Commit.Message = raw.Commit.Message
	cfg.Commit.AllowEmpty = raw.Commit.AllowEmpty
	if cfg.Commit.Args, err = splitArgs(raw.Commit.Args); err != nil {
		return nil, fmt.Errorf("invalid commit.args: %v", err)
	}

	cfg.Fetch.Enabled = raw.Fetch.Enabled
	cfg.Fetch.Remote = raw.Fetch.Remote
	if cfg.Fetch.Remote == "" {
		cfg.Fetch.Remote = "origin"
	}
	if cfg.Fetch.Args, err = splitArgs(raw.Fetch.Args); err != nil {
		return nil, fmt.Errorf("invalid fetch.args: %v", err)
	}

	cfg.Pull.Enabled = raw.Pull.Enabled
	if cfg.Pull.Args, err = splitArgs(raw.Pull.Args); err != nil {
		return nil, fmt.Errorf("invalid pull.args: %v", err)
	}

	if cfg.Tag.Args, err = splitArgs(raw.Tag.Args); err != nil {
		return nil, fmt.Errorf("invalid tag.args: %v", err)
	}
	if cfg.Tag.PushArgs, err = splitArgs(raw.Tag.PushArgs); err != nil {
		return nil, fmt.Errorf("invalid tag.pushArgs: %v", err)
	}

	if cfg.Push, err = resolvePush(raw.Push); err != nil {
		return nil, err
	}

	switch raw.Errors.PathspecHandling {
	case "":
		cfg.Pathspec = PathspecExitImmediately
	case string(PathspecIgnore), string(PathspecExitImmediately), string(PathspecExitAtEnd):
		cfg.Pathspec = PathspecHandling(raw.Errors.PathspecHandling)
	default:
		return nil, fmt.Errorf("invalid errors.pathspecHandling: %q", raw.Errors.PathspecHandling)
	}

	cfg.Limits.ChunkBytes = raw.Limits.ChunkBytes
	if cfg.Limits.ChunkBytes <= 0 {
		cfg.Limits.ChunkBytes = DefaultChunkBytes
	}

	cfg.Filter.Inline = raw.Filter.Inline
	cfg.UI.Progress = raw.UI.Progress
	cfg.UI.ProgressIntervalMs = raw.UI.ProgressIntervalMs
	return cfg, nil
}

// resolvePush turns the bool-or-string push value into its tagged variant.
func resolvePush(v any) (Push, error) {
	switch x := v.(type) {
	case nil:
		return Push{Kind: PushDisabled}, nil
	case bool:
		if x {
			return Push{Kind: PushEnabled}, nil
		}
		return Push{Kind: PushDisabled}, nil
	case string:
		args, err := splitArgs(x)
		if err != nil {
			return Push{}, fmt.Errorf("invalid push args: %v", err)
		}
		return Push{Kind: PushEnabledWithArgs, Args: args}, nil
	default:
		return Push{}, errors.New("invalid type for field: push (expected bool or string)")
	}
}
