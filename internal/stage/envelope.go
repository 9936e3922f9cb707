package stage

import "github.com/flarebyte/seshat-scribe/internal/config"

// Record is one changed working-tree file augmented with its byte size.
// Records are immutable once a snapshot is taken; a fresh snapshot replaces
// the whole list.
type Record struct {
	Path          string `json:"path"`
	WorkingStatus string `json:"workingStatus,omitempty"`
	IndexStatus   string `json:"indexStatus,omitempty"`
	Size          int64  `json:"size"`
}

// Error is a runtime error deferred until drain at the end of the run.
type Error struct {
	Stage   string `json:"stage"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Chunk is a size-bounded, ordered group of files committed together.
// TotalSize always equals the sum of member sizes; it exceeds the limit only
// for a singleton whose own size does.
type Chunk struct {
	Paths     []string `json:"paths"`
	TotalSize int64    `json:"totalSize"`
}

// Result collects the facts published once at the end of a run. Fields are
// only ever set forward; nothing resets them within a run.
type Result struct {
	Committed  bool     `json:"committed"`
	CommitShas []string `json:"commitShas,omitempty"`
	Tagged     bool     `json:"tagged"`
	Pushed     bool     `json:"pushed"`
	TagPushed  bool     `json:"tagPushed"`
}

// Meta threads the resolved configuration and accumulated state through the
// stage sequence.
type Meta struct {
	Config *config.Config `json:"-"`

	// Clean marks a terminal clean tree; every later stage passes through.
	Clean bool `json:"clean,omitempty"`
	// Branch is the push target: the created branch when checkout made one,
	// otherwise the current branch resolved at push time.
	Branch string `json:"branch,omitempty"`
	// NewBranch records that checkout created Branch rather than switching.
	NewBranch bool `json:"newBranch,omitempty"`
	// FetchRan records that the fetch stage actually fetched.
	FetchRan bool `json:"fetchRan,omitempty"`

	Chunks []Chunk `json:"chunks,omitempty"`
	Result Result  `json:"result"`
}

// Envelope is the value passed between stages: the changed-file records, the
// threaded meta state and the deferred-error accumulator.
type Envelope struct {
	Records []Record `json:"records"`
	Meta    *Meta    `json:"meta,omitempty"`
	Errors  []Error  `json:"errors,omitempty"`
}

// cfg returns the resolved config, never nil.
func cfg(in Envelope) *config.Config {
	if in.Meta == nil || in.Meta.Config == nil {
		return &config.Config{}
	}
	return in.Meta.Config
}

// terminalClean reports whether the detect stage ended the run early.
func terminalClean(in Envelope) bool {
	return in.Meta != nil && in.Meta.Clean
}
