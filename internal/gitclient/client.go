package gitclient

// FileStatus describes one changed entry in a working-tree snapshot.
type FileStatus struct {
	Path    string
	Working string
	Index   string
}

// Snapshot is a machine-stable view of the working tree at one point in time.
// Conflicted lists every path with an unmerged index entry.
type Snapshot struct {
	Files      []FileStatus
	Conflicted []string
}

// Client is the narrow surface the pipeline consumes. Implementations either
// complete the operation or return an error; no partial results.
type Client interface {
	Status() (Snapshot, error)
	AddConfig(key, value string) error
	Fetch(args []string) error
	Pull(args []string) error
	Checkout(branch string) error
	CheckoutNew(branch string) error
	CurrentBranch() (string, error)
	Add(paths []string) error
	Remove(paths []string) error
	Commit(message string, args []string) (string, error)
	Tag(args []string) error
	Push(remote, refspec string, args []string) error
	PushTags(remote string, args []string) error
}

// File status names shared with the pipeline records.
const (
	StatusUnmodified = "unmodified"
	StatusModified   = "modified"
	StatusAdded      = "added"
	StatusDeleted    = "deleted"
	StatusRenamed    = "renamed"
	StatusCopied     = "copied"
	StatusUntracked  = "untracked"
	StatusUnmerged   = "unmerged"
)
