// Package fsrepo centralizes the filesystem plumbing one assembly
// session needs: opening the input, creating the intermediate and
// output files for a base name, and the remove-on-failure policy that
// applies uniformly across all of them.
package fsrepo

import "os"

// Suffixes for the five files a session ever touches.
const (
	SourceSuffix   = ".as"
	ExpandedSuffix = ".am"
	ObjectSuffix   = ".ob"
	EntrySuffix    = ".ent"
	ExternSuffix   = ".ext"
)

// Repo owns every file handle opened for one base name. Close
// releases whatever is still open; nothing here is shared across
// sessions.
type Repo struct {
	baseName string
	opened   []*os.File
}

// New returns a Repo rooted at baseName (no extension).
func New(baseName string) *Repo {
	return &Repo{baseName: baseName}
}

// Path returns the full path for one of the session's file suffixes.
func (r *Repo) Path(suffix string) string {
	return r.baseName + suffix
}

// OpenSource opens the `.as` input for reading.
func (r *Repo) OpenSource() (*os.File, error) {
	f, err := os.Open(r.Path(SourceSuffix))
	if err != nil {
		return nil, err
	}
	r.opened = append(r.opened, f)
	return f, nil
}

// Create opens one of the session's output/intermediate files for
// writing, truncating any existing content.
func (r *Repo) Create(suffix string) (*os.File, error) {
	f, err := os.Create(r.Path(suffix))
	if err != nil {
		return nil, err
	}
	r.opened = append(r.opened, f)
	return f, nil
}

// Close releases every file handle this Repo has opened, in reverse
// order. It never returns an error; the caller can't act on a close
// failure differently from a successful close at this point.
func (r *Repo) Close() {
	for i := len(r.opened) - 1; i >= 0; i-- {
		r.opened[i].Close()
	}
	r.opened = nil
}

// Remove deletes the file at one of the session's suffixes. Removal
// is idempotent cleanup, not a required precondition, so any error
// (including not-exist) is ignored.
func (r *Repo) Remove(suffix string) {
	os.Remove(r.Path(suffix))
}

// RemoveAll removes every output artifact a session can produce:
// the expanded intermediate plus all three outputs.
func (r *Repo) RemoveAll() {
	r.Remove(ExpandedSuffix)
	r.Remove(ObjectSuffix)
	r.Remove(EntrySuffix)
	r.Remove(ExternSuffix)
}
