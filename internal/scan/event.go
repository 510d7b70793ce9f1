package skim

// EntryKind tags a discovered entry as a directory or a regular file.
type EntryKind int

const (
	KindDir EntryKind = iota
	KindFile
)

// String returns a human-readable name for the kind.
func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// EntryEvent is the mutable token passed to each hook invocation. It carries
// the discovered path and two control flags the hooks may set to influence
// the traversal. One event is created per discovered entry; the engine owns
// it for the duration of that entry's processing and passes it by pointer to
// every subscriber in turn.
//
// Both flags are sticky: once set they stay set for the lifetime of the
// event, and Abort stays set for the remainder of the whole Search pass.
type EntryEvent struct {
	path  string
	kind  EntryKind
	skip  bool
	abort bool
}

// Path returns the discovered path. Immutable after construction.
func (e *EntryEvent) Path() string { return e.path }

// Kind reports whether the entry is a directory or a file.
func (e *EntryEvent) Kind() EntryKind { return e.kind }

// Skip requests that the current entry be dropped: it will not be yielded
// and no further hooks run for it. Sibling entries are unaffected.
func (e *EntryEvent) Skip() { e.skip = true }

// Abort requests that the entire remaining traversal be terminated. No
// further entries are enumerated or dispatched; the finish hooks still fire.
func (e *EntryEvent) Abort() { e.abort = true }

// Skipped reports whether any hook has requested this entry be skipped.
func (e *EntryEvent) Skipped() bool { return e.skip }

// Aborted reports whether any hook has requested the traversal be aborted.
func (e *EntryEvent) Aborted() bool { return e.abort }
