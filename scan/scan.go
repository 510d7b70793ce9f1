// Package scan provides lazy, interceptable traversal of the immediate
// children of a directory.
//
// This package offers a hook-driven alternative to eagerly listing a
// directory: consumers pull paths one at a time, and registered hooks may
// observe each discovered entry, skip it, or abort the whole traversal.
package scan

import (
	"context"
	"regexp"

	internal "github.com/skimfs/skim/internal/scan"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Re-export the core types from the internal package.
type (
	// Scanner owns one traversal configuration: root, filter, and hooks.
	Scanner = internal.Scanner

	// Cursor steps through the results of one Search pass.
	Cursor = internal.Cursor

	// EntryEvent is the mutable token passed to each hook invocation.
	EntryEvent = internal.EntryEvent

	// EntryKind tags an entry as a directory or a file.
	EntryKind = internal.EntryKind

	// Hook observes one entry event and may set its Skip or Abort flags.
	Hook = internal.Hook

	// PathPredicate is a single acceptance test over a discovered path.
	PathPredicate = internal.PathPredicate

	// Option configures a Scanner at construction time.
	Option = internal.Option

	// Lister is the enumeration collaborator.
	Lister = internal.Lister

	// OSLister enumerates the real filesystem.
	OSLister = internal.OSLister

	// FsLister enumerates an afero filesystem.
	FsLister = internal.FsLister

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// Re-export watch types
	WatchEvent   = internal.WatchEvent
	WatchOptions = internal.WatchOptions
	WatchMessage = internal.WatchMessage
	WatchResult  = internal.WatchResult
	WatchHandler = internal.WatchHandler
)

// Re-export the constants.
const (
	// Entry kinds
	KindDir  = internal.KindDir
	KindFile = internal.KindFile

	// Log levels
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	// Watch event constants
	EventCreate = internal.EventCreate
	EventModify = internal.EventModify
	EventDelete = internal.EventDelete
	EventRename = internal.EventRename
	EventChmod  = internal.EventChmod
)

// Re-export the sentinel errors.
var (
	ErrInvalidRoot = internal.ErrInvalidRoot
	ErrNilFilter   = internal.ErrNilFilter
)

// New creates a Scanner rooted at root, validating the root eagerly.
func New(root string, opts ...Option) (*Scanner, error) {
	return internal.New(root, opts...)
}

// NewFiltered creates a Scanner with an explicit predicate list. A nil list
// is rejected with ErrNilFilter; an empty list behaves as "no filter".
func NewFiltered(root string, predicates []PathPredicate, opts ...Option) (*Scanner, error) {
	return internal.NewFiltered(root, predicates, opts...)
}

// WithLister injects the enumeration collaborator.
func WithLister(l Lister) Option {
	return internal.WithLister(l)
}

// WithLogger injects a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return internal.WithLogger(logger)
}

// WithPredicates configures the composed filter (logical AND).
func WithPredicates(preds ...PathPredicate) Option {
	return internal.WithPredicates(preds...)
}

// NewOSLister returns a Lister backed by the operating system.
func NewOSLister() *OSLister {
	return internal.NewOSLister()
}

// NewFsLister returns a Lister backed by the given afero filesystem.
func NewFsLister(fsys afero.Fs) *FsLister {
	return internal.NewFsLister(fsys)
}

// MatchGlob accepts entries whose base name matches a doublestar glob.
func MatchGlob(pattern string) PathPredicate {
	return internal.MatchGlob(pattern)
}

// MatchRegexp accepts entries whose NFC-normalized path matches re.
func MatchRegexp(re *regexp.Regexp) PathPredicate {
	return internal.MatchRegexp(re)
}

// HasPrefix accepts entries whose base name starts with prefix.
func HasPrefix(prefix string) PathPredicate {
	return internal.HasPrefix(prefix)
}

// HasExt accepts entries with one of the given extensions.
func HasExt(exts ...string) PathPredicate {
	return internal.HasExt(exts...)
}

// ExcludeHidden rejects dotfiles and dot-directories.
func ExcludeHidden() PathPredicate {
	return internal.ExcludeHidden()
}

// Watch monitors the immediate children of root for filesystem changes.
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	return internal.Watch(ctx, root, opts, handler)
}
