// Package skim provides lazy, hook-driven traversal of the immediate
// children of a single directory.
package skim

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sentinel errors returned by the constructors.
var (
	// ErrInvalidRoot is returned when the root path is empty, blank, or is
	// not an existing directory at construction time.
	ErrInvalidRoot = errors.New("skim: root must be an existing directory")

	// ErrNilFilter is returned by NewFiltered when the predicate slice is
	// nil. An empty (non-nil) slice is valid and behaves as "no filter".
	ErrNilFilter = errors.New("skim: predicate list must not be nil")
)

// Hook observes one entry event and may set its Skip or Abort flags.
type Hook func(*EntryEvent)

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Scanner owns one traversal configuration: the root directory, the optional
// composed filter, the enumeration collaborator, and the six hook slots.
// Root and predicates are fixed at construction; hook registration must
// complete before the first pull of a Search pass. Scanner is not safe for
// concurrent use.
type Scanner struct {
	root       string
	predicates []PathPredicate // nil or empty means no filter configured
	lister     Lister
	logger     *zap.Logger

	onStart             []func()
	onFinish            []func()
	onDirFound          []Hook
	onFileFound         []Hook
	onFilteredDirFound  []Hook
	onFilteredFileFound []Hook
}

// Option configures a Scanner at construction time.
type Option func(*Scanner)

// WithLister injects the enumeration collaborator. The default lists the
// real filesystem via godirwalk.
func WithLister(l Lister) Option {
	return func(s *Scanner) { s.lister = l }
}

// WithLogger injects a custom zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) { s.logger = logger }
}

// WithPredicates configures the composed filter. All predicates must accept
// a path for it to pass (logical AND, registration order).
func WithPredicates(preds ...PathPredicate) Option {
	return func(s *Scanner) { s.predicates = preds }
}

// New creates a Scanner rooted at root. The root is validated eagerly: it
// must be a non-blank path naming an existing directory.
func New(root string, opts ...Option) (*Scanner, error) {
	s := &Scanner{root: root, lister: NewOSLister()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = createLogger(LogLevelInfo)
	}

	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("%w: path is empty", ErrInvalidRoot)
	}
	isDir, err := s.lister.IsDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRoot, root)
	}
	return s, nil
}

// NewFiltered creates a Scanner with an explicit predicate list. A nil list
// is a configuration error; an empty list is accepted and behaves exactly
// like an unfiltered Scanner (no filtered hooks ever fire).
func NewFiltered(root string, predicates []PathPredicate, opts ...Option) (*Scanner, error) {
	if predicates == nil {
		return nil, ErrNilFilter
	}
	preds := make([]PathPredicate, len(predicates))
	copy(preds, predicates)
	return New(root, append([]Option{WithPredicates(preds...)}, opts...)...)
}

// Root returns the directory this Scanner traverses.
func (s *Scanner) Root() string { return s.root }

// Filtered reports whether a filter is configured.
func (s *Scanner) Filtered() bool { return len(s.predicates) > 0 }

// OnStart registers a callback fired once per Search pass, before any
// enumeration or entry hook.
func (s *Scanner) OnStart(fn func()) { s.onStart = append(s.onStart, fn) }

// OnFinish registers a callback fired once per Search pass, after the last
// entry hook, whether the pass ended by exhaustion or by abort.
func (s *Scanner) OnFinish(fn func()) { s.onFinish = append(s.onFinish, fn) }

// OnDirFound registers a hook fired for every discovered directory, before
// filter evaluation.
func (s *Scanner) OnDirFound(h Hook) { s.onDirFound = append(s.onDirFound, h) }

// OnFileFound registers a hook fired for every discovered file, before
// filter evaluation.
func (s *Scanner) OnFileFound(h Hook) { s.onFileFound = append(s.onFileFound, h) }

// OnFilteredDirFound registers a hook fired for directories that passed the
// configured filter. Never fires on an unfiltered Scanner.
func (s *Scanner) OnFilteredDirFound(h Hook) {
	s.onFilteredDirFound = append(s.onFilteredDirFound, h)
}

// OnFilteredFileFound registers a hook fired for files that passed the
// configured filter. Never fires on an unfiltered Scanner.
func (s *Scanner) OnFilteredFileFound(h Hook) {
	s.onFilteredFileFound = append(s.onFilteredFileFound, h)
}

// Search starts a new traversal pass and returns its cursor. Nothing
// happens until the first Next call: no enumeration, no hooks, not even the
// start callbacks. The cursor is single-pass and forward-only; call Search
// again for a fresh pass with a fresh start/finish pair.
func (s *Scanner) Search() *Cursor {
	return &Cursor{scanner: s}
}

// Collect drains one Search pass into a slice. It returns the paths yielded
// before the pass ended, along with any enumeration error.
func (s *Scanner) Collect() ([]string, error) {
	c := s.Search()
	var paths []string
	for c.Next() {
		paths = append(paths, c.Path())
	}
	return paths, c.Err()
}

// fireStart dispatches the start callbacks in registration order.
func (s *Scanner) fireStart() {
	s.logger.Debug("search started", zap.String("root", s.root))
	for _, fn := range s.onStart {
		fn()
	}
}

// fireFinish dispatches the finish callbacks in registration order.
func (s *Scanner) fireFinish() {
	s.logger.Debug("search finished", zap.String("root", s.root))
	for _, fn := range s.onFinish {
		fn()
	}
}

// fireHooks runs every subscriber against the event, in registration order.
// All subscribers run; the engine checks the control flags only after the
// whole slot has been dispatched.
func fireHooks(hooks []Hook, ev *EntryEvent) {
	for _, h := range hooks {
		h(ev)
	}
}

// createLogger creates a zap logger with the specified log level.
func createLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	switch level {
	case LogLevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelInfo:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, _ := config.Build()
	return logger
}
