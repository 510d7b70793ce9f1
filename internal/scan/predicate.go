package skim

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/unicode/norm"
)

// PathPredicate is a single acceptance test over a discovered path.
// Predicates are assumed side-effect-free; the engine may short-circuit
// their evaluation.
type PathPredicate func(path string) bool

// accept applies the scanner's composed predicate: a path passes iff every
// predicate accepts it, evaluated in registration order with short-circuit
// on the first rejection.
func (s *Scanner) accept(path string) bool {
	for _, pred := range s.predicates {
		if !pred(path) {
			return false
		}
	}
	return true
}

// MatchGlob accepts entries whose base name matches the given doublestar
// glob pattern (e.g. "*.go", "data-??"). A malformed pattern matches
// nothing.
func MatchGlob(pattern string) PathPredicate {
	return func(path string) bool {
		matched, err := doublestar.Match(pattern, filepath.Base(path))
		return err == nil && matched
	}
}

// MatchRegexp accepts entries whose full path matches the regular
// expression. The path is NFC-normalized before matching so that composed
// and decomposed Unicode file names compare equal.
func MatchRegexp(re *regexp.Regexp) PathPredicate {
	return func(path string) bool {
		return re.MatchString(norm.NFC.String(path))
	}
}

// HasPrefix accepts entries whose base name starts with prefix.
func HasPrefix(prefix string) PathPredicate {
	return func(path string) bool {
		return strings.HasPrefix(filepath.Base(path), prefix)
	}
}

// HasExt accepts entries whose extension equals one of exts (e.g. ".txt").
func HasExt(exts ...string) PathPredicate {
	return func(path string) bool {
		ext := filepath.Ext(path)
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}
}

// ExcludeHidden rejects dotfiles and dot-directories.
func ExcludeHidden() PathPredicate {
	return func(path string) bool {
		return !isHidden(path)
	}
}

// isHidden reports whether the base name of path starts with a dot.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && base != ".." && strings.HasPrefix(base, ".")
}
