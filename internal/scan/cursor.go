package skim

import "go.uber.org/zap"

// cursorStage tracks which pipeline the cursor is draining. Directories are
// fully processed before the file listing is even requested.
type cursorStage int

const (
	stageDirs cursorStage = iota
	stageFiles
	stageDone
)

// Cursor steps through the results of one Search pass. It is pull-based:
// each Next call advances the traversal just far enough to produce one path,
// firing the per-entry hooks along the way.
//
// The start callbacks fire on the first Next call; the finish callbacks fire
// exactly once, when the producer reaches its terminal state (both pipelines
// exhausted, or a hook set Abort). A consumer that abandons the cursor
// without exhausting it never triggers the finish callbacks. After an
// enumeration failure Next returns false, Err reports the failure, and the
// finish callbacks are not fired.
type Cursor struct {
	scanner *Scanner

	started bool
	stage   cursorStage
	listed  bool // whether the current stage's batch has been fetched
	batch   []string
	index   int

	path string
	err  error
}

// Next advances to the next yielded path. It returns false when the pass is
// over; check Err to distinguish exhaustion or abort from an enumeration
// failure.
func (c *Cursor) Next() bool {
	if c.stage == stageDone {
		return false
	}
	s := c.scanner

	if !c.started {
		c.started = true
		s.fireStart()
	}

	for {
		if !c.listed {
			var err error
			switch c.stage {
			case stageDirs:
				c.batch, err = s.lister.ListDirs(s.root)
			case stageFiles:
				c.batch, err = s.lister.ListFiles(s.root)
			}
			if err != nil {
				// Enumeration failures surface unmodified and terminate the
				// pass without the finish callbacks.
				s.logger.Debug("enumeration failed",
					zap.String("root", s.root),
					zap.Error(err),
				)
				c.err = err
				c.stage = stageDone
				return false
			}
			c.listed = true
			c.index = 0
		}

		if c.index >= len(c.batch) {
			if c.stage == stageDirs {
				c.stage = stageFiles
				c.listed = false
				continue
			}
			c.terminate()
			return false
		}

		path := c.batch[c.index]
		c.index++

		kind, found, filtered := KindDir, s.onDirFound, s.onFilteredDirFound
		if c.stage == stageFiles {
			kind, found, filtered = KindFile, s.onFileFound, s.onFilteredFileFound
		}

		ev := &EntryEvent{path: path, kind: kind}
		fireHooks(found, ev)
		if ev.abort {
			c.terminate()
			return false
		}
		if ev.skip {
			continue
		}

		if s.Filtered() {
			if !s.accept(path) {
				// Rejected entries are dropped silently: no filtered hooks.
				continue
			}
			fireHooks(filtered, ev)
			if ev.abort {
				c.terminate()
				return false
			}
			if ev.skip {
				continue
			}
		}

		c.path = path
		return true
	}
}

// Path returns the path produced by the last successful Next call.
func (c *Cursor) Path() string { return c.path }

// Err returns the enumeration error that ended the pass, if any. It is nil
// after normal exhaustion or a hook-driven abort.
func (c *Cursor) Err() error { return c.err }

// terminate marks the pass finished and fires the finish callbacks. The
// stageDone guard in Next keeps this from running twice.
func (c *Cursor) terminate() {
	c.stage = stageDone
	c.scanner.fireFinish()
}
