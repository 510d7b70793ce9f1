package skim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatchEvent represents a filesystem event type.
type WatchEvent string

// Watch event types.
const (
	EventCreate WatchEvent = "create"
	EventModify WatchEvent = "modify"
	EventDelete WatchEvent = "delete"
	EventRename WatchEvent = "rename"
	EventChmod  WatchEvent = "chmod"
)

// WatchOptions defines options for watching a directory's immediate
// children. Watching is single-level, matching the traversal scope: only
// entries directly under the root are reported.
type WatchOptions struct {
	// Events to watch for. If empty, all events are watched.
	Events []WatchEvent

	// Pattern to match base names (doublestar glob, e.g. "*.go").
	Pattern string

	// Pattern to ignore base names.
	IgnorePattern string

	// Whether to include hidden files and directories.
	IncludeHidden bool

	// Timeout duration (0 means no timeout).
	Timeout time.Duration
}

// WatchMessage contains information about one filesystem event.
type WatchMessage struct {
	Path  string     // Full path to the entry
	Name  string     // Base name of the entry
	Dir   string     // Directory containing the entry
	Size  int64      // Size in bytes (0 for deleted entries)
	Time  time.Time  // Modification time
	IsDir bool       // Whether the entry is a directory
	Event WatchEvent // Event type
}

// WatchResult represents a watch event result.
type WatchResult struct {
	Message WatchMessage
	Error   error
}

// WatchHandler is a function that processes watch events.
type WatchHandler func(ctx context.Context, result WatchResult) error

// defaultWatchHandler returns a handler that prints events.
func defaultWatchHandler() WatchHandler {
	return func(ctx context.Context, result WatchResult) error {
		if result.Error != nil {
			return result.Error
		}
		fmt.Printf("%s: %s\n", strings.ToUpper(string(result.Message.Event)), result.Message.Path)
		return nil
	}
}

// Watch monitors the immediate children of root for filesystem changes
// until the context is canceled or the configured timeout elapses.
func Watch(ctx context.Context, root string, opts WatchOptions, handler WatchHandler) error {
	if handler == nil {
		handler = defaultWatchHandler()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("error watching directory %s: %w", root, err)
	}

	eventMap := make(map[fsnotify.Op]bool)
	if len(opts.Events) > 0 {
		for _, e := range opts.Events {
			switch e {
			case EventCreate:
				eventMap[fsnotify.Create] = true
			case EventModify:
				eventMap[fsnotify.Write] = true
			case EventDelete:
				eventMap[fsnotify.Remove] = true
			case EventRename:
				eventMap[fsnotify.Rename] = true
			case EventChmod:
				eventMap[fsnotify.Chmod] = true
			}
		}
	} else {
		eventMap[fsnotify.Create] = true
		eventMap[fsnotify.Write] = true
		eventMap[fsnotify.Remove] = true
		eventMap[fsnotify.Rename] = true
		eventMap[fsnotify.Chmod] = true
	}

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return nil
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			var eventType WatchEvent
			shouldProcess := false
			if event.Has(fsnotify.Create) && eventMap[fsnotify.Create] {
				shouldProcess = true
				eventType = EventCreate
			} else if event.Has(fsnotify.Write) && eventMap[fsnotify.Write] {
				shouldProcess = true
				eventType = EventModify
			} else if event.Has(fsnotify.Remove) && eventMap[fsnotify.Remove] {
				shouldProcess = true
				eventType = EventDelete
			} else if event.Has(fsnotify.Rename) && eventMap[fsnotify.Rename] {
				shouldProcess = true
				eventType = EventRename
			} else if event.Has(fsnotify.Chmod) && eventMap[fsnotify.Chmod] {
				shouldProcess = true
				eventType = EventChmod
			}
			if !shouldProcess {
				continue
			}

			var fileInfo os.FileInfo
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				fileInfo, err = os.Stat(event.Name)
				if err != nil {
					if herr := handler(ctx, WatchResult{
						Error: fmt.Errorf("error getting file info for %s: %w", event.Name, err),
					}); herr != nil {
						return herr
					}
					continue
				}
			}

			if opts.Pattern != "" {
				matched, err := doublestar.Match(opts.Pattern, filepath.Base(event.Name))
				if err != nil {
					if herr := handler(ctx, WatchResult{
						Error: fmt.Errorf("error matching pattern: %w", err),
					}); herr != nil {
						return herr
					}
					continue
				}
				if !matched {
					continue
				}
			}

			if opts.IgnorePattern != "" {
				matched, err := doublestar.Match(opts.IgnorePattern, filepath.Base(event.Name))
				if err != nil {
					if herr := handler(ctx, WatchResult{
						Error: fmt.Errorf("error matching ignore pattern: %w", err),
					}); herr != nil {
						return herr
					}
					continue
				}
				if matched {
					continue
				}
			}

			if !opts.IncludeHidden && isHidden(event.Name) {
				continue
			}

			msg := WatchMessage{
				Path:  event.Name,
				Name:  filepath.Base(event.Name),
				Dir:   filepath.Dir(event.Name),
				Time:  time.Now(),
				Event: eventType,
			}
			if fileInfo != nil {
				msg.Size = fileInfo.Size()
				msg.IsDir = fileInfo.IsDir()
				msg.Time = fileInfo.ModTime()
			}

			if err := handler(ctx, WatchResult{Message: msg}); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if herr := handler(ctx, WatchResult{
				Error: fmt.Errorf("watcher error: %w", err),
			}); herr != nil {
				return herr
			}
		}
	}
}
