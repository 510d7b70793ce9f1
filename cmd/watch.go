package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/skimfs/skim/scan"
	"github.com/spf13/cobra"
)

var (
	// Watch command options
	watchEvents        []string
	watchPattern       string
	watchIgnore        string
	watchTimeout       time.Duration
	watchIncludeHidden bool
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Watch a directory's immediate children for changes",
	Long: `Watch the immediate children of a directory and print an event when an
entry is created, modified, or deleted. Like the scan itself, watching is
single-level: changes inside subdirectories are not reported.

Examples:
  skim watch /path/to/watch
  skim watch --events=create,modify /path/to/watch
  skim watch --pattern="*.go" --timeout=30m /path/to/watch`,
	Run: func(cmd *cobra.Command, args []string) {
		// Get the directory to watch
		var watchDir string
		if len(args) > 0 {
			watchDir = args[0]
		} else {
			var err error
			watchDir, err = os.Getwd()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting current directory: %v\n", err)
				os.Exit(1)
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Convert string events to WatchEvent types
		var events []scan.WatchEvent
		for _, e := range watchEvents {
			switch strings.ToLower(e) {
			case "create":
				events = append(events, scan.EventCreate)
			case "write", "modify":
				events = append(events, scan.EventModify)
			case "remove", "delete":
				events = append(events, scan.EventDelete)
			case "rename":
				events = append(events, scan.EventRename)
			case "chmod":
				events = append(events, scan.EventChmod)
			default:
				fmt.Fprintf(os.Stderr, "Unknown event type: %s\n", e)
			}
		}

		opts := scan.WatchOptions{
			Events:        events,
			Pattern:       watchPattern,
			IgnorePattern: watchIgnore,
			IncludeHidden: watchIncludeHidden,
			Timeout:       watchTimeout,
		}

		fmt.Printf("Watching %s for changes...\n", watchDir)
		fmt.Println("Press Ctrl+C to exit.")

		if err := scan.Watch(ctx, watchDir, opts, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching directory: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	// Define flags for the watch command
	watchCmd.Flags().StringSliceVar(&watchEvents, "events", []string{}, "Events to watch for (create, modify, delete, rename, chmod)")
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "File pattern to match (e.g., *.go)")
	watchCmd.Flags().StringVar(&watchIgnore, "ignore", "", "File pattern to ignore")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "Duration to watch before exiting (e.g., 1h, 30m)")
	watchCmd.Flags().BoolVar(&watchIncludeHidden, "include-hidden", false, "Include hidden files and directories")
}
