package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	skim "github.com/skimfs/skim/internal/scan"
	"github.com/spf13/cobra"
)

// shellCmd represents the interactive shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactively scan directories read from standard input",
	Long: `Start an interactive shell that reads directory paths from standard
input and prints their immediate children (subdirectories first, then
files). Enter an empty line to skip, or "exit" / "quit" to leave.

Example session:
  skim> /tmp
  -- scanning /tmp --
  dir:  /tmp/cache
  file: /tmp/notes.txt
  -- done --`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell() error {
	logger := buildLogger()
	defer logger.Sync()

	in := bufio.NewScanner(os.Stdin)
	fmt.Print("skim> ")
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			fmt.Print("skim> ")
			continue
		case "exit", "quit":
			return nil
		}

		if err := scanAndPrint(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		fmt.Print("skim> ")
	}
	return in.Err()
}

// scanAndPrint runs one traversal, printing banners and discovered paths
// from the hook subscriptions rather than the cursor loop.
func scanAndPrint(root string) error {
	scanner, err := skim.New(root)
	if err != nil {
		return err
	}

	scanner.OnStart(func() {
		fmt.Printf("-- scanning %s --\n", root)
	})
	scanner.OnFinish(func() {
		fmt.Println("-- done --")
	})
	scanner.OnDirFound(func(ev *skim.EntryEvent) {
		fmt.Printf("dir:  %s\n", ev.Path())
	})
	scanner.OnFileFound(func(ev *skim.EntryEvent) {
		fmt.Printf("file: %s\n", ev.Path())
	})

	// The hooks do the printing; the loop just drives the traversal.
	cursor := scanner.Search()
	for cursor.Next() {
	}
	return cursor.Err()
}
