package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	skim "github.com/skimfs/skim/internal/scan"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skim [options] <path>",
	Short: "List the immediate children of a directory",
	Long: `skim is a command line utility that lazily lists the immediate children
of a directory (subdirectories first, then files), with composable filters
and hooks that can skip entries or abort the traversal.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Flags
	rootCmd.Flags().String("glob", "", "Only list entries whose name matches this glob")
	rootCmd.Flags().String("regex", "", "Only list entries whose path matches this regular expression")
	rootCmd.Flags().String("prefix", "", "Only list entries whose name starts with this prefix")
	rootCmd.Flags().StringSlice("ext", []string{}, "Only list entries with one of these extensions (e.g. .go,.txt)")
	rootCmd.Flags().Bool("exclude-hidden", false, "Exclude dotfiles and dot-directories")
	rootCmd.Flags().String("skip", "", "Skip entries whose name matches this glob (via hook, not filter)")
	rootCmd.Flags().Int("limit", 0, "Abort the traversal after this many results (0 = no limit)")
	rootCmd.Flags().String("format", "text", "Output format (text|json)")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().Bool("silent", false, "Disable all output except results and errors")
	rootCmd.Flags().String("log-file", "", "Write logs to this rotating file instead of stderr")

	// Bind flags to viper
	viper.BindPFlag("glob", rootCmd.Flags().Lookup("glob"))
	viper.BindPFlag("regex", rootCmd.Flags().Lookup("regex"))
	viper.BindPFlag("prefix", rootCmd.Flags().Lookup("prefix"))
	viper.BindPFlag("ext", rootCmd.Flags().Lookup("ext"))
	viper.BindPFlag("exclude-hidden", rootCmd.Flags().Lookup("exclude-hidden"))
	viper.BindPFlag("skip", rootCmd.Flags().Lookup("skip"))
	viper.BindPFlag("limit", rootCmd.Flags().Lookup("limit"))
	viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.Flags().Lookup("silent"))
	viper.BindPFlag("log-file", rootCmd.Flags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".skim" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".skim")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// buildLogger constructs the CLI logger from the verbosity flags, writing to
// a rotating file when --log-file is set.
func buildLogger() *zap.Logger {
	level := zapcore.InfoLevel
	if viper.GetBool("verbose") {
		level = zapcore.DebugLevel
	}
	if viper.GetBool("silent") {
		level = zapcore.ErrorLevel
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	var sink zapcore.WriteSyncer = zapcore.AddSync(os.Stderr)
	if logFile := viper.GetString("log-file"); logFile != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	return zap.New(zapcore.NewCore(encoder, sink, level))
}

// buildPredicates assembles the composed filter from the CLI flags.
func buildPredicates() ([]skim.PathPredicate, error) {
	var preds []skim.PathPredicate

	if glob := viper.GetString("glob"); glob != "" {
		preds = append(preds, skim.MatchGlob(glob))
	}
	if pattern := viper.GetString("regex"); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
		}
		preds = append(preds, skim.MatchRegexp(re))
	}
	if prefix := viper.GetString("prefix"); prefix != "" {
		preds = append(preds, skim.HasPrefix(prefix))
	}
	if exts := viper.GetStringSlice("ext"); len(exts) > 0 {
		preds = append(preds, skim.HasExt(exts...))
	}
	if viper.GetBool("exclude-hidden") {
		preds = append(preds, skim.ExcludeHidden())
	}
	return preds, nil
}

func runScan(root string) error {
	logger := buildLogger()
	defer logger.Sync()

	preds, err := buildPredicates()
	if err != nil {
		return err
	}

	scanner, err := skim.New(root,
		skim.WithLogger(logger),
		skim.WithPredicates(preds...),
	)
	if err != nil {
		return err
	}

	silent := viper.GetBool("silent")
	jsonOut := viper.GetString("format") == "json"

	var dirsFound, filesFound int
	scanner.OnDirFound(func(ev *skim.EntryEvent) { dirsFound++ })
	scanner.OnFileFound(func(ev *skim.EntryEvent) { filesFound++ })

	if !silent && !jsonOut {
		scanner.OnStart(func() {
			fmt.Printf("Scanning %s ...\n", root)
		})
		scanner.OnFinish(func() {
			fmt.Printf("Done: examined %d directories and %d files.\n", dirsFound, filesFound)
		})
	}

	// Skip matching entries before they reach the filter.
	if skipGlob := viper.GetString("skip"); skipGlob != "" {
		match := skim.MatchGlob(skipGlob)
		skipHook := func(ev *skim.EntryEvent) {
			if match(ev.Path()) {
				ev.Skip()
			}
		}
		scanner.OnDirFound(skipHook)
		scanner.OnFileFound(skipHook)
	}

	// Abort once enough results have been produced. The hook fires just
	// before an entry would be yielded, so result limit+1 triggers the abort.
	if limit := viper.GetInt("limit"); limit > 0 {
		var emitted int
		limitHook := func(ev *skim.EntryEvent) {
			if ev.Skipped() {
				return
			}
			emitted++
			if emitted > limit {
				ev.Abort()
			}
		}
		if scanner.Filtered() {
			scanner.OnFilteredDirFound(limitHook)
			scanner.OnFilteredFileFound(limitHook)
		} else {
			scanner.OnDirFound(limitHook)
			scanner.OnFileFound(limitHook)
		}
	}

	cursor := scanner.Search()
	var results []string
	for cursor.Next() {
		if jsonOut {
			results = append(results, cursor.Path())
		} else {
			fmt.Println(cursor.Path())
		}
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	if jsonOut {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return nil
}
