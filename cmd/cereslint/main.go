package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ceresdoc/cereslint/internal/config"
	"github.com/ceresdoc/cereslint/internal/document"
	"github.com/ceresdoc/cereslint/internal/lint"
	"github.com/ceresdoc/cereslint/internal/processor"
	"github.com/ceresdoc/cereslint/internal/ui"
	"github.com/ceresdoc/cereslint/internal/urlcheck"
	"github.com/ceresdoc/cereslint/internal/walker"
)

var version = "0.1.0"

const fetchTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "cereslint [path]",
	Short: "Lint Ceres documents",
	Long: `Document linter for Ceres markup files.

Walks a file or directory tree and, for every matched document,
counts words, checks embedded code blocks against line-width and
line-count limits, lints embedded script segments for syntax errors,
and optionally verifies embedded URLs are reachable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolP("article", "a", false, "Article preset: 500 words per page, line width 80")
	rootCmd.Flags().BoolP("include-hidden", "A", false, "Include hidden files and directories")
	rootCmd.Flags().BoolP("book", "b", false, "Book preset: 250 words per page, line width 80")
	rootCmd.Flags().IntP("block-lines", "c", 0, "Max content lines per code block")
	rootCmd.Flags().IntP("line-width", "l", 0, "Max line width inside code blocks")
	rootCmd.Flags().IntP("words-per-page", "p", 0, "Words per page for count output")
	rootCmd.Flags().BoolP("check-urls", "u", false, "Verify embedded URLs are reachable")
	rootCmd.Flags().BoolP("exclude-code", "x", false, "Exclude code block content from word counts")
	rootCmd.Flags().String("pattern", "", "Document file pattern (default \"*.ceres\")")
	rootCmd.Flags().Bool("interactive", false, "Browse findings interactively after the run")
	rootCmd.Flags().String("lint-command", "", "External command to lint script segments (reads stdin)")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")

	viper.BindPFlag("check_urls", rootCmd.Flags().Lookup("check-urls"))
	viper.BindPFlag("include_hidden", rootCmd.Flags().Lookup("include-hidden"))
	viper.BindPFlag("exclude_code_words", rootCmd.Flags().Lookup("exclude-code"))
	viper.BindPFlag("lint_command", rootCmd.Flags().Lookup("lint-command"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// applyPresets overlays the article/book presets before explicit
// numeric flags, so -l and -p still win
func applyPresets(cmd *cobra.Command) {
	article, _ := cmd.Flags().GetBool("article")
	book, _ := cmd.Flags().GetBool("book")

	if article {
		config.SetWordsPerPage(500)
	} else if book {
		config.SetWordsPerPage(250)
	}
	if (article || book) && !cmd.Flags().Changed("line-width") {
		config.SetLineWidthLimit(80)
	}
}

// applyLimitFlags validates and overlays the numeric limit flags.
// Non-positive values are a fatal configuration error; nothing is
// scanned.
func applyLimitFlags(cmd *cobra.Command) error {
	limits := []struct {
		flag string
		name string
		set  func(int)
	}{
		{"block-lines", "-c", config.SetBlockLineLimit},
		{"line-width", "-l", config.SetLineWidthLimit},
		{"words-per-page", "-p", config.SetWordsPerPage},
	}

	for _, l := range limits {
		if !cmd.Flags().Changed(l.flag) {
			continue
		}
		value, err := cmd.Flags().GetInt(l.flag)
		if err != nil {
			return err
		}
		if err := config.ValidateLimit(l.name, value); err != nil {
			return err
		}
		l.set(value)
	}
	return nil
}

func runLint(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	applyPresets(cmd)
	if err := applyLimitFlags(cmd); err != nil {
		return err
	}
	if pattern, _ := cmd.Flags().GetString("pattern"); pattern != "" {
		config.SetPattern(pattern)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("error resolving path: %w", err)
	}

	paths, err := walker.Collect(absPath, config.GetPattern(), config.GetIncludeHidden())
	if err != nil {
		return fmt.Errorf("path error: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents matching %q under %s", config.GetPattern(), absPath)
	}

	var linter lint.Linter = lint.StarlarkLinter{}
	if lintCmd := config.GetLintCommand(); lintCmd != "" {
		linter = lint.CommandLinter{Command: lintCmd}
	}

	var fetcher urlcheck.Fetcher
	if config.GetCheckURLs() {
		fetcher = urlcheck.NewHTTPFetcher(fetchTimeout)
	}

	interactive, _ := cmd.Flags().GetBool("interactive")

	var emit document.Emitter
	noColor, _ := cmd.Flags().GetBool("no-color")
	if config.GetColor() && !noColor {
		emit = func(d document.Diagnostic) {
			fmt.Println(ui.RenderDiagnostic(d))
		}
	}

	p := processor.New(processor.Options{
		Limits:       config.Limits(),
		WordsPerPage: config.GetWordsPerPage(),
		Linter:       linter,
		Fetcher:      fetcher,
		URLDelay:     config.GetURLCheckDelayMS(),
		Collect:      interactive,
	}, os.Stdout, emit)
	p.Run(paths)

	if interactive {
		return ui.Browse(p.Findings())
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
