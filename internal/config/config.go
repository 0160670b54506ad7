package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ceresdoc/cereslint/internal/scanner"
)

// Config holds the application configuration
type Config struct {
	Pattern         string `mapstructure:"pattern"`
	LineWidthLimit  int    `mapstructure:"line_width_limit"`
	BlockLineLimit  int    `mapstructure:"block_line_limit"`
	WordsPerPage    int    `mapstructure:"words_per_page"`
	ExcludeCode     bool   `mapstructure:"exclude_code_words"`
	CheckURLs       bool   `mapstructure:"check_urls"`
	IncludeHidden   bool   `mapstructure:"include_hidden"`
	URLCheckDelayMS int    `mapstructure:"url_check_delay_ms"`
	LintCommand     string `mapstructure:"lint_command"`
	Color           bool   `mapstructure:"color"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("pattern", "*.ceres")
	viper.SetDefault("line_width_limit", 0) // unset
	viper.SetDefault("block_line_limit", 0) // unset
	viper.SetDefault("words_per_page", 0)   // unset
	viper.SetDefault("exclude_code_words", false)
	viper.SetDefault("check_urls", false)
	viper.SetDefault("include_hidden", false)
	viper.SetDefault("url_check_delay_ms", 500)
	viper.SetDefault("lint_command", "") // empty runs the built-in script check
	viper.SetDefault("color", true)

	viper.SetConfigName("cereslint")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "cereslint"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("CERESLINT")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetPattern returns the document file pattern
func GetPattern() string {
	return viper.GetString("pattern")
}

// GetLineWidthLimit returns the in-block line width limit, 0 when unset
func GetLineWidthLimit() int {
	return viper.GetInt("line_width_limit")
}

// GetBlockLineLimit returns the per-block line count limit, 0 when unset
func GetBlockLineLimit() int {
	return viper.GetInt("block_line_limit")
}

// GetWordsPerPage returns the page size for count formatting, 0 when unset
func GetWordsPerPage() int {
	return viper.GetInt("words_per_page")
}

// GetExcludeCode returns whether in-block lines are left out of word counts
func GetExcludeCode() bool {
	return viper.GetBool("exclude_code_words")
}

// GetCheckURLs returns whether URL reachability checks run
func GetCheckURLs() bool {
	return viper.GetBool("check_urls")
}

// GetIncludeHidden returns whether dot-prefixed paths are scanned
func GetIncludeHidden() bool {
	return viper.GetBool("include_hidden")
}

// GetURLCheckDelayMS returns the pause between URL probes in milliseconds
func GetURLCheckDelayMS() int {
	return viper.GetInt("url_check_delay_ms")
}

// GetLintCommand returns the external lint command, empty for the
// built-in script backend
func GetLintCommand() string {
	return viper.GetString("lint_command")
}

// GetColor returns whether diagnostic output is colorized
func GetColor() bool {
	return viper.GetBool("color")
}

// SetLineWidthLimit sets the line width limit at runtime
func SetLineWidthLimit(n int) {
	viper.Set("line_width_limit", n)
	C.LineWidthLimit = n
}

// SetBlockLineLimit sets the block line count limit at runtime
func SetBlockLineLimit(n int) {
	viper.Set("block_line_limit", n)
	C.BlockLineLimit = n
}

// SetWordsPerPage sets the page size at runtime
func SetWordsPerPage(n int) {
	viper.Set("words_per_page", n)
	C.WordsPerPage = n
}

// SetPattern sets the document pattern at runtime
func SetPattern(pattern string) {
	viper.Set("pattern", pattern)
	C.Pattern = pattern
}

// ValidateLimit rejects non-positive values for a numeric limit flag
func ValidateLimit(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("invalid value for %s: %d (must be a positive integer)", name, value)
	}
	return nil
}

// Limits bundles the validated content limits for the scanner
func Limits() scanner.Limits {
	return scanner.Limits{
		LineWidth:        GetLineWidthLimit(),
		BlockLines:       GetBlockLineLimit(),
		ExcludeCodeWords: GetExcludeCode(),
	}
}
