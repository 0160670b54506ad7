// Package lint checks embedded script segments for syntax errors.
//
// Backends implement Linter and report through a shared plain-text
// contract: a clean run produces a report containing "Syntax OK", an
// error report references the offending line as "on line <N>" where N
// is 1-based and relative to the submitted source. ParseReport is the
// adapter from that contract to a document diagnostic, so alternate
// backends can be swapped in without touching the scanner.
package lint

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/syntax"
)

// CleanMarker is the phrase a backend report contains when the source
// parsed without errors.
const CleanMarker = "Syntax OK"

// Linter checks script source for syntax errors and returns the raw
// report text.
type Linter interface {
	Lint(source string) (string, error)
}

// ============================================================================
// Starlark Backend
// ============================================================================

// StarlarkLinter parses script segments as Starlark in-process.
type StarlarkLinter struct{}

// Lint parses the source and reports the first syntax error, if any.
func (StarlarkLinter) Lint(source string) (string, error) {
	_, err := syntax.Parse("segment.star", source, 0)
	if err == nil {
		return CleanMarker, nil
	}
	if serr, ok := err.(syntax.Error); ok {
		return fmt.Sprintf("syntax error, %s on line %d", serr.Msg, serr.Pos.Line), nil
	}
	return fmt.Sprintf("syntax error, %v on line 1", err), nil
}

// ============================================================================
// External Command Backend
// ============================================================================

// CommandLinter pipes script source to an external lint command.
type CommandLinter struct {
	Command string // shell command receiving the source on stdin
	Shell   string // shell to run it with; defaults to $SHELL or /bin/bash
}

// Lint runs the configured command and returns its combined output.
// A non-zero exit with a report is a normal lint failure; only a run
// that produced no output at all is surfaced as an error.
func (c CommandLinter) Lint(source string) (string, error) {
	cmd := exec.Command(c.shell(), "-c", c.Command)
	cmd.Stdin = strings.NewReader(source)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()
	if out.Len() == 0 && runErr != nil {
		return "", fmt.Errorf("lint command: %w", runErr)
	}
	return out.String(), nil
}

func (c CommandLinter) shell() string {
	if c.Shell != "" {
		return c.Shell
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/bash"
}

// ============================================================================
// Report Parsing
// ============================================================================

// Report is a parsed lint finding with a document-absolute line number.
type Report struct {
	Line    int
	Message string
}

var (
	lineRefRe = regexp.MustCompile(`on line (\d+)`)
	// Wrapper phrases backends prepend that carry no information once
	// the line number has been extracted.
	boilerplateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\S*segment\.star:?\s*`),
		regexp.MustCompile(`syntax error,\s*`),
		regexp.MustCompile(`\s*on line \d+`),
	}
)

// ParseReport interprets a backend report. It returns false when the
// report indicates a clean result. Line numbers in the report are
// segment-relative; blockStart is the document line of the opening
// fence, so segment line N maps to document line blockStart+N.
func ParseReport(raw string, blockStart int) (Report, bool) {
	if strings.Contains(raw, CleanMarker) {
		return Report{}, false
	}

	line := blockStart
	if m := lineRefRe.FindStringSubmatch(raw); m != nil {
		n, _ := strconv.Atoi(m[1])
		line = blockStart + n
	}

	msg := raw
	for _, re := range boilerplateRes {
		msg = re.ReplaceAllString(msg, "")
	}
	// Keep the first non-empty line of whatever remains.
	for _, l := range strings.Split(msg, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			msg = l
			break
		}
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = "script did not pass the syntax check"
	}

	return Report{Line: line, Message: msg}, true
}
