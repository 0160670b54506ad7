// Package scanner implements the single-pass line scanner at the heart
// of cereslint: a two-state machine that tracks fenced code blocks,
// checks them against configured limits, hands embedded script segments
// to a lint backend, and tallies words.
package scanner

import (
	"regexp"
	"strings"

	"github.com/ceresdoc/cereslint/internal/document"
	"github.com/ceresdoc/cereslint/internal/lint"
)

const (
	// fenceToken opens and closes a code block at column 0; the current
	// scan state decides which.
	fenceToken = "```"

	// scriptTag on the opening fence line declares the block's embedded
	// content as lintable script.
	scriptTag = "script"
)

// scriptSegmentRe matches one embedded script segment inside a block
// body. Non-greedy; an unterminated segment runs to the end of the body.
var scriptSegmentRe = regexp.MustCompile(`(?s)<%(.*?)(?:%>|$)`)

// ============================================================================
// Line Classification
// ============================================================================

// Kind classifies a single line relative to the current scan state
type Kind int

const (
	Outside Kind = iota // ordinary prose
	Inside              // content line within a code block
	OpenBlock
	CloseBlock
)

// Classify determines whether a line opens a block, closes one, or is
// ordinary content. Pure function of the line and the in-block flag.
func Classify(line string, inBlock bool) Kind {
	if strings.HasPrefix(line, fenceToken) {
		if inBlock {
			return CloseBlock
		}
		return OpenBlock
	}
	if inBlock {
		return Inside
	}
	return Outside
}

// declaresScript reports whether an opening fence line declares the
// block's content as script
func declaresScript(line string) bool {
	return strings.Contains(line, scriptTag)
}

// ============================================================================
// Word Accounting
// ============================================================================

// CountTokens counts the space-separated tokens of a line. The split is
// on single space characters and every segment counts, including empty
// ones between consecutive spaces. Kept bug-for-bug compatible with the
// established counting behavior; do not switch to strings.Fields.
func CountTokens(line string) int {
	return len(strings.Split(line, " "))
}

// ============================================================================
// Block Scanner
// ============================================================================

// Limits holds the validated content limits for a run. Zero means unset.
type Limits struct {
	LineWidth        int  // max trimmed width of a line inside a block
	BlockLines       int  // max content lines per block
	ExcludeCodeWords bool // skip in-block lines when tallying words
}

// Scanner consumes one document's lines in order and emits diagnostics
// as findings occur. Not safe for reuse across documents; create one
// per document.
type Scanner struct {
	limits Limits
	linter lint.Linter // nil disables the embedded script check
	emit   document.Emitter

	inBlock        bool
	blockStartLine int // opening fence line; 0 while outside a block
	lineCount      int
	body           strings.Builder
	declaredScript bool

	words int
}

// New creates a scanner for a single document
func New(limits Limits, linter lint.Linter, emit document.Emitter) *Scanner {
	return &Scanner{limits: limits, linter: linter, emit: emit}
}

// Line feeds the scanner the next line. lineNo is 1-based and must
// increase by one per call.
func (s *Scanner) Line(lineNo int, line string) {
	kind := Classify(line, s.inBlock)

	switch kind {
	case OpenBlock:
		s.inBlock = true
		s.blockStartLine = lineNo
		s.lineCount = 0
		s.body.Reset()
		s.declaredScript = declaresScript(line)

	case CloseBlock:
		s.closeBlock(lineNo)
		s.inBlock = false
		s.blockStartLine = 0

	case Inside:
		width := len(strings.TrimSpace(line))
		if s.limits.LineWidth > 0 && width > s.limits.LineWidth {
			s.emit.Errorf(lineNo, "line width %d exceeds limit %d", width, s.limits.LineWidth)
		}
		s.lineCount++
		s.body.WriteString(line)
		s.body.WriteString("\n")
	}

	// The fence lines themselves always count; only content strictly
	// inside a block is subject to exclusion.
	if !s.limits.ExcludeCodeWords || kind != Inside {
		s.words += CountTokens(line)
	}
}

// Words returns the document's accumulated word tally
func (s *Scanner) Words() int {
	return s.words
}

// InBlock reports whether the scanner is currently inside a code block
func (s *Scanner) InBlock() bool {
	return s.inBlock
}

// closeBlock runs the block-close checks: embedded script lint, then
// the block line-count limit.
func (s *Scanner) closeBlock(closeLine int) {
	s.checkScript()

	if s.limits.BlockLines > 0 && s.lineCount > s.limits.BlockLines {
		s.emit.Errorf(closeLine, "line count %d exceeds limit %d", s.lineCount, s.limits.BlockLines)
	}
}

// checkScript extracts embedded script segments from the block body and
// submits them to the lint backend
func (s *Scanner) checkScript() {
	matches := scriptSegmentRe.FindAllStringSubmatch(s.body.String(), -1)
	if len(matches) == 0 {
		return
	}

	if !s.declaredScript {
		s.emit.Noticef(s.blockStartLine, "code block not declared as script but contains script markers")
		return
	}
	if s.linter == nil {
		return
	}

	var code strings.Builder
	for _, m := range matches {
		code.WriteString(m[1])
	}

	raw, err := s.linter.Lint(code.String())
	if err != nil {
		s.emit.Errorf(s.blockStartLine, "embedded script check failed: %v", err)
		return
	}
	if report, bad := lint.ParseReport(raw, s.blockStartLine); bad {
		s.emit.Errorf(report.Line, "embedded script: %s", report.Message)
	}
}
