// Package processor drives the scan over each document and accumulates
// the run totals.
package processor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ceresdoc/cereslint/internal/counter"
	"github.com/ceresdoc/cereslint/internal/document"
	"github.com/ceresdoc/cereslint/internal/lint"
	"github.com/ceresdoc/cereslint/internal/scanner"
	"github.com/ceresdoc/cereslint/internal/urlcheck"
)

// Options configures a run. Limit fields arrive validated from the CLI
// layer: positive, or zero for unset.
type Options struct {
	Limits       scanner.Limits
	WordsPerPage int
	Linter       lint.Linter      // nil disables embedded script checks
	Fetcher      urlcheck.Fetcher // nil disables URL checks
	URLDelay     int              // milliseconds between URL probes
	Collect      bool             // retain findings for the interactive browser
}

// Processor runs the line scan over an ordered set of documents,
// streaming diagnostics and count trailers to its writer.
type Processor struct {
	opts Options
	out  io.Writer
	emit document.Emitter // formats one diagnostic line

	total    int
	findings []document.Finding
}

// New creates a processor writing to out. emit receives every
// diagnostic as it is produced; pass nil for plain output.
func New(opts Options, out io.Writer, emit document.Emitter) *Processor {
	p := &Processor{opts: opts, out: out}
	if emit == nil {
		emit = func(d document.Diagnostic) {
			fmt.Fprintln(out, d.String())
		}
	}
	p.emit = emit
	return p
}

// Run processes every document in order, then prints the run total.
// Content findings never abort the run; only the inability to produce
// any output at all would.
func (p *Processor) Run(paths []string) {
	multi := len(paths) > 1
	for _, path := range paths {
		if multi {
			fmt.Fprintf(p.out, "%s:\n", path)
		}
		p.processFile(path)
	}
	fmt.Fprintf(p.out, "Total counts: %s\n", counter.Format(p.total, p.opts.WordsPerPage))
}

// Total returns the run-wide word tally accumulated so far
func (p *Processor) Total() int {
	return p.total
}

// Findings returns the retained findings; empty unless Collect was set
func (p *Processor) Findings() []document.Finding {
	return p.findings
}

func (p *Processor) processFile(path string) {
	emit := p.emitterFor(path)

	file, err := os.Open(path)
	if err != nil {
		emit.Errorf(0, "cannot read document: %v", err)
		fmt.Fprintf(p.out, "Counts: %s\n", counter.Format(0, p.opts.WordsPerPage))
		return
	}
	defer file.Close()

	sc := scanner.New(p.opts.Limits, p.opts.Linter, emit)

	var urls *urlcheck.Checker
	if p.opts.Fetcher != nil {
		delay := time.Duration(p.opts.URLDelay) * time.Millisecond
		urls = urlcheck.NewChecker(p.opts.Fetcher, delay, emit)
	}

	lineNo := 0
	lines := bufio.NewScanner(file)
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lines.Scan() {
		lineNo++
		line := lines.Text()
		sc.Line(lineNo, line)
		if urls != nil {
			urls.CheckLine(lineNo, line)
		}
	}
	if err := lines.Err(); err != nil {
		emit.Errorf(lineNo, "read error: %v", err)
	}

	words := sc.Words()
	fmt.Fprintf(p.out, "Counts: %s\n", counter.Format(words, p.opts.WordsPerPage))
	p.total += words
}

// emitterFor wraps the output emitter, retaining findings when the run
// collects them for the browser.
func (p *Processor) emitterFor(path string) document.Emitter {
	if !p.opts.Collect {
		return p.emit
	}
	return func(d document.Diagnostic) {
		p.findings = append(p.findings, document.Finding{File: path, Diagnostic: d})
		p.emit(d)
	}
}
