package processor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ceresdoc/cereslint/internal/scanner"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSingleDocumentNoBlocks(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.ceres", "one two three\nfour five\n")

	var out bytes.Buffer
	p := New(Options{}, &out, nil)
	p.Run([]string{path})

	got := out.String()
	// 3 tokens + 2 tokens, no code blocks, no per-page setting.
	want := "Counts: 5 words\nTotal counts: 5 words\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunTotalsAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.ceres", "one two\n")
	b := writeDoc(t, dir, "b.ceres", "three four five\n")

	var out bytes.Buffer
	p := New(Options{}, &out, nil)
	p.Run([]string{a, b})

	if p.Total() != 5 {
		t.Errorf("Total() = %d, want 5", p.Total())
	}
	got := out.String()
	if !strings.Contains(got, "Counts: 2 words") || !strings.Contains(got, "Counts: 3 words") {
		t.Errorf("missing per-document trailers in %q", got)
	}
	if !strings.HasSuffix(got, "Total counts: 5 words\n") {
		t.Errorf("missing run trailer in %q", got)
	}
	// Multi-document runs name each document.
	if !strings.Contains(got, a+":") || !strings.Contains(got, b+":") {
		t.Errorf("missing document headers in %q", got)
	}
}

func TestPerPageFormatting(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.ceres", strings.Repeat("word ", 9)+"word\n")

	var out bytes.Buffer
	p := New(Options{WordsPerPage: 4}, &out, nil)
	p.Run([]string{path})

	if !strings.Contains(out.String(), "Counts: 2 pages + 2 words") {
		t.Errorf("output = %q, want page formatting", out.String())
	}
}

func TestDiagnosticsStreamToOutput(t *testing.T) {
	dir := t.TempDir()
	wide := strings.Repeat("x", 30)
	path := writeDoc(t, dir, "doc.ceres", "```\n"+wide+"\n```\n")

	var out bytes.Buffer
	p := New(Options{Limits: scanner.Limits{LineWidth: 20}}, &out, nil)
	p.Run([]string{path})

	want := "2: ERROR - line width 30 exceeds limit 20"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want it to contain %q", out.String(), want)
	}
}

func TestUnreadableDocumentContinuesRun(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.ceres", "one two\n")
	missing := filepath.Join(dir, "missing.ceres")

	var out bytes.Buffer
	p := New(Options{}, &out, nil)
	p.Run([]string{missing, good})

	got := out.String()
	if !strings.Contains(got, "cannot read document") {
		t.Errorf("missing read failure diagnostic in %q", got)
	}
	if !strings.HasSuffix(got, "Total counts: 2 words\n") {
		t.Errorf("run did not continue past the bad document: %q", got)
	}
}

func TestCollectRetainsFindings(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.ceres", "```\n"+strings.Repeat("y", 25)+"\n```\n")

	var out bytes.Buffer
	p := New(Options{Limits: scanner.Limits{LineWidth: 10}, Collect: true}, &out, nil)
	p.Run([]string{path})

	findings := p.Findings()
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].File != path {
		t.Errorf("finding file = %q, want %q", findings[0].File, path)
	}
	if findings[0].Diagnostic.Line != 2 {
		t.Errorf("finding line = %d, want 2", findings[0].Diagnostic.Line)
	}
}

// stubFetcher always reports the same status line
type stubFetcher struct {
	status string
	urls   []string
}

func (s *stubFetcher) Fetch(url string) (string, error) {
	s.urls = append(s.urls, url)
	return s.status, nil
}

func TestURLChecksInterleaved(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.ceres", "see https://example.com/a\nplain line\nand https://example.com/b\n")

	fetcher := &stubFetcher{status: "HTTP/1.1 200 OK"}
	var out bytes.Buffer
	p := New(Options{Fetcher: fetcher}, &out, nil)
	p.Run([]string{path})

	if len(fetcher.urls) != 2 {
		t.Fatalf("fetched %v, want both URLs probed in line order", fetcher.urls)
	}
	if fetcher.urls[0] != "https://example.com/a" || fetcher.urls[1] != "https://example.com/b" {
		t.Errorf("fetched %v in the wrong order", fetcher.urls)
	}
	if !strings.Contains(out.String(), "1: NOTICE - found URL, response status 200") {
		t.Errorf("output = %q, missing URL notice", out.String())
	}
}

func TestExcludeCodeWords(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "doc.ceres", "intro words here\n```\nskip these tokens\n```\noutro\n")

	var out bytes.Buffer
	p := New(Options{Limits: scanner.Limits{ExcludeCodeWords: true}}, &out, nil)
	p.Run([]string{path})

	// 3 prose + 2 fence lines + 1 outro; in-block content excluded.
	if p.Total() != 6 {
		t.Errorf("Total() = %d, want 6", p.Total())
	}
}
