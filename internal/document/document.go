package document

import "fmt"

// Severity classifies a diagnostic finding
type Severity string

const (
	Notice Severity = "NOTICE"
	Error  Severity = "ERROR"
)

// Diagnostic represents a single finding tied to a document line
type Diagnostic struct {
	Line     int      // 1-based line number in the document
	Severity Severity // Notice or Error
	Message  string   // Human-readable description
}

// String formats the diagnostic for line-oriented output
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s - %s", d.Line, d.Severity, d.Message)
}

// Finding pairs a diagnostic with the document it was found in
type Finding struct {
	File       string
	Diagnostic Diagnostic
}

// Emitter receives diagnostics the moment they are produced
type Emitter func(Diagnostic)

// Noticef emits a Notice diagnostic through the emitter
func (e Emitter) Noticef(line int, format string, args ...interface{}) {
	e(Diagnostic{Line: line, Severity: Notice, Message: fmt.Sprintf(format, args...)})
}

// Errorf emits an Error diagnostic through the emitter
func (e Emitter) Errorf(line int, format string, args ...interface{}) {
	e(Diagnostic{Line: line, Severity: Error, Message: fmt.Sprintf(format, args...)})
}
