package cerr

import (
	"strconv"
	"strings"
)

// SyntaxError is the "malformed AST" error taxonomy entry from spec.md §7:
// fatal to compilation, always carries a source position, and formats with
// a source-line/caret presentation matching the teacher's
// CompilerError.Format (internal/errors/errors.go).
type SyntaxError struct {
	*Error
	Source string
	File   string
}

// NewSyntaxError builds a SyntaxError with the given message over source
// and file; the caller sets its position through the Pos field.
func NewSyntaxError(message, source, file string) *SyntaxError {
	return &SyntaxError{Error: New(KindSyntax, message), Source: source, File: file}
}

// Format renders the error with a file:line:column header, the offending
// source line, and a caret pointing at the column.
func (e *SyntaxError) Format() string {
	var sb strings.Builder
	if e.File != "" {
		sb.WriteString(formatHeader(e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(formatHeaderNoFile(e.Pos.Line, e.Pos.Column))
	}
	sb.WriteByte('\n')

	line := sourceLine(e.Source, e.Pos.Line)
	if line != "" {
		prefix := lineNumberPrefix(e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", len(prefix)+maxInt(e.Pos.Column-1, 0)))
		sb.WriteString("^\n")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

func formatHeader(file string, line, col int) string {
	return "Error in " + file + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(col)
}

func formatHeaderNoFile(line, col int) string {
	return "Error at line " + strconv.Itoa(line) + ":" + strconv.Itoa(col)
}

func lineNumberPrefix(line int) string {
	return "  " + strconv.Itoa(line) + " | "
}

func sourceLine(source string, line int) string {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
