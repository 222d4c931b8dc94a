package cerr

import (
	"testing"

	"github.com/cwbudde/go-cel/internal/token"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestSyntaxErrorFormat snapshots the caret-pointer rendering used for
// parse-time Syntax errors (spec.md §7), matching the teacher's
// CompilerError.Format presentation.
func TestSyntaxErrorFormat(t *testing.T) {
	source := "1 + * 2"
	se := NewSyntaxError("unexpected token '*'", source, "expr.cel")
	se.Pos = token.Position{Line: 1, Column: 5}

	snaps.MatchSnapshot(t, se.Format())
}

func TestSyntaxErrorFormatNoFile(t *testing.T) {
	source := "a && && b"
	se := NewSyntaxError("unexpected token '&&'", source, "")
	se.Pos = token.Position{Line: 1, Column: 6}

	snaps.MatchSnapshot(t, se.Format())
}
