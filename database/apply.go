package database

import (
	"context"
	"fmt"
	"strings"
)

// StatementError reports which statement of a script failed
type StatementError struct {
	Index     int
	Statement string
	Err       error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d failed: %v\n  %s", e.Index+1, e.Err, firstLine(e.Statement))
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// Apply executes the statements of script in order and stops at the
// first failure. It returns the number of statements executed.
func Apply(ctx context.Context, conn Conn, script string) (int, error) {
	stmts := SplitStatements(script)
	for i, stmt := range stmts {
		if err := conn.Exec(ctx, stmt); err != nil {
			return i, &StatementError{Index: i, Statement: stmt, Err: err}
		}
	}
	return len(stmts), nil
}

// SplitStatements splits a SQL script on top-level semicolons. Quoted
// text and "--" comments are respected; comment-only fragments are
// dropped and the terminating semicolon is not kept.
func SplitStatements(script string) []string {
	var (
		stmts   []string
		current strings.Builder
		quote   rune
		comment bool
		hasCode bool
	)

	flush := func() {
		if hasCode {
			stmts = append(stmts, strings.TrimSpace(current.String()))
		}
		current.Reset()
		hasCode = false
	}

	runes := []rune(script)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case comment:
			if r == '\n' || r == '\r' {
				comment = false
			}
			continue
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				// doubled quotes escape themselves
				if i+1 < len(runes) && runes[i+1] == quote {
					current.WriteRune(runes[i+1])
					i++
					continue
				}
				quote = 0
			}
			continue
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			comment = true
			i++
			continue
		case r == '\'' || r == '"' || r == '`':
			quote = r
			hasCode = true
			current.WriteRune(r)
			continue
		case r == ';':
			flush()
			continue
		}
		if !isSpace(r) {
			hasCode = true
		}
		current.WriteRune(r)
	}
	flush()
	return stmts
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
