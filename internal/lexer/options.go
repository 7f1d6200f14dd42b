package lexer

import "casecheck/internal/diag"

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics. Nil silently drops them.
	Reporter diag.Reporter
}
