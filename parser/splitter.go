package parser

// StatementStream is a lazy, single-pass sequence of statements. It is not
// restartable; re-parse by calling Parse again over the same input.
type StatementStream struct {
	src   string
	lexer *Lexer
	done  bool
}

// Parse constructs a statement stream over input. It performs no work
// until Next is called, and it cannot fail: any byte sequence produces
// some tokenization.
func Parse(input string) *StatementStream {
	return &StatementStream{src: input, lexer: NewLexer(input)}
}

// Next yields the next statement, or ok=false when the input is
// exhausted. A `;` closes the current statement and belongs to it; end of
// input closes the last statement with whatever tokens it has. Semicolons
// inside strings, comments, and dollar-quotes never split because the
// lexer consumes those as single tokens.
func (s *StatementStream) Next() (*Statement, bool) {
	if s.done {
		return nil, false
	}

	stmt := &Statement{input: s.src}
	for {
		tok, ok := s.lexer.Next()
		if !ok {
			s.done = true
			stmt.unterminatedComment = s.lexer.UnterminatedComment()
			if len(stmt.tokens) == 0 {
				return nil, false
			}
			return stmt, true
		}
		stmt.tokens = append(stmt.tokens, tok)
		if tok.IsTerminator() {
			stmt.terminated = true
			return stmt, true
		}
	}
}

// Statements drains the stream into a slice. Handy for callers that do
// not care about laziness.
func (s *StatementStream) Statements() []*Statement {
	var stmts []*Statement
	for {
		stmt, ok := s.Next()
		if !ok {
			return stmts
		}
		stmts = append(stmts, stmt)
	}
}
