package parser

// IsEmpty reports whether the statement contains only comments and/or the
// bare `;` terminator. A statement of zero tokens is empty.
func (s *Statement) IsEmpty() bool {
	for _, t := range s.tokens {
		if !t.IsComment() && !t.IsTerminator() {
			return false
		}
	}
	return true
}

// IsQuery reports whether the statement may return a result set.
//
// Leading comments and an optional leading EXPLAIN (with its parenthesized
// option group) are stripped first. SELECT, VALUES, TABLE, SHOW, PRAGMA,
// DESCRIBE, DESC, and CALL start queries; WITH recurses on the statement
// after its CTE list; INSERT, UPDATE, DELETE, and MERGE are queries only
// when a top-level RETURNING appears.
//
// A SELECT with a top-level INTO is treated as not-a-query unless the
// INTO target starts with TEMP or TEMPORARY. The INTO target being a
// table variable vs. a result table is dialect-specific; this rule
// deliberately classifies any other top-level INTO as "does not return
// rows".
func (s *Statement) IsQuery() bool {
	return isQuery(significant(s.tokens))
}

// significant drops comments and the terminator; whitespace was never
// tokenized to begin with.
func significant(tokens []Token) []Token {
	sig := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.IsComment() || t.IsTerminator() {
			continue
		}
		sig = append(sig, t)
	}
	return sig
}

func isQuery(sig []Token) bool {
	if len(sig) == 0 {
		return false
	}

	if sig[0].keywordIs("EXPLAIN") {
		sig = sig[1:]
		// EXPLAIN (ANALYZE, FORMAT JSON) ...
		if len(sig) > 0 && sig[0].isPunct("(") {
			sig = sig[skipGroup(sig, 0):]
		}
		if len(sig) == 0 {
			return false
		}
	}

	first := sig[0]
	switch {
	case first.keywordIs("SELECT"):
		return !hasNonTemporaryInto(sig[1:])
	case first.keywordIs("VALUES"), first.keywordIs("TABLE"),
		first.keywordIs("SHOW"), first.keywordIs("PRAGMA"),
		first.keywordIs("DESCRIBE"), first.keywordIs("DESC"),
		first.keywordIs("CALL"):
		return true
	case first.keywordIs("WITH"):
		return isQuery(afterCTEList(sig))
	case first.keywordIs("INSERT"), first.keywordIs("UPDATE"),
		first.keywordIs("DELETE"), first.keywordIs("MERGE"):
		return hasTopLevelKeyword(sig[1:], "RETURNING")
	}
	return false
}

// hasNonTemporaryInto reports whether a top-level INTO follows whose
// target is not introduced by TEMP or TEMPORARY.
func hasNonTemporaryInto(sig []Token) bool {
	depth := 0
	for i, t := range sig {
		switch {
		case isOpenBracket(t):
			depth++
		case isCloseBracket(t):
			if depth > 0 {
				depth--
			}
		case depth == 0 && t.keywordIs("INTO"):
			if i+1 < len(sig) && (sig[i+1].keywordIs("TEMP") || sig[i+1].keywordIs("TEMPORARY")) {
				return false
			}
			return true
		}
	}
	return false
}

func hasTopLevelKeyword(sig []Token, upper string) bool {
	depth := 0
	for _, t := range sig {
		switch {
		case isOpenBracket(t):
			depth++
		case isCloseBracket(t):
			if depth > 0 {
				depth--
			}
		case depth == 0 && t.keywordIs(upper):
			return true
		}
	}
	return false
}

// afterCTEList returns the tokens of the final top-level statement after
// a WITH clause's CTE list: WITH [RECURSIVE] name [(cols)] AS
// [[NOT] MATERIALIZED] (body) [, ...] tail. On malformed input it bails
// out where it stands and lets the classifier do its best with the rest.
func afterCTEList(sig []Token) []Token {
	i := 1 // past WITH
	if i < len(sig) && sig[i].keywordIs("RECURSIVE") {
		i++
	}
	for i < len(sig) {
		if sig[i].Kind != Identifier && sig[i].Kind != DelimitedIdentifier {
			break
		}
		i++
		if i < len(sig) && sig[i].isPunct("(") {
			i = skipGroup(sig, i)
		}
		if i >= len(sig) || !sig[i].keywordIs("AS") {
			break
		}
		i++
		if i < len(sig) && sig[i].keywordIs("NOT") {
			i++
		}
		if i < len(sig) && sig[i].keywordIs("MATERIALIZED") {
			i++
		}
		if i >= len(sig) || !sig[i].isPunct("(") {
			break
		}
		i = skipGroup(sig, i)
		if i < len(sig) && sig[i].isPunct(",") {
			i++
			continue
		}
		break
	}
	return sig[i:]
}

// skipGroup returns the index one past the bracket group opening at i.
// An unbalanced group swallows the rest of the statement.
func skipGroup(sig []Token, i int) int {
	depth := 0
	for ; i < len(sig); i++ {
		switch {
		case isOpenBracket(sig[i]):
			depth++
		case isCloseBracket(sig[i]):
			depth--
			if depth <= 0 {
				return i + 1
			}
		}
	}
	return i
}

func isOpenBracket(t Token) bool {
	return t.isPunct("(") || t.isPunct("[") || t.isPunct("{")
}

func isCloseBracket(t Token) bool {
	return t.isPunct(")") || t.isPunct("]") || t.isPunct("}")
}
