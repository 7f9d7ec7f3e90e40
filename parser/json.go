package parser

import "encoding/json"

// The JSON projection is a stable field layout for consumers that want
// tokens outside this process:
//
//	{"kind": ..., "start": {"offset", "line", "column"}, "end": {"line", "column"}, "text": ...}

type tokenJSON struct {
	Kind  string       `json:"kind"`
	Start startJSON    `json:"start"`
	End   endpointJSON `json:"end"`
	Text  string       `json:"text"`
}

type startJSON struct {
	Offset uint32 `json:"offset"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

type endpointJSON struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// MarshalJSON implements json.Marshaler with the stable layout above.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{
		Kind: t.Kind.String(),
		Start: startJSON{
			Offset: t.Start.Offset,
			Line:   t.Start.Line,
			Column: t.Start.Column,
		},
		End: endpointJSON{
			Line:   t.End.Line,
			Column: t.End.Column,
		},
		Text: t.text,
	})
}

// MarshalJSON serializes a statement as its token array.
func (s *Statement) MarshalJSON() ([]byte, error) {
	if s.tokens == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.tokens)
}
