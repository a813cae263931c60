package types

import "testing"

func TestTokenString(t *testing.T) {
	tok := Token{
		Kind:     IDENT,
		Text:     "foo",
		Location: SingleCharSpan(Position{Line: 3, Column: 5, Filename: "a.dp"}),
	}
	if got := tok.String(); got != "Token: IDENT; Value: foo; Line: 3" {
		t.Errorf("got %q", got)
	}
	if got := tok.Location.String(); got != "a.dp:3:5-3:5" {
		t.Errorf("got %q", got)
	}
}

func TestTokenIs(t *testing.T) {
	tests := []struct {
		name  string
		kind  TokenKind
		texts []string
		want  bool
	}{
		{"kind only", PUNCT, nil, true},
		{"wrong kind", OPERATOR, nil, false},
		{"matching text", PUNCT, []string{"(", ";"}, true},
		{"other text", PUNCT, []string{"{"}, false},
	}

	tok := Token{Kind: PUNCT, Text: ";"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tok.Is(tt.kind, tt.texts...); got != tt.want {
				t.Errorf("Is(%s, %v) = %v, want %v", tt.kind, tt.texts, got, tt.want)
			}
		})
	}
}

func TestPositionUnknownFile(t *testing.T) {
	if got := (Position{Line: 1, Column: 2}).String(); got != "<unknown>:1:2" {
		t.Errorf("got %q", got)
	}
}
