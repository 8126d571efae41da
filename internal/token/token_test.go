package token

import "testing"

func TestTokensCompareByValue(t *testing.T) {
	a := NewNumber(2, "100101")
	b := Token{Kind: NumberLit, Base: 2, Text: "100101"}
	if a != b {
		t.Fatalf("tokens with equal payloads must compare equal")
	}
	if NewComment(false, "x") == NewComment(true, "x") {
		t.Fatalf("line and block comments must differ")
	}
}
