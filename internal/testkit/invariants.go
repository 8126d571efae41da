package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ukl/internal/source"
	"ukl/internal/token"
)

// CheckTokenSpans runs the span invariants of a lexed token stream:
// 1) every span points at sf and lies within its content
// 2) spans never overlap and never go backwards
// 3) only EOF may be empty; EOF, if present, is last and sits at the end of input
// 4) the union of all spans stays inside the file
func CheckTokenSpans(tokens []source.Spanned[token.Token], sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var (
		union    source.Span
		haveItem bool
		prevEnd  source.BytePos
	)
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Start > sp.End {
			return fmt.Errorf("token %d span is inverted: %v", i, sp)
		}
		if uint32(sp.End) > lenContent {
			return fmt.Errorf("token %d span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d span %v overlaps previous end %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if tok.Value.Kind.IsEOF() {
			if i != len(tokens)-1 {
				return fmt.Errorf("EOF at index %d is not the last token", i)
			}
			if uint32(sp.Start) != lenContent {
				return fmt.Errorf("EOF span %v is not at end of input %d", sp, lenContent)
			}
			continue
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%s) has empty span %v", i, tok.Value, sp)
		}
		if !haveItem {
			union = sp
			haveItem = true
		} else {
			union = union.Union(sp)
		}
	}

	if haveItem && uint32(union.End) > lenContent {
		return fmt.Errorf("token union %v exceeds content length %d", union, lenContent)
	}
	return nil
}
