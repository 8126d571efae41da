package fuzztests

import (
	"testing"

	"ukl/internal/diag"
	"ukl/internal/lexer"
	"ukl/internal/source"
	"ukl/internal/testkit"
	"ukl/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.ukl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var toks []source.Spanned[token.Token]
		// каждый шаг либо двигает курсор, либо это EOF; больше len+1 шагов быть не может
		for steps := 0; ; steps++ {
			if steps > len(file.Content)+1 {
				t.Fatalf("lexer made no progress after %d steps at offset %d", steps, lx.Offset())
			}
			tok, err := lx.NextRawSpanned()
			toks = append(toks, tok)
			if err == nil && tok.Value.Kind.IsEOF() {
				break
			}
		}

		if err := testkit.CheckTokenSpans(toks, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}

		again, err := lx.NextRaw()
		if err != nil || !again.Kind.IsEOF() {
			t.Fatalf("EOF is not sticky: %v, %v", again, err)
		}
	})
}

// FuzzLexerFiltered checks that Next yields exactly the non-comment tokens
// of NextRaw on the same input.
func FuzzLexerFiltered(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.ukl", input))

		var raw, meaningful []string
		for tok, err := range lexer.New(file, lexer.Options{}).Tokens(true) {
			if err != nil {
				raw = append(raw, "error:"+err.Error())
				continue
			}
			if tok.Value.Kind.IsEOF() {
				break
			}
			if !tok.Value.IsComment() {
				raw = append(raw, tok.Value.String())
			}
		}
		for tok, err := range lexer.New(file, lexer.Options{}).Tokens(false) {
			if err != nil {
				meaningful = append(meaningful, "error:"+err.Error())
				continue
			}
			if tok.Value.Kind.IsEOF() {
				break
			}
			meaningful = append(meaningful, tok.Value.String())
		}

		if len(raw) != len(meaningful) {
			t.Fatalf("raw has %d non-comment items, filtered has %d", len(raw), len(meaningful))
		}
		for i := range raw {
			if raw[i] != meaningful[i] {
				t.Fatalf("item %d differs: %q vs %q", i, raw[i], meaningful[i])
			}
		}
	})
}
