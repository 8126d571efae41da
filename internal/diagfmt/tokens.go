package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"ukl/internal/source"
	"ukl/internal/token"
)

// TokenOutput - одна запись дампа токенов (JSON и msgpack).
type TokenOutput struct {
	Index     int      `json:"index" msgpack:"index"`
	Kind      string   `json:"kind" msgpack:"kind"`
	Text      string   `json:"text,omitempty" msgpack:"text,omitempty"`
	Base      uint8    `json:"base,omitempty" msgpack:"base,omitempty"`
	Multiline bool     `json:"multiline,omitempty" msgpack:"multiline,omitempty"`
	Char      string   `json:"char,omitempty" msgpack:"char,omitempty"`
	Span      SpanJSON `json:"span" msgpack:"span"`
}

// SpanJSON - span с разрешёнными строкой и колонкой.
type SpanJSON struct {
	Start     uint32 `json:"start" msgpack:"start"`
	End       uint32 `json:"end" msgpack:"end"`
	StartLine uint32 `json:"start_line" msgpack:"start_line"`
	StartCol  uint32 `json:"start_col" msgpack:"start_col"`
	EndLine   uint32 `json:"end_line" msgpack:"end_line"`
	EndCol    uint32 `json:"end_col" msgpack:"end_col"`
}

// BuildTokenOutput converts spanned tokens to dump records.
func BuildTokenOutput(tokens []source.Spanned[token.Token], fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for i, t := range tokens {
		start, end := fs.Resolve(t.Span)
		rec := TokenOutput{
			Index:     i + 1,
			Kind:      t.Value.Kind.String(),
			Text:      t.Value.Text,
			Base:      t.Value.Base,
			Multiline: t.Value.Multiline,
			Span: SpanJSON{
				Start:     uint32(t.Span.Start),
				End:       uint32(t.Span.End),
				StartLine: start.Line,
				StartCol:  start.Col,
				EndLine:   end.Line,
				EndCol:    end.Col,
			},
		}
		if t.Value.Kind == token.Malformed {
			rec.Char = string(t.Value.Char)
		}
		out = append(out, rec)
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате:
//
//	3: NumberLit      Num(16, 1F)      at 1:5-1:9
func FormatTokensPretty(w io.Writer, tokens []source.Spanned[token.Token], fs *source.FileSet) error {
	for i, t := range tokens {
		start, end := fs.Resolve(t.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-12s %-20s at %d:%d-%d:%d\n",
			i+1, t.Value.Kind, t.Value, start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []source.Spanned[token.Token], fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokenOutput(tokens, fs))
}

// FormatTokensMsgpack пишет тот же дамп, что и JSON, но в msgpack.
func FormatTokensMsgpack(w io.Writer, tokens []source.Spanned[token.Token], fs *source.FileSet) error {
	return msgpack.NewEncoder(w).Encode(BuildTokenOutput(tokens, fs))
}
