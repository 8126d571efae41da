package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"ukl/internal/source"
)

// Cursor представляет собой позицию в файле и кэш одной руны lookahead.
// Только Cursor двигает позицию чтения.
type Cursor struct {
	File  *source.File
	Off   source.BytePos
	limit source.BytePos

	// кэш Peek: руна по смещению peekOff и её ширина
	peeked  rune
	peekLen int
	peekOff source.BytePos
	hasPeek bool
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		limit: source.BytePos(limit),
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit
}

// Peek возвращает следующую руну, не потребляя её; ok == false в конце входа.
// Невалидный UTF-8 байт читается как utf8.RuneError шириной 1.
func (c *Cursor) Peek() (r rune, ok bool) {
	if c.EOF() {
		return 0, false
	}
	if c.hasPeek && c.peekOff == c.Off {
		return c.peeked, true
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf {
		r, c.peekLen = rune(b), 1
	} else {
		r, c.peekLen = utf8.DecodeRune(c.File.Content[c.Off:c.limit])
	}
	c.peeked, c.peekOff, c.hasPeek = r, c.Off, true
	return r, true
}

// Bump потребляет одну руну и возвращает её. В конце входа ничего не делает.
func (c *Cursor) Bump() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.Off = c.Off.Advance(c.peekLen)
	c.hasPeek = false
	return r, true
}

// Eat consumes the next rune if it equals r.
func (c *Cursor) Eat(r rune) bool {
	if next, ok := c.Peek(); ok && next == r {
		c.Bump()
		return true
	}
	return false
}

// AccumulateWhile consumes the maximal run of runes satisfying pred and
// returns it. The run is empty if pred fails immediately or at end of input.
func (c *Cursor) AccumulateWhile(pred func(rune) bool) string {
	start := c.Off
	for {
		r, ok := c.Peek()
		if !ok || !pred(r) {
			break
		}
		c.Bump()
	}
	return string(c.File.Content[start:c.Off])
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента
type Mark source.BytePos

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: source.BytePos(m),
		End:   c.Off,
	}
}

// Since returns the raw source bytes consumed since m.
func (c *Cursor) Since(m Mark) string {
	return string(c.File.Content[source.BytePos(m):c.Off])
}
