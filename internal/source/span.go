package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start BytePos // в байтах включительно
	End   BytePos // в байтах не включительно
}

// NewSpan builds a span in the given file.
func NewSpan(file FileID, start, end BytePos) Span {
	return Span{File: file, Start: start, End: end}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return uint32(s.End - s.Start)
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Union covers both spans: the earliest start and the latest end.
// Spans of different files never merge; the one with the lower FileID is
// returned so that Union stays commutative.
func (s Span) Union(other Span) Span {
	if s.File != other.File {
		if other.File < s.File {
			return other
		}
		return s
	}
	return Span{
		File:  s.File,
		Start: min(s.Start, other.Start),
		End:   max(s.End, other.End),
	}
}

// Contains reports whether off falls inside the span.
func (s Span) Contains(off BytePos) bool {
	return off >= s.Start && off < s.End
}

// Spanned pairs a value with the span it was read from.
type Spanned[T any] struct {
	Value T
	Span  Span
}

// At wraps v with sp.
func At[T any](v T, sp Span) Spanned[T] {
	return Spanned[T]{Value: v, Span: sp}
}
