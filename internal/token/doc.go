// Package token defines the closed token vocabulary of unknown-lang.
// Invariants:
//   - Token carries no position; positions travel in source.Spanned[Token].
//   - Payload fields are meaningful only for their kinds: Text for Ident,
//     StringLit, NumberLit and Comment; Base for NumberLit; Multiline for
//     Comment; Char for Malformed.
//   - Only the documented two-character operators exist; the lexer never
//     assembles longer ones.
package token
