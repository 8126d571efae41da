// Package diag defines the diagnostic model shared by the lexer, the stub
// parser and the driver.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX1002, SYN2001, IO4001), a short Message, the Primary
// span and optional Notes.
//
// Phases emit through a Reporter so that emission stays decoupled from
// storage. BagReporter collects into a Bag, which enforces a limit and
// supports sorting and deduplication; DedupReporter drops repeats before they
// reach the bag.
//
// Package diag does no rendering or IO. Rendering lives in internal/diagfmt.
package diag
