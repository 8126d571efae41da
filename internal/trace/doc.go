// Package trace records what the ukl driver is doing: which files are
// loaded, how long lexing and parsing take, where a run stalls.
//
// # Usage
//
//	ukl tokenize --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a post-mortem dump
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// Level decides which scopes are emitted:
//
//   - LevelPhase: ScopeDriver and ScopePass (load, lex, parse)
//   - LevelDetail: plus ScopeFile (one span per source file)
//   - LevelDebug: plus ScopeToken (every lexical error as a point event)
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", 0)
//	defer span.End("")
package trace
