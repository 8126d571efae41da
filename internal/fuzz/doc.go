// Package fuzztests houses Go fuzz harnesses for the ukl front end
// (source -> lexer -> parser stub). They guard against panics, stalls and
// broken span invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// заглушку парсера.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag.

package fuzztests
