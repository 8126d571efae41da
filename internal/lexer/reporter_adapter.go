package lexer

import "ukl/internal/diag"

// ReporterAdapter адаптирует diag.Bag для использования в лексере.
// Повторы одной и той же ошибки в одном месте отбрасываются.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a diag.Reporter that forwards diagnostics to the adapter's bag.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return diag.NewDedupReporter(diag.BagReporter{Bag: r.Bag})
}
