package driver

import (
	"ukl/internal/observ"
)

// Options управляет загрузкой и лексическим проходом одного файла.
type Options struct {
	// Raw оставляет комментарии в потоке (NextRaw вместо Next).
	Raw bool
	// KeepGoing продолжает сканирование после лексической ошибки.
	// Без него первая ошибка останавливает файл.
	KeepGoing bool
	// MaxDiagnostics ограничивает Bag; 0 и меньше - без лимита.
	MaxDiagnostics int
	// NFC включает нормализацию исходника в Unicode NFC при загрузке.
	NFC bool
	// Timer, если задан, получает длительности load/lex/parse.
	Timer *observ.Timer
	// Cache, если задан, хранит результаты безошибочной токенизации.
	Cache *TokenCache
}
