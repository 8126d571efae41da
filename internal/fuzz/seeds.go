package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	seedExt      = ".ukl"
)

// inlineSeeds покрывают ветки лексера, до которых корпус testdata не доходит.
var inlineSeeds = []string{
	"",
	"<<<>>>",
	"//test\n+",
	"/* open",
	"/* a */ /* b",
	"0b100101 0X13F 0(17)123",
	"0(128)123",
	"0(abc)1 0(1)0 0(12",
	"0x 0b 0o 0()",
	"\"\\q\"",
	"\"tail\\",
	"\"never closed",
	"-123",
	"@#`?",
	"\xff\xfe\x00",
	"идентификатор_1 λ",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.ukl файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != seedExt {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		f.Logf("testdata walk: %v", err)
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
