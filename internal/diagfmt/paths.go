package diagfmt

import (
	"path/filepath"

	"ukl/internal/source"
)

// autoPathLimit - длина, после которой абсолютный путь сокращается до имени файла.
const autoPathLimit = 40

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
				return filepath.ToSlash(rel)
			}
		}
		return f.Path
	case PathModeBasename:
		return source.BaseName(f.Path)
	default:
		if filepath.IsAbs(f.Path) && len(f.Path) > autoPathLimit {
			return source.BaseName(f.Path)
		}
		return f.Path
	}
}
