package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ukl/internal/driver"
)

const (
	manifestName  = "ukl.toml"
	normalizeNone = "none"
	normalizeNFC  = "nfc"
)

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Lexer   lexerConfig   `toml:"lexer"`
	Run     runConfig     `toml:"run"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type lexerConfig struct {
	KeepGoing       bool   `toml:"keep_going"`
	IncludeComments bool   `toml:"include_comments"`
	Normalize       string `toml:"normalize"`
	MaxDiagnostics  int    `toml:"max_diagnostics"`
}

type runConfig struct {
	Main string `toml:"main"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectManifest ищет ukl.toml вверх от startDir. Отсутствие манифеста
// не ошибка: возвращается (nil, false, nil).
func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	cfg.Lexer.Normalize = strings.ToLower(strings.TrimSpace(cfg.Lexer.Normalize))
	switch cfg.Lexer.Normalize {
	case "":
		cfg.Lexer.Normalize = normalizeNone
	case normalizeNone, normalizeNFC:
	default:
		return projectConfig{}, fmt.Errorf("%s: [lexer].normalize must be none or nfc, got %q", path, cfg.Lexer.Normalize)
	}
	if cfg.Lexer.MaxDiagnostics < 0 {
		return projectConfig{}, fmt.Errorf("%s: [lexer].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// resolveRunTarget возвращает [run].main относительно корня проекта.
func resolveRunTarget(manifest *projectManifest) (string, error) {
	if manifest == nil {
		return "", fmt.Errorf("no %s found; pass a file or directory explicitly", manifestName)
	}
	mainRel := strings.TrimSpace(manifest.Config.Run.Main)
	if mainRel == "" {
		return "", fmt.Errorf("%s: missing [run].main; pass a file or directory explicitly", manifest.Path)
	}
	mainPath := filepath.Join(manifest.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", manifest.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", manifest.Path, err)
	}
	if !info.IsDir() && filepath.Ext(mainPath) != driver.SourceExt {
		return "", fmt.Errorf("%s: [run].main must be a %s file or directory", manifest.Path, driver.SourceExt)
	}
	return mainPath, nil
}
