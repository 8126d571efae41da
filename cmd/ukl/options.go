package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ukl/internal/driver"
	"ukl/internal/observ"
)

type globalOptions struct {
	colorMode      string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

// readGlobalOptions читает persistent-флаги и выставляет color.NoColor.
func readGlobalOptions(cmd *cobra.Command) (globalOptions, error) {
	pf := cmd.Root().PersistentFlags()

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := resolveColor(colorFlag, isTerminal(os.Stdout))
	if err != nil {
		return globalOptions{}, err
	}
	color.NoColor = !useColor

	quiet, err := pf.GetBool("quiet")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return globalOptions{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return globalOptions{
		colorMode:      colorFlag,
		quiet:          quiet,
		timings:        timings,
		maxDiagnostics: maxDiagnostics,
	}, nil
}

// colorFor решает, красить ли вывод в конкретный writer (stderr может быть
// перенаправлен отдельно от stdout).
func (g globalOptions) colorFor(w io.Writer) bool {
	mode, err := parseSwitch("color", g.colorMode)
	if err != nil {
		return false
	}
	f, ok := w.(*os.File)
	return mode.enabled(ok && isTerminal(f))
}

func resolveColor(value string, tty bool) (bool, error) {
	mode, err := parseSwitch("color", value)
	if err != nil {
		return false, err
	}
	return mode.enabled(tty), nil
}

// switchMode - значение флагов вида auto|on|off (--color, --ui).
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on":
		return switchOn, nil
	case "off":
		return switchOff, nil
	default:
		return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabled: auto следует за tty, on/off его игнорируют.
func (m switchMode) enabled(tty bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	default:
		return tty
	}
}

// lexFlags - флаги лексера, общие для tokenize, parse и корневой команды.
type lexFlags struct {
	raw        bool
	keepGoing  bool
	cache      bool
	clearCache bool
}

// buildDriverOptions собирает driver.Options: манифест задаёт значения по
// умолчанию, явно переданные флаги их перекрывают.
func buildDriverOptions(cmd *cobra.Command, global globalOptions, lf lexFlags, manifest *projectManifest) (driver.Options, error) {
	opts := driver.Options{
		Raw:            lf.raw,
		KeepGoing:      lf.keepGoing,
		MaxDiagnostics: global.maxDiagnostics,
	}
	if manifest != nil {
		lexCfg := manifest.Config.Lexer
		if !flagChanged(cmd, "raw") && lexCfg.IncludeComments {
			opts.Raw = true
		}
		if !flagChanged(cmd, "keep-going") && lexCfg.KeepGoing {
			opts.KeepGoing = true
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && lexCfg.MaxDiagnostics > 0 {
			opts.MaxDiagnostics = lexCfg.MaxDiagnostics
		}
		opts.NFC = lexCfg.Normalize == normalizeNFC
	}
	if global.timings {
		opts.Timer = observ.NewTimer()
	}
	if lf.cache || lf.clearCache {
		cache, err := driver.OpenTokenCache("ukl")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to open token cache: %w", err)
		}
		if lf.clearCache {
			if err := cache.DropAll(); err != nil {
				return driver.Options{}, fmt.Errorf("failed to clear token cache: %w", err)
			}
		}
		if lf.cache {
			opts.Cache = cache
		}
	}
	return opts, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// readLexFlags достаёт --raw/--keep-going/--cache/--clear-cache, если команда их объявила.
func readLexFlags(cmd *cobra.Command) (lexFlags, error) {
	var lf lexFlags
	var err error
	if cmd.Flags().Lookup("raw") != nil {
		if lf.raw, err = cmd.Flags().GetBool("raw"); err != nil {
			return lf, fmt.Errorf("failed to get raw flag: %w", err)
		}
	}
	if cmd.Flags().Lookup("keep-going") != nil {
		if lf.keepGoing, err = cmd.Flags().GetBool("keep-going"); err != nil {
			return lf, fmt.Errorf("failed to get keep-going flag: %w", err)
		}
	}
	if cmd.Flags().Lookup("cache") != nil {
		if lf.cache, err = cmd.Flags().GetBool("cache"); err != nil {
			return lf, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if cmd.Flags().Lookup("clear-cache") != nil {
		if lf.clearCache, err = cmd.Flags().GetBool("clear-cache"); err != nil {
			return lf, fmt.Errorf("failed to get clear-cache flag: %w", err)
		}
	}
	return lf, nil
}
