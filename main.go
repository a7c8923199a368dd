package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/tmux-popup-select/internal/app"
	"github.com/atomicstack/tmux-popup-select/internal/config"
	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/logging/events"
	"github.com/atomicstack/tmux-popup-select/internal/ui"
	"golang.org/x/term"
)

const (
	exitCancelled = 1
	exitConfig    = 2
)

func main() {
	runtimeCfg := config.MustLoad()
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	code := run(runtimeCfg, os.Stdout, os.Stderr)
	logging.Sync()
	os.Exit(code)
}

func run(cfg config.Config, stdout, stderr io.Writer) int {
	if cfg.App.List {
		if err := app.List(cfg.App, stdout); err != nil {
			return reportError(stderr, err, exitConfig)
		}
		return 0
	}
	selection, err := app.Run(cfg.App)
	if err != nil {
		if errors.Is(err, app.ErrLoad) {
			return reportError(stderr, err, exitConfig)
		}
		return reportError(stderr, err, exitCancelled)
	}
	return printSelection(stdout, selection)
}

func reportError(w io.Writer, err error, code int) int {
	logging.Error(err)
	fmt.Fprintf(w, "Error: %v\n", err)
	return code
}

// printSelection writes the confirmed pair as "filter<TAB>filtered".
func printSelection(w io.Writer, selection ui.Selection) int {
	if !selection.Confirmed {
		return exitCancelled
	}
	fmt.Fprintf(w, "%s\t%s\n", selection.Filter, selection.Filtered)
	return 0
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
