package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envOptionsFile   = "TMUX_POPUP_SELECT_OPTIONS"
	envFilters       = "TMUX_POPUP_SELECT_FILTERS"
	envFilterValue   = "TMUX_POPUP_SELECT_FILTER_VALUE"
	envFilteredValue = "TMUX_POPUP_SELECT_FILTERED_VALUE"
	envFilterTitle   = "TMUX_POPUP_SELECT_FILTER_TITLE"
	envFilteredTitle = "TMUX_POPUP_SELECT_FILTERED_TITLE"
	envWidth         = "TMUX_POPUP_SELECT_WIDTH"
	envHeight        = "TMUX_POPUP_SELECT_HEIGHT"
	envShowFooter    = "TMUX_POPUP_SELECT_FOOTER"
	envWatch         = "TMUX_POPUP_SELECT_WATCH"
	envNamespace     = "TMUX_POPUP_SELECT_NAMESPACE"
	envTrace         = "TMUX_POPUP_SELECT_TRACE"
	envLogFile       = "TMUX_POPUP_SELECT_LOG_FILE"
)

// ErrHelp is returned when -h or --help was requested.
var ErrHelp = pflag.ErrHelp

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

type flagValues struct {
	optionsFile   *string
	filters       *[]string
	filterValue   *string
	filteredValue *string
	filterTitle   *string
	filteredTitle *string
	width         *int
	height        *int
	footer        *bool
	watch         *time.Duration
	list          *bool
	namespace     *string
	trace         *bool
	logFile       *string
}

// newFlagSet declares every flag with its environment variable as default.
func newFlagSet(env map[string]string) (*pflag.FlagSet, flagValues) {
	fs := pflag.NewFlagSet("tmux-popup-select", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false

	v := flagValues{
		optionsFile:   fs.StringP("options", "o", envOrDefault(env, envOptionsFile, ""), "path to the option map file (built-in sample when empty)"),
		filters:       fs.StringSlice("filters", envOrSlice(env, envFilters), "filter values to offer, in order (defaults to the option map keys)"),
		filterValue:   fs.String("filter-value", envOrDefault(env, envFilterValue, ""), "initially selected filter value"),
		filteredValue: fs.String("filtered-value", envOrDefault(env, envFilteredValue, ""), "initially selected filtered value"),
		filterTitle:   fs.String("filter-title", envOrDefault(env, envFilterTitle, ""), "title of the filter select"),
		filteredTitle: fs.String("filtered-title", envOrDefault(env, envFilteredTitle, ""), "title of the filtered select"),
		width:         fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:        fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:        fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)"),
		watch:         fs.Duration("watch", envOrDuration(env, envWatch, 0), "poll the option map file at this interval and reload on change (0 disables)"),
		list:          fs.BoolP("list", "l", false, "print the option map as a table and exit"),
		namespace:     fs.String("namespace", envOrDefault(env, envNamespace, ""), "prefix for diagnostic log lines"),
		trace:         fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:       fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
	return fs, v
}

// LoadArgs allows tests to supply specific args/environment. Flags take
// precedence over the environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs, v := newFlagSet(parseEnv(environ))
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Config{
		App: app.Config{
			OptionsFile:   *v.optionsFile,
			FilterValues:  cleanValues(*v.filters),
			FilterValue:   *v.filterValue,
			FilteredValue: *v.filteredValue,
			FilterTitle:   *v.filterTitle,
			FilteredTitle: *v.filteredTitle,
			Width:         *v.width,
			Height:        *v.height,
			ShowFooter:    *v.footer,
			Watch:         *v.watch,
			Namespace:     *v.namespace,
			List:          *v.list,
		},
		Logging: Logging{
			FilePath: *v.logFile,
			Trace:    *v.trace,
		},
		Flags: map[string]string{
			"options":       *v.optionsFile,
			"filters":       strings.Join(*v.filters, ","),
			"filterValue":   *v.filterValue,
			"filteredValue": *v.filteredValue,
			"filterTitle":   *v.filterTitle,
			"filteredTitle": *v.filteredTitle,
			"width":         strconv.Itoa(*v.width),
			"height":        strconv.Itoa(*v.height),
			"footer":        strconv.FormatBool(*v.footer),
			"watch":         v.watch.String(),
			"list":          strconv.FormatBool(*v.list),
			"namespace":     *v.namespace,
			"logFile":       *v.logFile,
		},
		Args: append([]string(nil), args...),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Usage returns the flag help text.
func Usage() string {
	fs, _ := newFlagSet(nil)
	return "Usage: tmux-popup-select [flags]\n\n" + fs.FlagUsages()
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrSlice(env map[string]string, key string) []string {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Split(v, ",")
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func cleanValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, ErrHelp) {
		fmt.Fprint(os.Stderr, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Watch < 0 {
		return fmt.Errorf("watch interval must be >= 0 (got %s)", cfg.App.Watch)
	}
	if cfg.App.Watch > 0 && cfg.App.OptionsFile == "" {
		return errors.New("watch requires an options file")
	}
	return nil
}
