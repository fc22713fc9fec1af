// Package main is the entry point for the shadowvim reconciler.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/darvelo/ShadowVim/internal/config"
	"github.com/darvelo/ShadowVim/internal/driver/nvim"
	"github.com/darvelo/ShadowVim/internal/driver/ui"
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
	"github.com/darvelo/ShadowVim/internal/hook"
	"github.com/darvelo/ShadowVim/internal/mediator"
	"github.com/darvelo/ShadowVim/internal/reconcile"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	ConfigPath string
	LogPath    string
	LogLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}

	log, closeLog, err := newLogger(opts.LogPath, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	hooks := hook.New(hook.WithLogger(log))
	defer hooks.Close()
	for _, script := range cfg.Hooks.Scripts {
		if err := hooks.LoadFile(script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	// The mediator, both drivers, and the callbacks wiring them together
	// form a cycle, so the mediator variable is bound before the drivers
	// that post to it. No event fires until the run loops start.
	var m *mediator.Mediator

	proc, err := nvim.Spawn(ctx, cfg.Nvim.Command, nvim.Handlers{
		OnContent: func(lines []string, change buffer.ChangeDescriptor) {
			m.PrimaryContentChanged(lines, change)
		},
		OnCursor: func(cur cursor.Cursor) {
			m.PrimaryCursorChanged(cur)
		},
		OnError: func(err error) {
			m.OperationFailed(err)
		},
		OnRefresh: func() {
			m.RequestRefresh(reconcile.SidePrimary)
		},
	}, nvim.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableFocus()

	view := ui.NewView(screen, ui.Callbacks{
		OnContent: func(lines []string) {
			m.SecondaryContentChanged(lines)
		},
		OnSelection: func(sel cursor.Selection) {
			m.SecondarySelectionChanged(sel)
		},
		OnFocus: func(lines []string, sel cursor.Selection) {
			m.SecondaryFocusGained(lines, sel)
		},
		OnRefresh: func() {
			m.RequestRefresh(reconcile.SideSecondary)
		},
	}, nil)

	state := reconcile.NewBufferState(
		reconcile.PrimaryState{Lines: []string{""}},
		reconcile.SecondaryState{Lines: []string{""}},
	)
	m = mediator.New(state, proc, view, view,
		mediator.WithTimeout(cfg.TokenTimeout.Std()),
		mediator.WithHooks(hooks),
		mediator.WithLogger(log),
	)

	go func() {
		if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("mediator stopped")
		}
	}()

	go func() {
		defer cancel()
		if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("bridge stream closed")
		}
	}()

	if opts.ConfigPath != "" {
		go func() {
			err := config.Watch(ctx, opts.ConfigPath, func(cfg config.Config) {
				m.SetTimeout(cfg.TokenTimeout.Std())
				log.Info().Dur("token_timeout", cfg.TokenTimeout.Std()).Msg("configuration reloaded")
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	if err := view.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("view stopped")
		return 1
	}
	cancel()

	if err := proc.Wait(); err != nil && ctx.Err() == nil {
		log.Warn().Err(err).Msg("bridge exited")
	}
	return 0
}

// newLogger opens the log sink. The terminal belongs to the view, so
// without an explicit path logs are discarded.
func newLogger(path, level string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	log := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogPath, "log", "", "Path to log file (logging disabled when empty)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ShadowVim - keeps a UI buffer and an embedded nvim in sync\n\n")
		fmt.Fprintf(os.Stderr, "Usage: shadowvim [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  shadowvim                      Run with the built-in defaults\n")
		fmt.Fprintf(os.Stderr, "  shadowvim -c shadowvim.toml    Run with a config file, reloaded on change\n")
		fmt.Fprintf(os.Stderr, "  shadowvim -log shadowvim.log   Write structured logs to a file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ShadowVim %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
