package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/five82/kuteview/internal/config"
	"github.com/five82/kuteview/internal/console"
	"github.com/five82/kuteview/internal/kutelog"
	"github.com/five82/kuteview/internal/livelog"
	"github.com/five82/kuteview/internal/prefs"
	"github.com/five82/kuteview/internal/state"
	"github.com/five82/kuteview/internal/transport"
	"github.com/five82/kuteview/internal/ui"
)

// debugLogEnv names a file that receives log output while the TUI owns the
// terminal.
const debugLogEnv = "KUTEVIEW_DEBUG_LOG"

// Options configure the kuteview application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/kuteview/prefs.toml
	Server     string        // overrides the config file when set
	RetryDelay time.Duration // overrides the config file when positive
	Plain      bool          // print entries to Stdout instead of starting the TUI
	Stdout     io.Writer     // plain mode output; nil uses os.Stdout
}

// Run connects to the kutelog server and renders its live log until the
// context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if server := strings.TrimSpace(opts.Server); server != "" {
		cfg.Server = server
	}
	if opts.RetryDelay > 0 {
		cfg.RetryDelay = opts.RetryDelay
	}

	meta, err := kutelog.NewClient(cfg.Server)
	if err != nil {
		return fmt.Errorf("init kutelog client: %w", err)
	}

	if opts.Plain {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		return runPlain(ctx, cfg, meta, out)
	}
	return runTUI(ctx, cfg, meta, opts.PrefsPath)
}

func runTUI(ctx context.Context, cfg config.Config, meta *kutelog.Client, prefsPath string) error {
	restore, err := redirectLog()
	if err != nil {
		return err
	}
	defer restore()

	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	store := state.NewStore(cfg.HistoryLimit)
	client, err := newLiveClient(meta, store, cfg.RetryDelay)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return client.Run(gctx)
	})
	g.Go(func() error {
		watchVersion(gctx, meta, cfg.RetryDelay, store.SetVersion)
		return nil
	})
	g.Go(func() error {
		// Quitting the UI stops everything else.
		defer cancel()
		if err := ui.Run(ui.Options{
			Context:   gctx,
			Store:     store,
			Status:    client.Snapshot,
			Endpoint:  meta.WebSocketURL(),
			Refresh:   cfg.Refresh,
			ThemeName: userPrefs.Theme,
			PrefsPath: prefsPath,
			Follow:    userPrefs.Follow,
		}); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func runPlain(ctx context.Context, cfg config.Config, meta *kutelog.Client, out io.Writer) error {
	writer := console.NewWriter(out, console.DefaultPalette(), meta.WebSocketURL())
	client, err := newLiveClient(meta, writer, cfg.RetryDelay)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Run(gctx)
	})
	g.Go(func() error {
		watchVersion(gctx, meta, cfg.RetryDelay, func(version string) {
			log.Printf("server %s", version)
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintln(out, console.Summary(client.Snapshot().Counts))
	return nil
}

func newLiveClient(meta *kutelog.Client, renderer livelog.Renderer, retry time.Duration) (*livelog.Client, error) {
	client, err := livelog.New(livelog.Options{
		URL:        meta.WebSocketURL(),
		Dialer:     transport.NewWebSocketDialer(),
		Renderer:   renderer,
		RetryDelay: retry,
	})
	if err != nil {
		return nil, fmt.Errorf("init live client: %w", err)
	}
	return client, nil
}

// redirectLog keeps the standard logger off the alt screen. Output goes to
// the file named by KUTEVIEW_DEBUG_LOG, or nowhere.
func redirectLog() (func(), error) {
	restore := func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}
	path := strings.TrimSpace(os.Getenv(debugLogEnv))
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}
	f, err := tea.LogToFile(path, "kuteview")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() {
		_ = f.Close()
		restore()
	}, nil
}
