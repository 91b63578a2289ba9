package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/deeds"
	"github.com/aretw0/deeds/internal/config"
	"github.com/aretw0/deeds/internal/presentation/tui"
	"github.com/aretw0/deeds/pkg/runner"
	"golang.org/x/sync/errgroup"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Config    *config.Config
	Logger    *slog.Logger
	Headless  bool
	JSON      bool
	SessionID string
	// Fresh deletes the stored session before the conversation starts.
	Fresh bool

	In  io.Reader
	Out io.Writer
}

// RunChat runs a terminal conversation until the user quits or ctx is done.
// With document.watch set the tree is reloaded while chatting.
func RunChat(ctx context.Context, opts RunOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.SessionID == "" {
		opts.SessionID = runner.DefaultSessionID
	}

	stores, err := OpenStores(ctx, opts.Config, opts.Logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	engine, err := NewEngine(opts.Config, opts.Logger, stores)
	if err != nil {
		return err
	}

	if opts.Fresh {
		if err := engine.Sessions().Delete(ctx, opts.SessionID); err != nil {
			return fmt.Errorf("failed to reset session %q: %w", opts.SessionID, err)
		}
	}

	quiet := opts.JSON || opts.Headless
	runnerOpts := []runner.Option{
		runner.WithLogger(opts.Logger),
		runner.WithHeadless(opts.Headless),
		runner.WithSessionID(opts.SessionID),
		runner.WithIO(opts.In, opts.Out),
	}
	switch {
	case opts.JSON:
		runnerOpts = append(runnerOpts, runner.WithInputHandler(runner.NewJSONHandler(opts.In, opts.Out)))
	case !opts.Headless:
		runnerOpts = append(runnerOpts,
			runner.WithRenderer(tui.NewRenderer()),
			runner.WithBanner(tui.Banner(deeds.Version)),
		)
	}
	r := runner.NewRunner(runnerOpts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if opts.Config.Document.Watch {
		g.Go(func() error {
			return engine.Watch(gctx)
		})
		if !quiet {
			printSystemMessage(opts.Out, "Watching '%s' for changes.", opts.Config.Document.Path)
		}
	}
	g.Go(func() error {
		defer cancel()
		return r.Run(gctx, engine)
	})

	return handleExecutionError(g.Wait())
}
