package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	_ "time/tzdata"

	"postfeed/app/config"
	"postfeed/app/datefmt"
	"postfeed/app/repositories"
	"postfeed/app/routes"
	"postfeed/app/services"
	"postfeed/app/views"
	"postfeed/pkg/logger"

	"github.com/rs/zerolog"
)

const CliVersion = "1.0.0"

// exit is swapped out in tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the command line.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("postfeed version %s\n", CliVersion)
	case "serve":
		if err := serve(os.Args[2:]); err != nil {
			fmt.Printf("Error: %v\n", err)
			exit(1)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: postfeed <command> [options]
Commands:
  help                 Display this help message.
  version              Show version information.
  serve [--addr :8080] Run the post feed web server.

Configuration is read from the environment and an optional .env file
(PORT, LOG_LEVEL, LOG_FORMAT, POSTS_FILE, TIMEZONE, INSTANCE_TTL, SEED_COMMENT, STATIC_DIR).
`
	fmt.Println(helpText)
}

// app is the wired application: the HTTP handler plus whatever must be
// released on shutdown.
type app struct {
	handler http.Handler
	closer  io.Closer
}

// newApp wires configuration into repositories, services and routes.
func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	posts, err := repositories.LoadCatalogFile(cfg.App.PostsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	db, err := repositories.OpenStore(log)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance store: %w", err)
	}

	commentService, err := services.NewCommentService(
		repositories.NewBadgerInstanceRepository(db, cfg.App.InstanceTTL),
		posts,
		cfg.App.SeedComment,
		log,
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	renderer, err := views.NewRenderer(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := routes.SetupRoutes(routes.Deps{
		PostService:    services.NewPostService(posts),
		CommentService: commentService,
		Renderer:       renderer,
		Formatter:      datefmt.New(loc, nil),
		StaticDir:      cfg.Server.StaticDir,
		Log:            log,
	})

	return &app{handler: router, closer: db}, nil
}

// serve runs the web server until SIGINT or SIGTERM.
func serve(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Server.Addr(), "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	a, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.closer.Close()

	srv := &http.Server{
		Addr:         *addr,
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, srv, cfg, log)
}

// runServer serves until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, cfg *config.Config, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
