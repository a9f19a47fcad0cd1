// Command pebblesgame starts the pebbles game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control host/port, the presets directory, logging, the randomness seed,
// and optional ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/wricardo/mcp-training/pebblesgame/api"
	"github.com/wricardo/mcp-training/pebblesgame/game/config"
	"github.com/wricardo/mcp-training/pebblesgame/game/service"
	"github.com/wricardo/mcp-training/pebblesgame/game/session"
	"github.com/wricardo/mcp-training/pebblesgame/transport/mcp"
	"github.com/wricardo/mcp-training/pebblesgame/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Pebbles Game Server"
)

const (
	sessionCleanupInterval = time.Hour
	sessionMaxAge          = 24 * time.Hour
	externalAPIURL         = "http://localhost:8080"
)

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	app := newApp()
	app.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if err := setupLogging(cmd.String("log-level"), cmd.Bool("debug")); err != nil {
			return ctx, err
		}
		if envErr == nil {
			log.Debug().Msg("loaded environment variables from .env file")
		} else if !errors.Is(envErr, os.ErrNotExist) {
			log.Warn().Err(envErr).Msg("error loading .env file")
		}
		return ctx, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newApp builds the command tree. Running without a subcommand starts the
// HTTP server.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "pebblesgame",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "presets-dir",
				Value:   "presets",
				Usage:   "Directory containing game presets (empty for builtins only)",
				Sources: cli.EnvVars("PRESETS_DIR"),
			},
			&cli.StringFlag{
				Name:    "default-preset",
				Usage:   "Preset used when a session names none",
				Sources: cli.EnvVars("DEFAULT_PRESET"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging with console output",
			},
			&cli.StringFlag{
				Name:    "seed",
				Usage:   "Fixed randomness seed, makes games reproducible",
				Sources: cli.EnvVars("GAME_SEED"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runHTTPServer,
		Commands: []*cli.Command{
			{
				Name:    "server",
				Aliases: []string{"http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runHTTPServer,
			},
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdioMCP,
			},
		},
	}
}

// setupLogging configures the global zerolog logger. Logs always go to
// stderr so stdio MCP traffic on stdout stays clean.
func setupLogging(level string, debug bool) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if debug {
		lvl = zerolog.DebugLevel
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Caller().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// services groups the managers behind the game service
type services struct {
	game     service.GameService
	sessions *session.Manager
	presets  *config.Manager
}

// initializeServices wires the preset and session managers into the game
// service.
func initializeServices(presetsDir, defaultPreset, seed string) (*services, error) {
	presets, err := config.NewManager(presetsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create preset manager: %w", err)
	}
	if defaultPreset != "" {
		if err := presets.SetDefault(defaultPreset); err != nil {
			return nil, fmt.Errorf("failed to set default preset: %w", err)
		}
	}

	sessions := session.NewManager()

	var opts []service.Option
	if seed != "" {
		opts = append(opts, service.WithSeed([]byte(seed)))
		log.Warn().Msg("using fixed randomness seed, games are reproducible")
	}
	return &services{
		game:     service.NewGameService(sessions, presets, opts...),
		sessions: sessions,
		presets:  presets,
	}, nil
}

func servicesFromFlags(cmd *cli.Command) (*services, error) {
	return initializeServices(cmd.String("presets-dir"), cmd.String("default-preset"), cmd.String("seed"))
}

// presetReloadRoutine drops cached presets on SIGHUP so edited files are
// picked up without a restart.
func presetReloadRoutine(ctx context.Context, presets *config.Manager) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := presets.RefreshCache(); err != nil {
				log.Error().Err(err).Msg("failed to reload presets")
				continue
			}
			log.Info().Msg("presets reloaded")
		}
	}
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within maxAge until ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				log.Info().Int("removed", removed).Int("remaining", manager.Count()).Msg("cleaned up expired sessions")
			}
		}
	}
}

// newHandler mounts the REST API at the root and the MCP JSON-RPC endpoint
// at /mcp.
func newHandler(apiServer http.Handler, mcpServer *server.MCPServer) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp endpoint. With --ngrok it also provisions a public tunnel.
func runHTTPServer(ctx context.Context, cmd *cli.Command) error {
	svc, err := servicesFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := websocket.NewHub()
	go hub.Run(ctx)
	go sessionCleanupRoutine(ctx, svc.sessions, sessionCleanupInterval, sessionMaxAge)
	go presetReloadRoutine(ctx, svc.presets)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mcpClient := mcp.NewClient("http://" + addr)
	handler := newHandler(api.NewServer(svc.game, hub), mcpClient.GetMCPServer())

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("version", Version).Str("mode", "server").Msgf("starting %s", AppName)

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().
			Str("addr", addr).
			Str("api", fmt.Sprintf("http://%s/api", addr)).
			Str("websocket", fmt.Sprintf("ws://%s/ws?session=<session_id>", addr)).
			Str("mcp", fmt.Sprintf("http://%s/mcp", addr)).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveNgrok(ctx, handler, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"))
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case runErr = <-serveErr:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("server stopped")
	return runErr
}

// serveNgrok exposes handler through an ngrok tunnel until ctx is done.
func serveNgrok(ctx context.Context, handler http.Handler, authToken, domain string) {
	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	log.Info().Msg("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}

	ngrokURL := tun.URL()
	log.Info().
		Str("url", ngrokURL).
		Str("api", ngrokURL+"/api").
		Str("websocket", ngrokURL+"/ws?session=<session_id>").
		Str("mcp", ngrokURL+"/mcp").
		Msg("ngrok tunnel established")

	tunnelServer := &http.Server{Handler: handler}
	go func() {
		<-ctx.Done()
		tunnelServer.Close()
	}()

	if err := tunnelServer.Serve(tun); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// externalAPIAvailable reports whether a healthy pebbles API answers at baseURL.
func externalAPIAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// runStdioMCP runs an MCP stdio server. It reuses an API already listening
// on localhost:8080; otherwise it starts an internal API on a random
// loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	log.Info().Str("version", Version).Str("mode", "stdio-mcp").Msgf("starting %s", AppName)

	baseURL := externalAPIURL
	if externalAPIAvailable(externalAPIURL) {
		log.Info().Str("url", externalAPIURL).Msg("external API server found, using it for MCP")
	} else {
		log.Info().Msg("no external API server found, starting internal HTTP server")

		svc, err := servicesFromFlags(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run(ctx)
		go sessionCleanupRoutine(ctx, svc.sessions, sessionCleanupInterval, sessionMaxAge)
		go presetReloadRoutine(ctx, svc.presets)

		httpServer := &http.Server{Handler: api.NewServer(svc.game, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
		log.Info().Str("url", baseURL).Msg("internal HTTP server started")
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Str("api", baseURL).Msg("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
