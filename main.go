// Command hare-hounds starts the Hare & Hounds game server.
//
// It supports four commands:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" – plays one game in the terminal
//  4. "validate" – checks game configuration files
//
// Flags control host/port, config directory, debug logging, session expiry,
// and optional ngrok tunneling for easy external access during development.
// A running server re-reads its config directory on SIGHUP.
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
	"strconv"
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

	"github.com/wricardo/hare-hounds/api"
	"github.com/wricardo/hare-hounds/game/config"
	"github.com/wricardo/hare-hounds/game/engine"
	"github.com/wricardo/hare-hounds/game/service"
	"github.com/wricardo/hare-hounds/game/session"
	"github.com/wricardo/hare-hounds/transport/mcp"
	"github.com/wricardo/hare-hounds/transport/websocket"
	"github.com/wricardo/hare-hounds/tui"
	"github.com/wricardo/hare-hounds/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Hare & Hounds Server"
)

// cleanupInterval is how often expired sessions are looked for
const cleanupInterval = time.Hour

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("error loading .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

// newCommand builds the command tree. Flags on the root apply to every
// subcommand.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "hare-hounds",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "default-config",
				Usage:   "config used by sessions created without one (default: classic)",
				Sources: cli.EnvVars("DEFAULT_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.DurationFlag{
				Name:    "session-ttl",
				Value:   24 * time.Hour,
				Usage:   "remove sessions not accessed for this long",
				Sources: cli.EnvVars("SESSION_TTL"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server with API, WebSocket, and MCP endpoint",
				Action: serve,
			},
			{
				Name:  "mcp",
				Usage: "run an MCP stdio server backed by the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-url",
						Value:   "http://localhost:8080",
						Usage:   "API server to use; an internal one starts when it is unreachable",
						Sources: cli.EnvVars("API_URL"),
					},
				},
				Action: runMCP,
			},
			{
				Name:  "play",
				Usage: "play a game in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "classic",
						Usage: "config id from --config-dir, or a path to a JSON file",
					},
				},
				Action: play,
			},
			{
				Name:      "validate",
				Usage:     "validate configuration files",
				ArgsUsage: "[file.json ...]",
				Action:    validateConfigs,
			},
		},
	}
}

// setupLogging writes human readable logs to stderr, which keeps stdout free
// for the MCP stdio protocol
func setupLogging(debug bool) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// services holds the managers behind the game service
type services struct {
	configs  *config.Manager
	sessions *session.Manager
	game     service.GameService
}

// buildServices wires the config and session managers into the game service.
// defaultConfig, when set, replaces classic as the config of sessions created
// without one. sink, when set, receives the events of every session.
func buildServices(configDir, defaultConfig string, sink session.EventSink) (*services, error) {
	configs, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if defaultConfig != "" {
		if err := configs.SetDefault(defaultConfig); err != nil {
			return nil, fmt.Errorf("default config %q: %w", defaultConfig, err)
		}
	}

	var opts []session.Option
	if sink != nil {
		opts = append(opts, session.WithEventSink(sink))
	}
	sessions := session.NewManager(opts...)

	return &services{
		configs:  configs,
		sessions: sessions,
		game:     service.NewGameService(sessions, configs),
	}, nil
}

// reloadConfigs re-reads the config directory on every value from reload
// until ctx is cancelled. Running sessions keep the config they started with.
func reloadConfigs(ctx context.Context, configs *config.Manager, reload <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-reload:
			configs.RefreshCache()
			log.Info().Str("signal", sig.String()).Str("default", configs.GetDefault().Name).Msg("configs reloaded")
		}
	}
}

// hubSink pushes engine events to the WebSocket clients of the session
func hubSink(hub *websocket.Hub) session.EventSink {
	return func(sessionID string, ev engine.Event) {
		hub.BroadcastToSession(sessionID, string(ev.Type), ev.State)
	}
}

// newRouter mounts the API at the root and the MCP JSON-RPC endpoint at /mcp
func newRouter(apiServer http.Handler, mcpServer *server.MCPServer) http.Handler {
	router := http.NewServeMux()
	router.Handle("/", apiServer)
	router.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		defer r.Body.Close()

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}

		response := mcpServer.HandleMessage(r.Context(), body)
		if response == nil {
			// notifications get no reply
			w.WriteHeader(http.StatusAccepted)
			return
		}

		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(responseData)
	})
	return router
}

// serve runs the HTTP server until the context is cancelled. If ngrok is
// enabled it also provisions a public tunnel.
func serve(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))
	log.Info().Str("version", Version).Msgf("Starting %s", AppName)

	hub := websocket.NewHub()
	svc, err := buildServices(cmd.String("config-dir"), cmd.String("default-config"), hubSink(hub))
	if err != nil {
		return err
	}
	defer svc.sessions.CloseAll()

	go hub.Run(ctx)
	go svc.sessions.RunCleanup(ctx, cleanupInterval, cmd.Duration("session-ttl"))

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go reloadConfigs(ctx, svc.configs, hup)

	addr := net.JoinHostPort(cmd.String("host"), strconv.Itoa(int(cmd.Int("port"))))
	mcpClient := mcp.NewClient("http://" + addr)
	handler := newRouter(api.NewServer(svc.game, hub), mcpClient.GetMCPServer())

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	serveErr := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().Msgf("HTTP server listening on %s", addr)
		log.Info().Msgf("REST API: http://%s/api", addr)
		log.Info().Msgf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), handler)
		}()
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down...")
	case err := <-serveErr:
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info().Msg("Server stopped")
	return nil
}

// runNgrok serves handler through an ngrok tunnel until ctx is cancelled
func runNgrok(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Warn().Msg("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Info().Msg("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("Using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("Failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.Info().Msgf("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Info().Msgf("  REST API (ngrok): %s/api", ngrokURL)
	log.Info().Msgf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Info().Msgf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.Error().Err(err).Msg("Ngrok server error")
	}
	log.Info().Msg("Ngrok tunnel closed")
}

// runMCP runs an MCP stdio server. It reuses the API at --api-url when it
// answers, otherwise it starts an internal API bound to a random loopback port.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))

	baseURL := cmd.String("api-url")
	log.Info().Msgf("Checking for external API server at %s...", baseURL)

	if apiAvailable(ctx, baseURL) {
		log.Info().Msgf("External API server found at %s, using it for MCP", baseURL)
	} else {
		log.Info().Msg("No external API server found, starting internal HTTP server")

		svc, err := buildServices(cmd.String("config-dir"), cmd.String("default-config"), nil)
		if err != nil {
			return err
		}
		defer svc.sessions.CloseAll()
		go svc.sessions.RunCleanup(ctx, cleanupInterval, cmd.Duration("session-ttl"))

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internal := &http.Server{Handler: api.NewServer(svc.game, nil)}
		go func() {
			if err := internal.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Internal HTTP server error")
			}
		}()
		defer internal.Close()

		baseURL = "http://" + listener.Addr().String()
		log.Info().Msgf("Internal HTTP server for MCP stdio on %s", baseURL)
	}

	mcpClient := mcp.NewClient(baseURL)
	log.Info().Msg("MCP stdio server ready")
	return server.ServeStdio(mcpClient.GetMCPServer())
}

// apiAvailable reports whether a game API answers its health check
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// play runs one game in the terminal
func play(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd.Bool("debug"))
	// log lines would tear the alternate screen
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	cfg, err := resolvePlayConfig(cmd.String("config-dir"), cmd.String("config"))
	if err != nil {
		return err
	}
	return tui.Run(ctx, cfg)
}

// resolvePlayConfig treats a name with a path separator as a JSON file and
// anything else as a config id in configDir
func resolvePlayConfig(configDir, name string) (*engine.GameConfig, error) {
	if strings.ContainsAny(name, `/\`) {
		return engine.LoadGameConfig(name)
	}

	configs, err := config.NewManager(configDir)
	if err != nil {
		return nil, err
	}
	return configs.LoadConfig(name)
}

// validateConfigs checks the files named as arguments, or every file in the
// config directory
func validateConfigs(ctx context.Context, cmd *cli.Command) error {
	var results []validate.Result
	if cmd.Args().Len() > 0 {
		for _, path := range cmd.Args().Slice() {
			results = append(results, validate.ValidateFile(path))
		}
	} else {
		var err error
		results, err = validate.ValidateDir(cmd.String("config-dir"))
		if err != nil {
			return err
		}
	}

	if invalid := validate.Print(cmd.Root().Writer, results); invalid > 0 {
		return fmt.Errorf("%d invalid config file(s)", invalid)
	}
	return nil
}
