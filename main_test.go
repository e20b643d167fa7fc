package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/hare-hounds/api"
	"github.com/wricardo/hare-hounds/game/config"
	"github.com/wricardo/hare-hounds/game/engine"
	"github.com/wricardo/hare-hounds/transport/mcp"
)

func TestConstants(t *testing.T) {
	require.Equal(t, "1.0.0", Version)
	require.Equal(t, "Hare & Hounds Server", AppName)
}

func TestBuildServices(t *testing.T) {
	var (
		mu     sync.Mutex
		events []string
	)
	sink := func(sessionID string, ev engine.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, sessionID+":"+string(ev.Type))
	}

	svc, err := buildServices("configs", "", sink)
	require.NoError(t, err)
	t.Cleanup(svc.sessions.CloseAll)

	ctx := context.Background()
	info, err := svc.game.CreateSession(ctx, "classic")
	require.NoError(t, err)
	require.Equal(t, 1, svc.sessions.Count())

	result, err := svc.game.Move(ctx, info.ID, "forward", false)
	require.NoError(t, err)
	require.True(t, result.Accepted)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	require.True(t, strings.HasPrefix(events[len(events)-1], info.ID+":"))
}

func TestBuildServices_InvalidConfigDir(t *testing.T) {
	_, err := buildServices("/non/existent/path", "", nil)
	require.Error(t, err)
}

func TestBuildServices_DefaultConfig(t *testing.T) {
	svc, err := buildServices("configs", "blitz", nil)
	require.NoError(t, err)
	t.Cleanup(svc.sessions.CloseAll)

	info, err := svc.game.CreateSession(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "blitz", info.GameConfig.Name)

	_, err = buildServices("configs", "missing", nil)
	require.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestReloadConfigs(t *testing.T) {
	dir := t.TempDir()
	classic := engine.DefaultConfig()
	writeJSON(t, filepath.Join(dir, "classic.json"), classic)

	configs, err := config.NewManager(dir)
	require.NoError(t, err)
	require.Equal(t, "classic", configs.GetDefault().Name)

	ctx, cancel := context.WithCancel(context.Background())
	reload := make(chan os.Signal)
	done := make(chan struct{})
	go func() {
		defer close(done)
		reloadConfigs(ctx, configs, reload)
	}()

	classic.Name = "classic v2"
	writeJSON(t, filepath.Join(dir, "classic.json"), classic)
	require.Equal(t, "classic", configs.GetDefault().Name)

	reload <- syscall.SIGHUP
	require.Eventually(t, func() bool {
		return configs.GetDefault().Name == "classic v2"
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func TestResolvePlayConfig(t *testing.T) {
	cfg, err := resolvePlayConfig("configs", "blitz")
	require.NoError(t, err)
	require.Equal(t, "blitz", cfg.Name)

	custom := engine.DefaultConfig()
	custom.Name = "custom"
	custom.TimeLimit = 42
	path := filepath.Join(t.TempDir(), "custom.json")
	writeJSON(t, path, custom)

	cfg, err = resolvePlayConfig("configs", path)
	require.NoError(t, err)
	require.Equal(t, "custom", cfg.Name)
	require.Equal(t, 42, cfg.TimeLimit)

	_, err = resolvePlayConfig("configs", "missing")
	require.ErrorIs(t, err, config.ErrConfigNotFound)

	_, err = resolvePlayConfig("configs", filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestCommand_FlagDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("CONFIG_DIR", "somewhere")
	t.Setenv("DEFAULT_CONFIG", "blitz")

	cmd := newCommand()
	var got struct {
		host      string
		port      int
		configDir string
		defConfig string
		ttl       time.Duration
		ngrok     bool
	}
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		got.host = c.String("host")
		got.port = int(c.Int("port"))
		got.configDir = c.String("config-dir")
		got.defConfig = c.String("default-config")
		got.ttl = c.Duration("session-ttl")
		got.ngrok = c.Bool("ngrok")
		return nil
	}

	require.NoError(t, cmd.Run(context.Background(), []string{"hare-hounds"}))
	require.Equal(t, "0.0.0.0", got.host)
	require.Equal(t, 9090, got.port)
	require.Equal(t, "somewhere", got.configDir)
	require.Equal(t, "blitz", got.defConfig)
	require.Equal(t, 24*time.Hour, got.ttl)
	require.False(t, got.ngrok)
}

func TestCommand_Subcommands(t *testing.T) {
	var names []string
	for _, sub := range newCommand().Commands {
		names = append(names, sub.Name)
	}
	require.Equal(t, []string{"serve", "mcp", "play", "validate"}, names)
}

func TestValidateCommand(t *testing.T) {
	classic, err := os.ReadFile(filepath.Join("configs", "classic.json"))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), classic, 0o644))

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := newCommand()
		cmd.Writer = &out
		cmd.ErrWriter = io.Discard
		err := cmd.Run(context.Background(), append([]string{"hare-hounds", "--config-dir", dir, "validate"}, args...))
		return out.String(), err
	}

	out, err := run()
	require.NoError(t, err)
	require.Contains(t, out, "✅ good.json: VALID")

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"name": "broken"}`), 0o644))

	out, err = run()
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 invalid config file(s)")
	require.Contains(t, out, "❌ broken.json: INVALID")

	// explicit files skip the directory scan
	out, err = run(filepath.Join(dir, "good.json"))
	require.NoError(t, err)
	require.NotContains(t, out, "broken.json")
}

func TestNewRouter(t *testing.T) {
	svc, err := buildServices("configs", "", nil)
	require.NoError(t, err)
	t.Cleanup(svc.sessions.CloseAll)

	router := newRouter(api.NewServer(svc.game, nil), mcp.NewClient("http://127.0.0.1:1").GetMCPServer())

	t.Run("api is mounted at the root", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("mcp lists tools", func(t *testing.T) {
		body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", body))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		require.Contains(t, rec.Body.String(), "create_session")
		require.Contains(t, rec.Body.String(), "bulk_move")
	})

	t.Run("mcp rejects GET", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestAPIAvailable(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()
	require.True(t, apiAvailable(context.Background(), healthy.URL))

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	require.False(t, apiAvailable(context.Background(), broken.URL))

	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()
	require.False(t, apiAvailable(context.Background(), url))
}
