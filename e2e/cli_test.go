package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/nrowgame/internal/api"
	"github.com/mcoot/nrowgame/internal/api/response"
	"github.com/mcoot/nrowgame/internal/factory"
	"github.com/mcoot/nrowgame/internal/testutil"
	"github.com/mcoot/nrowgame/internal/web"
)

// cliRunner runs the built nrow binary against a server
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)
	binaryPath := filepath.Join(t.TempDir(), "nrow")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/nrow")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{binaryPath: binaryPath, serverURL: serverURL}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{"--server", r.serverURL, "--output", "json"}, args...)
	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = os.Environ()
	output, err := cmd.Output()
	return string(output), err
}

func (r *cliRunner) runJSON(t *testing.T, result any, args ...string) {
	t.Helper()
	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), result), "output: %s", output)
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer serves the API and web pages on a free local port
func startTestServer(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().(*net.TCPAddr)
	require.NoError(t, listener.Close())

	logger := testutil.NopLogger()
	app, err := factory.New(t.Context(), factory.Config{Logger: logger})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{Logger: logger, GameController: app.GameController}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{Logger: logger, GameController: app.GameController}))

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = "127.0.0.1"
	serverCfg.Port = addr.Port
	server := api.NewServer(mux, serverCfg, logger)

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
		_ = app.Close()
	})

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	var resp response.Health
	cli.runJSON(t, &resp, "health")
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_FullGameFlow(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	var g response.Game
	cli.runJSON(t, &g, "game", "create", "--width", "5", "--height", "5", "--win-length", "4", "--players", "amy,bob")
	require.NotEmpty(t, g.ID)
	assert.Equal(t, "in_progress", g.State)

	// amy builds the main diagonal while bob plays along row 0
	moves := [][2]string{
		{"0", "0"}, {"0", "1"},
		{"1", "1"}, {"0", "2"},
		{"2", "2"}, {"0", "3"},
	}
	for _, m := range moves {
		var turn response.TurnResponse
		cli.runJSON(t, &turn, "game", "move", g.ID, m[0], m[1])
		assert.Equal(t, "next_turn", turn.Outcome.Kind)
	}

	var turn response.TurnResponse
	cli.runJSON(t, &turn, "game", "move", g.ID, "3", "3")
	assert.Equal(t, "win", turn.Outcome.Kind)
	assert.Equal(t, "Player amy wins!", turn.Outcome.Message)
	assert.Equal(t, "won", turn.Game.State)
	assert.Len(t, turn.Game.WinningCells, 4)

	var run response.Run
	cli.runJSON(t, &run, "game", "run", g.ID, "2", "2")
	assert.True(t, run.Winning)

	cli.runJSON(t, &turn, "game", "move", g.ID, "4", "4")
	assert.Equal(t, "game_over", turn.Outcome.Kind)

	var list response.GameList
	cli.runJSON(t, &list, "game", "list")
	require.Len(t, list.Games, 1)
	assert.Equal(t, g.ID, list.Games[0].ID)
}

func TestCLI_BotTurns(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	var g response.Game
	cli.runJSON(t, &g, "game", "create", "--width", "3", "--height", "3", "--win-length", "3")

	// Bots on both sides always finish a 3x3 game within nine turns
	var turn response.TurnResponse
	for range 9 {
		cli.runJSON(t, &turn, "game", "bot", g.ID)
		if turn.Outcome.Kind == "win" || turn.Outcome.Kind == "draw" {
			break
		}
		assert.Equal(t, "next_turn", turn.Outcome.Kind)
	}
	assert.Contains(t, []string{"won", "draw"}, turn.Game.State)

	_, err := cli.run("game", "suggest", g.ID)
	assert.Error(t, err, "finished games have no suggestion")
}

func TestCLI_ErrorHandling(t *testing.T) {
	cli := newCLIRunner(t, startTestServer(t))

	output, err := cli.run("game", "get", "missing")
	assert.Error(t, err)
	assert.Empty(t, output)

	_, err = cli.run("game", "create", "--width", "3", "--height", "3", "--win-length", "7")
	assert.Error(t, err)

	output, err = cli.run("game", "delete", "missing")
	assert.Error(t, err, "output: %s", output)
}

func TestWebPagesServed(t *testing.T) {
	serverURL := startTestServer(t)

	resp, err := http.Get(serverURL + "/")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
}
