package e2e_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
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

	"github.com/bagrada/mythmeta/internal/api"
	"github.com/bagrada/mythmeta/internal/factory"
	"github.com/bagrada/mythmeta/internal/web"
	"github.com/bagrada/mythmeta/internal/web/sse"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "mythadm-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mythadm")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
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

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Bind first so the chosen port cannot be taken before Serve
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	// Shared presence hub, same wiring as the daemon
	hub := sse.NewHub(logger)
	go hub.Run()
	broadcaster := sse.NewBroadcaster(hub, app.SessionService, logger)

	// Create routers
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		SessionService: app.SessionService,
		LedgerService:  app.LedgerService,
		Presence:       broadcaster,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		SessionService: app.SessionService,
		Hub:            hub,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := &http.Server{
		Handler: mux,
	}

	// Start server
	go func() {
		if err := server.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			// Hub first, so open SSE streams end and Shutdown can drain
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
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

// Response types for JSON parsing
type playerResponse struct {
	ID          uint32 `json:"id"`
	Login       string `json:"login"`
	Name        string `json:"name"`
	Admin       bool   `json:"admin"`
	Banned      bool   `json:"banned"`
	TimesBanned int32  `json:"times_banned"`
	RankedScore struct {
		GamesPlayed uint32 `json:"games_played"`
		Wins        uint32 `json:"wins"`
		Points      int32  `json:"points"`
	} `json:"ranked_score"`
}

type sessionResponse struct {
	DataIndex int32  `json:"data_index"`
	PlayerID  uint32 `json:"player_id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	RoomID    int16  `json:"room_id"`
	Version   int32  `json:"version"`
}

type loginResponse struct {
	SessionToken string          `json:"session_token"`
	Session      sessionResponse `json:"session"`
	Player       playerResponse  `json:"player"`
}

type orderResponse struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
	Members     []struct {
		PlayerID uint32 `json:"player_id"`
		Online   bool   `json:"online"`
	} `json:"members"`
}

type healthResponse struct {
	Status        string `json:"status"`
	PlayersOnline int    `json:"players_online"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Zero(t, resp.PlayersOnline)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create account
	output, err := cli.run("player", "create", "--login", "alric", "--pass", "avatara7", "--name", "Alric")
	require.NoError(t, err, "output: %s", output)

	var created playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Equal(t, "alric", created.Login)
	assert.Equal(t, "Alric", created.Name)
	assert.True(t, created.Admin, "first account becomes admin")

	// Log in (token should be saved in token file)
	output, err = cli.run("session", "login", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)

	var loginResp loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loginResp))
	assert.NotEmpty(t, loginResp.SessionToken)
	assert.Equal(t, created.ID, loginResp.Session.PlayerID)

	// Show self using the saved token
	output, err = cli.run("player", "show")
	require.NoError(t, err, "output: %s", output)

	var me playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, "alric", me.Login)
	assert.Equal(t, created.ID, me.ID)
}

func TestCLI_Moderation(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Admin and a target account
	output, err := cli.run("player", "create", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("player", "create", "--login", "balor", "--pass", "leveler1")
	require.NoError(t, err, "output: %s", output)
	var target playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &target))
	require.Equal(t, uint32(2), target.ID)

	output, err = cli.run("session", "login", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)
	var adminLogin loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &adminLogin))
	adminToken := adminLogin.SessionToken

	// Ban for one hour
	output, err = cli.runWithToken(adminToken, "player", "ban", "2", "--hours", "1")
	require.NoError(t, err, "output: %s", output)

	var banned playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &banned))
	assert.True(t, banned.Banned)
	assert.Equal(t, int32(1), banned.TimesBanned)

	// Banned player cannot log in
	output, err = cli.run("session", "login", "--login", "balor", "--pass", "leveler1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "banned")

	// Unban restores access
	output, err = cli.runWithToken(adminToken, "player", "unban", "2")
	require.NoError(t, err, "output: %s", output)

	var unbanned playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &unbanned))
	assert.False(t, unbanned.Banned)

	output, err = cli.run("session", "login", "--login", "balor", "--pass", "leveler1")
	require.NoError(t, err, "output: %s", output)

	// Non-admin cannot ban
	var memberLogin loginResponse
	require.NoError(t, json.Unmarshal([]byte(output), &memberLogin))

	output, err = cli.runWithToken(memberLogin.SessionToken, "player", "ban", "1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "admin")
}

func TestCLI_OrderCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Two CLI runners with separate token files
	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Create and log in two players
	output, err := cli1.run("player", "create", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)
	output, err = cli1.run("session", "login", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)

	output, err = cli2.run("player", "create", "--login", "soma", "--pass", "vigilant")
	require.NoError(t, err, "output: %s", output)
	output, err = cli2.run("session", "login", "--login", "soma", "--pass", "vigilant")
	require.NoError(t, err, "output: %s", output)

	// Found the order
	output, err = cli1.run("order", "create", "--name", "Fallen Lords", "--member-pass", "rampage")
	require.NoError(t, err, "output: %s", output)

	var order orderResponse
	require.NoError(t, json.Unmarshal([]byte(output), &order))
	assert.Equal(t, "Fallen Lords", order.Name)
	assert.Equal(t, 1, order.MemberCount)
	require.Len(t, order.Members, 1)
	assert.True(t, order.Members[0].Online)

	// Wrong member password is rejected
	output, err = cli2.run("order", "join", "1", "--pass", "wrong")
	assert.Error(t, err, "output: %s", output)

	// Joining with the right password works
	output, err = cli2.run("order", "join", "1", "--pass", "rampage")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &order))
	assert.Equal(t, 2, order.MemberCount)

	// Show resolves the roster
	output, err = cli1.run("order", "show", "1")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &order))
	assert.Len(t, order.Members, 2)

	// Leaving shrinks the roster
	output, err = cli2.run("order", "leave")
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "Left order")

	output, err = cli1.run("order", "show", "1")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &order))
	assert.Equal(t, 1, order.MemberCount)
}

func TestCLI_SessionAndPresence(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "create", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("session", "login", "--login", "alric", "--pass", "avatara7", "--version", "2150")
	require.NoError(t, err, "output: %s", output)

	// Move rooms
	output, err = cli.run("session", "room", "5")
	require.NoError(t, err, "output: %s", output)

	var sess sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sess))
	assert.Equal(t, int16(5), sess.RoomID)

	// Online listing reflects the move
	output, err = cli.run("online", "list")
	require.NoError(t, err, "output: %s", output)

	var online []sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &online))
	require.Len(t, online, 1)
	assert.Equal(t, "alric", online[0].Login)
	assert.Equal(t, int16(5), online[0].RoomID)
	assert.Equal(t, int32(2150), online[0].Version)

	// Logout discards the saved token
	output, err = cli.run("session", "logout")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("player", "show")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication")
}

func TestCLI_RecordResult(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "create", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("session", "login", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("player", "result",
		"--standing", "win", "--ranked", "--points", "15", "--damage-inflicted", "420")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, uint32(1), player.RankedScore.GamesPlayed)
	assert.Equal(t, uint32(1), player.RankedScore.Wins)
	assert.Equal(t, int32(15), player.RankedScore.Points)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Show player without auth
	output, err := cli.run("player", "show")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication")

	// Get non-existent order
	output, err = cli.run("player", "create", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("session", "login", "--login", "alric", "--pass", "avatara7")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("order", "show", "999")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
