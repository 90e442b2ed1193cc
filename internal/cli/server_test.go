package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"horror-quiz-service/internal/config"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoLevelDocument = `{"levels":[
	{"id":1,"name":"Kindergarten","description":"Banban","questions":[{},{},{}]},
	{"id":2,"name":"Factory","description":"Huggy","questions":[{},{},{},{},{}]}
]}`

func TestBuildServerMissingDataFile(t *testing.T) {
	cfg := config.Default()
	cfg.Quiz.DataPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := buildServer(context.Background(), cfg)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestBuildServerRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Quiz.Source = config.SourcePostgres

	_, err := buildServer(context.Background(), cfg)
	assert.ErrorContains(t, err, "postgres url")
}

func TestRunServerFailsBeforeBinding(t *testing.T) {
	port := freePort(t)
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", fmt.Sprintf("quiz:\n  data_path: %s\n", filepath.Join(dir, "missing.json")))

	err := runServer(context.Background(), cfgPath, port)
	require.Error(t, err)

	// The port must still be free: nothing was bound.
	ln, err := net.Listen("tcp", "127.0.0.1:"+port)
	require.NoError(t, err)
	ln.Close()
}

func TestRunServerMissingConfig(t *testing.T) {
	err := runServer(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestServeAndShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.Quiz.DataPath = writeFile(t, t.TempDir(), "questions.json", twoLevelDocument)

	server, err := buildServer(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, ":"+config.DefaultPort, server.Addr)
	assert.Equal(t, 15*time.Second, server.ReadTimeout)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, server, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/api/stats")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"total_levels":2,"total_questions":8,"games_featured":["Garten of Banban","Poppy Playtime","Five Nights at Freddy's"]}`, string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestBuildServerFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("quiz:document", twoLevelDocument))

	cfg := config.Default()
	cfg.Quiz.Source = config.SourceRedis
	cfg.Redis.Addr = mr.Addr()

	server, err := buildServer(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, server.Handler)
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
