package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/picko-ai/picko/api"
	"github.com/picko-ai/picko/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type runResult struct {
	out string
	err string
}

func run(t *testing.T, args ...string) (runResult, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"picko"}, args...))
	return runResult{out: out.String(), err: errOut.String()}, err
}

func testArgs(t *testing.T, backend string) []string {
	t.Helper()
	t.Setenv(config.PathEnvVar, "")
	path := filepath.Join(t.TempDir(), "store")
	if backend == config.BackendSQLite {
		path += ".db"
	}
	return []string{"--db", path, "--backend", backend, "--no-ai", "--log-level", "error"}
}

func findCommand(app *cli.App, name string) *cli.Command {
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func TestAppCommands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"recommend", "serve", "add-tool", "favorite", "rate"} {
		assert.NotNil(t, findCommand(app, name), name)
	}
}

func TestAddToolAndRecommend(t *testing.T) {
	for _, backend := range []string{config.BackendBadger, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			global := testArgs(t, backend)

			res, err := run(t, append(global, "add-tool", "--name", "Gamma", "--category", "발표", "--strength-kr", "슬라이드 자동 생성", "--free")...)
			require.NoError(t, err)
			assert.NotEmpty(t, strings.TrimSpace(res.out))

			_, err = run(t, append(global, "add-tool", "--name", "Jasper", "--category", "마케팅")...)
			require.NoError(t, err)

			res, err = run(t, append(global, "recommend", "슬라이드 만들기", "마케팅")...)
			require.NoError(t, err)

			var resp api.RecommendationResponse
			require.NoError(t, json.Unmarshal([]byte(res.out), &resp), res.out)
			require.Len(t, resp.Results, 2)
			require.Len(t, resp.Results[0].Tools, 1)
			assert.Equal(t, "Gamma", resp.Results[0].Tools[0].Name)
			assert.True(t, resp.Results[0].Tools[0].Free)
			assert.Equal(t, "Jasper", resp.Results[1].Tools[0].Name)
		})
	}
}

func TestRecommend_Explain(t *testing.T) {
	global := testArgs(t, config.BackendBadger)
	_, err := run(t, append(global, "add-tool", "--name", "Gamma", "--category", "발표")...)
	require.NoError(t, err)

	res, err := run(t, append(global, "recommend", "--explain", "발표 준비")...)
	require.NoError(t, err)

	assert.Contains(t, res.err, `task: "발표 준비"`)
	assert.Contains(t, res.err, "keywords (split): 발표, 준비")
	assert.Contains(t, res.err, "1. Gamma [발표]")
}

func TestRecommend_RequiresTask(t *testing.T) {
	_, err := run(t, append(testArgs(t, config.BackendBadger), "recommend")...)
	assert.Error(t, err)
}

func TestFavoriteAndRate(t *testing.T) {
	global := testArgs(t, config.BackendBadger)

	res, err := run(t, append(global, "favorite", "--session", "s1", "--tool-id", "t1", "--tool-name", "Gamma")...)
	require.NoError(t, err)
	var fav api.InteractionResponse
	require.NoError(t, json.Unmarshal([]byte(res.out), &fav))
	require.NotNil(t, fav.Favorited)
	assert.True(t, *fav.Favorited)
	assert.Equal(t, "s1", fav.SessionID)

	res, err = run(t, append(global, "favorite", "--session", "s1", "--tool-id", "t1", "--unfavorite")...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(res.out), &fav))
	assert.False(t, *fav.Favorited)

	res, err = run(t, append(global, "rate", "--tool-id", "t1", "--rating", "5")...)
	require.NoError(t, err)
	var rating api.InteractionResponse
	require.NoError(t, json.Unmarshal([]byte(res.out), &rating))
	assert.Equal(t, 5, rating.Rating)
	assert.Len(t, rating.SessionID, 36, "a new session id is generated")

	_, err = run(t, append(global, "rate", "--tool-id", "t1", "--rating", "9")...)
	assert.Error(t, err)
}

func TestRequiredFlags(t *testing.T) {
	global := testArgs(t, config.BackendBadger)

	_, err := run(t, append(global, "add-tool")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	_, err = run(t, append(global, "rate", "--tool-id", "t1")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rating")
}

func TestInvalidLogLevel(t *testing.T) {
	global := testArgs(t, config.BackendBadger)
	global[len(global)-1] = "loud"

	_, err := run(t, append(global, "recommend", "x")...)
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	t.Setenv(config.PathEnvVar, "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "picko.yaml")
	content := "storage:\n  backend: sqlite\n  path: " + filepath.Join(dir, "tools.db") + "\nai:\n  enabled: false\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	_, err := run(t, "--config", cfgPath, "add-tool", "--name", "Notion AI", "--category", "문서")
	require.NoError(t, err)

	res, err := run(t, "--config", cfgPath, "recommend", "문서")
	require.NoError(t, err)
	assert.Contains(t, res.out, "Notion AI")
}
