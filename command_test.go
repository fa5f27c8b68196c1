package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MixinNetwork/musesong/nft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientId = "e9e5b807-fa8b-455a-8dfa-b189d28310ff"

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"bootstrap", "create", "feed", "play", "get", "exists", "address", "events"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	dir := cmd.PersistentFlags().Lookup("dir")
	require.NotNil(t, dir)
	assert.Equal(t, "d", dir.Shorthand)

	conf := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, conf)
	assert.Equal(t, "c", conf.Shorthand)
	assert.Equal(t, "~/.mixin/musesong/config.toml", conf.DefValue)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/tmp/x", expandHome("/tmp/x"))
	assert.False(t, strings.HasPrefix(expandHome("~/x"), "~"))
}

func runCommand(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandFlow(t *testing.T) {
	root := t.TempDir()
	conf := filepath.Join(root, "config.toml")
	data := "[app]\nclient-id = \"" + testClientId + "\"\n[store]\ndir = \"" + filepath.Join(root, "data") + "\"\n"
	require.NoError(t, os.WriteFile(conf, []byte(data), 0600))

	out, err := runCommand(t, "-c", conf, "exists")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	_, err = runCommand(t, "-c", conf, "create", "--title", "T")
	assert.ErrorIs(t, err, nft.ErrUninitialized)

	out, err = runCommand(t, "-c", conf, "bootstrap")
	require.NoError(t, err)
	assert.Contains(t, out, "collection ")
	_, err = runCommand(t, "-c", conf, "bootstrap")
	assert.ErrorIs(t, err, nft.ErrAlreadyInitialized)

	alice := "b1b7a4a9-6f1e-4d6c-9e2e-0c1d4c2b8f01"
	_, err = runCommand(t, "-c", conf, "-u", alice, "create", "--title", strings.Repeat("t", 41))
	assert.ErrorIs(t, err, nft.ErrTitleTooLong)

	out, err = runCommand(t, "-c", conf, "-u", alice, "create", "--identifier", "id1", "--title", "T", "--prompt", "P", "--image", "img", "--audio", "aud", "--tags", "tags")
	require.NoError(t, err)
	songAddress := strings.TrimSpace(out)

	out, err = runCommand(t, "-c", conf, "-u", alice, "address")
	require.NoError(t, err)
	assert.Contains(t, out, "song "+songAddress)

	out, err = runCommand(t, "-c", conf, "-u", alice, "exists")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = runCommand(t, "-c", conf, "-u", alice, "play", "7")
	require.NoError(t, err)
	assert.Equal(t, "points 3\n", out)

	out, err = runCommand(t, "-c", conf, "-u", alice, "feed", "100")
	require.NoError(t, err)
	assert.Equal(t, "points 10\n", out)

	_, err = runCommand(t, "-c", conf, "-u", alice, "feed", "-1")
	assert.Error(t, err)

	out, err = runCommand(t, "-c", conf, "get", songAddress)
	require.NoError(t, err)
	assert.Contains(t, out, "identifier id1\n")
	assert.Contains(t, out, "audio aud\n")
	assert.Contains(t, out, "points 10\n")

	_, err = runCommand(t, "-c", conf, "get")
	assert.ErrorIs(t, err, nft.ErrNotAvailable)

	out, err = runCommand(t, "-c", conf, "events")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "id1")
}
