package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/roulette/internal/config"
	"github.com/justyntemme/roulette/internal/session"
)

type recordingLauncher struct{ opened, revealed []string }

func (r *recordingLauncher) Open(path string) error {
	r.opened = append(r.opened, path)
	return nil
}

func (r *recordingLauncher) Reveal(path string) error {
	r.revealed = append(r.revealed, path)
	return nil
}

type removeTrash struct{}

func (removeTrash) MoveToTrash(path string) error { return os.Remove(path) }

func mediaDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"a.mp4", "b.mkv", "notes.txt", "sub/c.mp4"} {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	return root
}

func testOptions(t *testing.T, launcher *recordingLauncher) *Options {
	t.Helper()
	return &Options{
		ConfigPath: filepath.Join(t.TempDir(), config.FileName),
		Store:      StoreFile,
		sessionOpts: []session.Option{
			session.WithLauncher(launcher),
			session.WithTrash(removeTrash{}),
		},
	}
}

func execute(t *testing.T, opts *Options, args ...string) (string, error) {
	t.Helper()
	// Flag definitions reset opts to their defaults, so read them first.
	full := append([]string{"--config", opts.ConfigPath, "--store", opts.Store}, args...)

	root := newRootCommand(opts)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))

	root.SetArgs(full)
	err := root.Execute()
	return out.String(), err
}

func TestConfigCommandsPersist(t *testing.T) {
	media := mediaDir(t)
	opts := testOptions(t, &recordingLauncher{})

	out, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)
	assert.Contains(t, out, "Files found: 3")

	out, err = execute(t, opts, "config", "ext", "mp4,", ".mp4")
	require.NoError(t, err)
	assert.Contains(t, out, "Extensions: mp4")
	assert.Contains(t, out, "Files found: 2")

	out, err = execute(t, opts, "config", "recursive", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "Files found: 1")

	cfg, err := config.NewFileStore(opts.ConfigPath).Load()
	require.NoError(t, err)
	assert.Equal(t, config.ScanConfig{Directory: media, Extensions: []string{"mp4"}, Recursive: false}, cfg)

	out, err = execute(t, opts, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, media)
}

func TestPickCommand(t *testing.T) {
	media := mediaDir(t)
	launcher := &recordingLauncher{}
	opts := testOptions(t, launcher)
	_, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)

	out, err := execute(t, opts, "pick", "--subdir", "sub", "--open")
	require.NoError(t, err)
	want := filepath.Join(media, "sub", "c.mp4")
	assert.Equal(t, want, strings.TrimSpace(out))
	assert.Equal(t, []string{want}, launcher.opened)

	_, err = execute(t, opts, "pick", "--subdir", "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestSubdirsCommand(t *testing.T) {
	media := mediaDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(media, "sub", "deeper"), 0o755))
	opts := testOptions(t, &recordingLauncher{})
	_, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)

	out, err := execute(t, opts, "subdirs")
	require.NoError(t, err)
	assert.Equal(t, "sub\n", out)

	out, err = execute(t, opts, "subdirs", "--all")
	require.NoError(t, err)
	assert.Equal(t, "sub\nsub/deeper\n", out)
}

func TestScanCommandWithRootScope(t *testing.T) {
	media := mediaDir(t)
	opts := testOptions(t, &recordingLauncher{})
	_, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)

	for _, subdir := range []string{".", "./"} {
		out, err := execute(t, opts, "scan", "--subdir", subdir)
		require.NoError(t, err)
		assert.Contains(t, out, "Files found: 3", subdir)
	}

	out, err := execute(t, opts, "scan", "--subdir", "sub")
	require.NoError(t, err)
	assert.Contains(t, out, "Files found: 1")
}

func TestShellPlayPicksAndOpens(t *testing.T) {
	media := mediaDir(t)
	launcher := &recordingLauncher{}
	opts := testOptions(t, launcher)
	_, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)

	s, closer, err := opts.newSession()
	require.NoError(t, err)
	defer closer.Close()

	var out bytes.Buffer
	script := "subdir sub\ngo\nquit\n"
	require.NoError(t, runShell(s, newBasicLineInput(strings.NewReader(script), nil), &out))

	picked := filepath.Join(media, "sub", "c.mp4")
	assert.Equal(t, []string{picked}, launcher.opened)
	assert.Contains(t, out.String(), "Selected: c.mp4")
	active, ok := s.Active()
	assert.True(t, ok)
	assert.Equal(t, picked, active)
}

func TestUnknownStore(t *testing.T) {
	opts := testOptions(t, &recordingLauncher{})
	opts.Store = "redis"
	_, err := execute(t, opts, "scan")
	assert.ErrorContains(t, err, "unknown store")
}

func TestSQLiteStore(t *testing.T) {
	media := mediaDir(t)
	opts := testOptions(t, &recordingLauncher{})
	opts.Store = StoreSQLite
	opts.ConfigPath = filepath.Join(t.TempDir(), "settings.db")

	_, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)

	out, err := execute(t, opts, "scan")
	require.NoError(t, err)
	assert.Contains(t, out, "Files found: 3")
}

func TestShellSession(t *testing.T) {
	media := mediaDir(t)
	launcher := &recordingLauncher{}
	opts := testOptions(t, launcher)
	_, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)

	s, closer, err := opts.newSession()
	require.NoError(t, err)
	defer closer.Close()

	script := strings.Join([]string{
		"open",
		"subdir sub",
		"pick",
		"reveal",
		"delete",
		"scan",
		"ext mp4, .mkv ,mp4",
		"bogus",
		"quit",
		"pick",
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, runShell(s, newBasicLineInput(strings.NewReader(script), nil), &out))
	text := out.String()

	picked := filepath.Join(media, "sub", "c.mp4")
	assert.Contains(t, text, "nothing selected yet")
	assert.Contains(t, text, "Selected: c.mp4")
	assert.Equal(t, []string{picked}, launcher.revealed)
	assert.Contains(t, text, "File 'c.mp4' moved to")
	assert.Contains(t, text, "Files found: 0")
	assert.Contains(t, text, "Extensions: mp4, mkv")
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Empty(t, launcher.opened)

	_, err = os.Stat(picked)
	assert.True(t, os.IsNotExist(err))
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestShellStopsAtEOF(t *testing.T) {
	media := mediaDir(t)
	opts := testOptions(t, &recordingLauncher{})
	_, err := execute(t, opts, "config", "dir", media)
	require.NoError(t, err)

	out, err := execute(t, opts, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "commands:")
}

func TestLookupShellCommand(t *testing.T) {
	for word, want := range map[string]string{"": "pick", "p": "pick", "rm": "delete", "exit": "quit", "show": "reveal", "go": "play"} {
		got, ok := lookupShellCommand(word)
		assert.True(t, ok, word)
		assert.Equal(t, want, got, word)
	}
	_, ok := lookupShellCommand("nope")
	assert.False(t, ok)
}
