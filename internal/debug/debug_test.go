package debug

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestApplyEnv(t *testing.T) {
	t.Cleanup(func() { applyEnv("all") })

	applyEnv("session, fs")
	assert.True(t, IsEnabled(SESSION))
	assert.True(t, IsEnabled(FS))
	assert.False(t, IsEnabled(STORE))

	applyEnv("none")
	assert.Empty(t, ListEnabled())

	applyEnv("all")
	assert.True(t, IsEnabled(FS_WALK))
}

func TestLogRespectsCategory(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		SetVerbose(false)
		Enable(STORE)
	})

	Disable(STORE)
	Log(STORE, "hidden %d", 1)
	assert.Empty(t, buf.String())

	Enable(STORE)
	Log(STORE, "shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "cat=STORE")
}

func TestWarnIgnoresCategory(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	Disable(FS)
	t.Cleanup(func() { Enable(FS) })

	Warn(FS, "cannot list %s", "/nope")
	assert.Contains(t, buf.String(), "cannot list /nope")
}

func TestApplyEnvLevel(t *testing.T) {
	t.Setenv("ROULETTE_LOG_LEVEL", "warn")
	t.Cleanup(func() { SetVerbose(false) })

	ApplyEnv()
	assert.Equal(t, logrus.WarnLevel, Logger().GetLevel())
}
