package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	env := newTestEnv(t)

	r := env.run("config")
	env.contains(r.stdout, "validate.encoding_lines: 51")
	env.contains(r.stdout, "log.level: info")
	env.contains(r.stdout, "tweets.timezone: Europe/Copenhagen")

	r = env.run("config", "validate.encoding_lines", "200")
	env.contains(r.stdout, "validate.encoding_lines = 200 (global)")
	assert.FileExists(t, filepath.Join(env.home, ".dagw", "config.yaml"))

	r = env.run("config", "validate.encoding_lines")
	assert.Equal(t, "200\n", r.stdout)

	t.Run("local scope", func(t *testing.T) {
		r := env.run("config", "log.level", "warn", "--local")
		env.contains(r.stdout, "(local)")
		assert.FileExists(t, filepath.Join(env.dir, ".dagw", "config.yaml"))

		// The local file now shadows the global one.
		r = env.run("config", "validate.encoding_lines")
		assert.Equal(t, "51\n", r.stdout)
		require.NoError(t, os.RemoveAll(filepath.Join(env.dir, ".dagw")))
	})

	invalid := []struct {
		name string
		args []string
		want string
	}{
		{"unknown key", []string{"config", "validate.nope"}, "unknown config key"},
		{"bad bool", []string{"config", "validate.check_encoding", "maybe"}, "invalid config value"},
		{"lines out of range", []string{"config", "validate.encoding_lines", "0"}, "invalid config value"},
		{"bad level", []string{"config", "log.level", "loud"}, "invalid config value"},
		{"bad zone", []string{"config", "tweets.timezone", "Mars/Olympus"}, "invalid config value"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			r := env.exec(tc.args...)
			assert.Equal(t, ExitFailed, r.code)
			env.contains(r.stderr, "Error:")
			env.contains(r.stderr, tc.want)
		})
	}
}

func TestConfig_LogLevel(t *testing.T) {
	env := newTestEnv(t)
	dir := env.validSection("foo")

	env.run("config", "log.level", "warn")
	r := env.run("validate", dir)
	assert.NotContains(t, r.stderr, "level=INFO")

	// The flag wins over config.
	r = env.run("validate", dir, "--log-level", "debug")
	env.contains(r.stderr, "msg=DONE")
}

func TestConfig_Broken(t *testing.T) {
	env := newTestEnv(t)
	cfgDir := filepath.Join(env.home, ".dagw")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("validate: [\n"), 0644))

	r := env.exec("validate", env.validSection("foo"))
	assert.Equal(t, ExitFailed, r.code)
	env.contains(r.stderr, "Error:")

	// Commands that need no config still run.
	r = env.run("version")
	env.contains(r.stderr, "warning:")
	env.contains(r.stdout, "Build Tag")
}

func TestGuide(t *testing.T) {
	env := newTestEnv(t)

	r := env.run("guide")
	env.contains(r.stdout, "# dagw")

	for _, topic := range []string{"format", "tweets"} {
		r := env.run("guide", topic)
		assert.NotEmpty(t, r.stdout, topic)
	}

	r = env.exec("guide", "nope")
	assert.Equal(t, ExitUsage, r.code)
	env.contains(r.stderr, `guide "nope" not found. Available: format, tweets`)
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	r := env.run("version")
	env.contains(r.stdout, "Build Tag")
}
