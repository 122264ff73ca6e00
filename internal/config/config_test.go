package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bashhack/commitbot/internal/errors"
	"github.com/bashhack/commitbot/internal/logger"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.CommitMessages, 10)
	assert.Equal(t, []string{"09:00", "15:30", "21:00"}, cfg.ScheduleTimes)
	assert.Equal(t, "daily", cfg.CommitFrequency)
	assert.True(t, cfg.WeekendActivity)
	assert.False(t, cfg.AutoPush)
	assert.False(t, cfg.HasIdentity())

	cfg.CommitMessages[0] = "changed"
	assert.Equal(t, "📝 Update daily log", DefaultCommitMessages[0], "Default must not share the pools")
}

func TestLoadCreatesMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, created, err := Load(fs, "conf/config.json")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Default(), cfg)

	data, err := afero.ReadFile(fs, "conf/config.json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"commit_messages\": [\n        \"📝 Update daily log\""))

	_, created, err = Load(fs, "conf/config.json")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLoadMergesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.json", []byte(`{
		"commit_frequency": "random",
		"github_username": "octocat",
		"weekend_activity": false,
		"file_types": ["only.md"]
	}`), 0o644))

	cfg, created, err := Load(fs, "config.json")
	require.NoError(t, err)
	assert.False(t, created)

	assert.Equal(t, "random", cfg.CommitFrequency)
	assert.Equal(t, "octocat", cfg.GithubUsername)
	assert.False(t, cfg.WeekendActivity)
	assert.Equal(t, []string{"only.md"}, cfg.FileTypes)

	assert.Equal(t, DefaultCommitMessages, cfg.CommitMessages)
	assert.Equal(t, DefaultScheduleTimes, cfg.ScheduleTimes)
	assert.Equal(t, "", cfg.GithubEmail)
	assert.False(t, cfg.AutoPush)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COMMITBOT_COMMIT_FREQUENCY", "twice_daily")
	t.Setenv("COMMITBOT_WEEKEND_ACTIVITY", "false")
	t.Setenv("COMMITBOT_AUTO_PUSH", "true")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.json", []byte(`{"commit_frequency": "daily"}`), 0o644))

	cfg, _, err := Load(fs, "config.json")
	require.NoError(t, err)
	assert.Equal(t, "twice_daily", cfg.CommitFrequency)
	assert.False(t, cfg.WeekendActivity)
	assert.True(t, cfg.AutoPush)
}

func TestLoadFailures(t *testing.T) {
	tests := map[string]struct {
		content string
		invalid bool
	}{
		"malformed json":      {content: `{"commit_frequency": `},
		"unknown frequency":   {content: `{"commit_frequency": "hourly"}`, invalid: true},
		"bad slot":            {content: `{"schedule_times": ["25:00"]}`, invalid: true},
		"empty messages":      {content: `{"commit_messages": []}`, invalid: true},
		"twice with one slot": {content: `{"commit_frequency": "twice_daily", "schedule_times": ["09:00"]}`, invalid: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "config.json", []byte(tc.content), 0o644))

			_, _, err := Load(fs, "config.json")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConfigLoad))
			assert.Equal(t, tc.invalid, errors.Is(err, errors.ErrInvalidConfiguration))
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("falls back on failure", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "config.json", []byte("not json"), 0o644))

		var stdout, stderr bytes.Buffer
		log := logger.NewWithOutput(false, "", true, &stdout, &stderr)
		log.SetColor(false)

		cfg := LoadOrDefault(fs, "config.json", log)
		assert.Equal(t, Default(), cfg)
		assert.Contains(t, stderr.String(), "Error loading config")
		assert.Contains(t, stdout.String(), "Using built-in defaults")
	})

	t.Run("reports created file", func(t *testing.T) {
		var stdout bytes.Buffer
		log := logger.NewWithOutput(false, "", true, &stdout, &bytes.Buffer{})

		LoadOrDefault(afero.NewMemMapFs(), "config.json", log)
		assert.Contains(t, stdout.String(), "Created default config file: config.json")
	})
}

func TestSaveKeepsOtherKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config.json", []byte(`{
		"commit_messages": ["one", "two"],
		"schedule_times": ["07:15"],
		"commit_frequency": "random"
	}`), 0o644))

	cfg, _, err := Load(fs, "config.json")
	require.NoError(t, err)
	cfg.GithubUsername = "octocat"
	cfg.GithubEmail = "octocat@example.com"
	require.NoError(t, Save(fs, "config.json", cfg))

	reloaded, _, err := Load(fs, "config.json")
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
	assert.True(t, reloaded.HasIdentity())
	assert.Equal(t, []string{"one", "two"}, reloaded.CommitMessages)
	assert.Equal(t, []string{"07:15"}, reloaded.ScheduleTimes)
}

func readRaw(t *testing.T, fs afero.Fs, path string) map[string]any {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	doc := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestSaveIdentity(t *testing.T) {
	t.Run("keeps a document that does not validate", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "config.json", []byte(`{
			"commit_messages": ["mine"],
			"file_types": ["journal.md"],
			"schedule_times": ["9am"],
			"commit_frequency": "twice_daily",
			"extra": 42
		}`), 0o644))
		_, _, err := Load(fs, "config.json")
		require.Error(t, err)

		require.NoError(t, SaveIdentity(fs, "config.json", "octocat", "octocat@example.com"))

		doc := readRaw(t, fs, "config.json")
		assert.Equal(t, []any{"mine"}, doc[KeyCommitMessages])
		assert.Equal(t, []any{"journal.md"}, doc[KeyFileTypes])
		assert.Equal(t, []any{"9am"}, doc[KeyScheduleTimes])
		assert.Equal(t, "twice_daily", doc[KeyCommitFrequency])
		assert.Equal(t, float64(42), doc["extra"])
		assert.Equal(t, "octocat", doc[KeyGithubUsername])
		assert.Equal(t, "octocat@example.com", doc[KeyGithubEmail])
		assert.Equal(t, true, doc[KeyWeekendActivity], "missing keys get defaults")
		assert.Equal(t, false, doc[KeyAutoPush])
	})

	t.Run("never persists env overrides", func(t *testing.T) {
		t.Setenv("COMMITBOT_COMMIT_FREQUENCY", "random")
		t.Setenv("COMMITBOT_AUTO_PUSH", "true")
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "config.json", []byte(`{"commit_frequency": "daily"}`), 0o644))

		cfg, _, err := Load(fs, "config.json")
		require.NoError(t, err)
		require.Equal(t, "random", cfg.CommitFrequency)

		require.NoError(t, SaveIdentity(fs, "config.json", "octocat", ""))

		doc := readRaw(t, fs, "config.json")
		assert.Equal(t, "daily", doc[KeyCommitFrequency])
		assert.Equal(t, false, doc[KeyAutoPush])
	})

	t.Run("empty values keep stored identity", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "config.json", []byte(`{"github_username": "old", "github_email": "old@example.com"}`), 0o644))

		require.NoError(t, SaveIdentity(fs, "config.json", "", "new@example.com"))

		doc := readRaw(t, fs, "config.json")
		assert.Equal(t, "old", doc[KeyGithubUsername])
		assert.Equal(t, "new@example.com", doc[KeyGithubEmail])
	})

	t.Run("missing file gets the defaults", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, SaveIdentity(fs, "conf/config.json", "octocat", "octocat@example.com"))

		cfg, created, err := Load(fs, "conf/config.json")
		require.NoError(t, err)
		assert.False(t, created)

		want := Default()
		want.GithubUsername = "octocat"
		want.GithubEmail = "octocat@example.com"
		assert.Equal(t, want, cfg)
	})

	t.Run("unreadable document is left alone", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "config.json", []byte("{broken"), 0o644))

		err := SaveIdentity(fs, "config.json", "octocat", "octocat@example.com")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrConfigLoad))

		data, err := afero.ReadFile(fs, "config.json")
		require.NoError(t, err)
		assert.Equal(t, "{broken", string(data))
	})
}

func TestSaveFailsOnReadOnlyFs(t *testing.T) {
	err := Save(afero.NewReadOnlyFs(afero.NewMemMapFs()), "config.json", Default())
	var cfgErr *errors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "config", cfgErr.Key)
}

func TestScheduleConfig(t *testing.T) {
	cfg := Default()
	cfg.WeekendActivity = false
	sc := cfg.ScheduleConfig()

	assert.Equal(t, "daily", string(sc.Frequency))
	assert.Equal(t, cfg.ScheduleTimes, sc.Slots)
	assert.False(t, sc.WeekendActivity)
}
