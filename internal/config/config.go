package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/bashhack/commitbot/internal/errors"
	"github.com/bashhack/commitbot/internal/logger"
	"github.com/bashhack/commitbot/internal/schedule"
)

// configuration file keys
const (
	KeyCommitMessages  = "commit_messages"
	KeyFileTypes       = "file_types"
	KeyScheduleTimes   = "schedule_times"
	KeyWeekendActivity = "weekend_activity"
	KeyCommitFrequency = "commit_frequency"
	KeyGithubUsername  = "github_username"
	KeyGithubEmail     = "github_email"
	KeyAutoPush        = "auto_push"
)

// EnvPrefix prefixes environment overrides, e.g. COMMITBOT_COMMIT_FREQUENCY
const EnvPrefix = "COMMITBOT"

// envKeys are the scalar keys that may be overridden from the environment
var envKeys = []string{KeyWeekendActivity, KeyCommitFrequency, KeyGithubUsername, KeyGithubEmail, KeyAutoPush}

// DefaultCommitMessages is the bot's message pool
var DefaultCommitMessages = []string{
	"📝 Update daily log",
	"🔧 Minor improvements",
	"📊 Update statistics",
	"🎯 Daily progress",
	"✨ Small enhancements",
	"📈 Performance tweaks",
	"🔄 Regular maintenance",
	"📋 Update documentation",
	"🎨 Code cleanup",
	"🚀 Optimize workflow",
}

// SimpleCommitMessages is the message pool of the one-shot quickcommit tool
var SimpleCommitMessages = []string{
	"📝 Daily update",
	"🔧 Minor improvements",
	"📊 Update progress",
	"✨ Small enhancements",
	"📈 Performance tweaks",
	"🔄 Regular maintenance",
	"📋 Documentation update",
	"🎨 Code cleanup",
	"🚀 Workflow optimization",
	"💡 New insights",
}

// DefaultFileTypes is the pool of files the bot rewrites
var DefaultFileTypes = []string{"daily_log.md", "progress.txt", "notes.md", "stats.json", "activity.log"}

// DefaultScheduleTimes are the candidate daily slots
var DefaultScheduleTimes = []string{"09:00", "15:30", "21:00"}

// Config is the persisted bot configuration
type Config struct {
	CommitMessages  []string `json:"commit_messages" mapstructure:"commit_messages" jsonschema:"minItems=1,description=Pool of commit messages picked at random"`
	FileTypes       []string `json:"file_types" mapstructure:"file_types" jsonschema:"minItems=1,description=Pool of file names rewritten by each commit"`
	ScheduleTimes   []string `json:"schedule_times" mapstructure:"schedule_times" jsonschema:"description=Candidate HH:MM slots for scheduled commits"`
	WeekendActivity bool     `json:"weekend_activity" mapstructure:"weekend_activity" jsonschema:"default=true,description=Commit on Saturday and Sunday"`
	CommitFrequency string   `json:"commit_frequency" mapstructure:"commit_frequency" jsonschema:"enum=daily,enum=twice_daily,enum=random,default=daily,description=How many slots are registered per day"`
	GithubUsername  string   `json:"github_username" mapstructure:"github_username" jsonschema:"description=Value for git config user.name"`
	GithubEmail     string   `json:"github_email" mapstructure:"github_email" jsonschema:"description=Value for git config user.email"`
	AutoPush        bool     `json:"auto_push" mapstructure:"auto_push" jsonschema:"default=false,description=Push after every commit without asking"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		CommitMessages:  clone(DefaultCommitMessages),
		FileTypes:       clone(DefaultFileTypes),
		ScheduleTimes:   clone(DefaultScheduleTimes),
		WeekendActivity: true,
		CommitFrequency: string(schedule.Daily),
	}
}

// Validate checks the pools, the slots and the frequency
func (c *Config) Validate() error {
	if len(c.CommitMessages) == 0 {
		return errors.NewConfigError(KeyCommitMessages, nil, errors.Wrap(errors.ErrInvalidConfiguration, "message pool is empty"))
	}
	if len(c.FileTypes) == 0 {
		return errors.NewConfigError(KeyFileTypes, nil, errors.Wrap(errors.ErrInvalidConfiguration, "file pool is empty"))
	}

	freq := schedule.Frequency(c.CommitFrequency)
	if !freq.Valid() {
		return errors.NewConfigError(KeyCommitFrequency, c.CommitFrequency,
			errors.Wrapf(errors.ErrInvalidConfiguration, "must be one of %v", schedule.Frequencies))
	}

	slots, err := schedule.ParseSlots(c.ScheduleTimes)
	if err != nil {
		return errors.NewConfigError(KeyScheduleTimes, c.ScheduleTimes, err)
	}
	if len(slots) < freq.MinSlots() {
		return errors.NewConfigError(KeyScheduleTimes, c.ScheduleTimes,
			errors.Wrapf(errors.ErrInvalidConfiguration, "%s needs at least %d distinct slots", freq, freq.MinSlots()))
	}

	return nil
}

// ScheduleConfig converts the record into scheduler settings
func (c *Config) ScheduleConfig() schedule.Config {
	return schedule.Config{
		Frequency:       schedule.Frequency(c.CommitFrequency),
		Slots:           c.ScheduleTimes,
		WeekendActivity: c.WeekendActivity,
	}
}

// HasIdentity reports whether both identity fields are set
func (c *Config) HasIdentity() bool {
	return c.GithubUsername != "" && c.GithubEmail != ""
}

// Load reads path from fs. A missing file is created with the defaults and
// created is true. Keys absent from the file take their defaults; keys
// present are kept. Scalar keys can be overridden with COMMITBOT_* env.
func Load(fs afero.Fs, path string) (cfg *Config, created bool, err error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, false, errors.NewConfigError("config", path, errors.Join(errors.ErrConfigLoad, err))
	}
	if !exists {
		if err := Save(fs, path, Default()); err != nil {
			return nil, false, err
		}
		created = true
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, created, errors.NewConfigError(key, nil, errors.Join(errors.ErrConfigLoad, err))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, created, errors.NewConfigError("config", path, errors.Join(errors.ErrConfigLoad, err))
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, created, errors.NewConfigError("config", path, errors.Join(errors.ErrConfigLoad, err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, created, errors.Join(errors.ErrConfigLoad, err)
	}

	return cfg, created, nil
}

// LoadOrDefault is Load for callers that must keep going: a load failure is
// reported and the built-in defaults are returned instead.
func LoadOrDefault(fs afero.Fs, path string, log logger.Logger) *Config {
	cfg, created, err := Load(fs, path)
	if err != nil {
		log.Error("Error loading config: %v", err)
		log.WarningToUser("Using built-in defaults")
		return Default()
	}
	if created {
		log.StatusMessage("Created default config file: %s", path)
	}
	log.Info("loaded config from %s (frequency=%s, %d slots)", path, cfg.CommitFrequency, len(cfg.ScheduleTimes))
	return cfg
}

// Save writes cfg to path as 4-space indented JSON
func Save(fs afero.Fs, path string, cfg *Config) error {
	return write(fs, path, cfg)
}

// SaveIdentity stores the git identity in the file at path. The rest of the
// document is written back as read, whether or not it validates; keys absent
// from it get their defaults. Empty values leave the stored ones alone and
// environment overrides are never persisted.
func SaveIdentity(fs afero.Fs, path, username, email string) error {
	doc, err := readDocument(fs, path)
	if err != nil {
		return err
	}

	for key, value := range defaultDocument() {
		if _, ok := doc[key]; !ok {
			doc[key] = value
		}
	}
	if username != "" {
		doc[KeyGithubUsername] = username
	}
	if email != "" {
		doc[KeyGithubEmail] = email
	}

	return write(fs, path, doc)
}

// readDocument decodes the raw JSON object at path, empty when the file is missing
func readDocument(fs afero.Fs, path string) (map[string]any, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, errors.NewConfigError("config", path, errors.Join(errors.ErrConfigLoad, err))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	doc := map[string]any{}
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewConfigError("config", path, errors.Join(errors.ErrConfigLoad, err))
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func defaultDocument() map[string]any {
	d := Default()
	return map[string]any{
		KeyCommitMessages:  d.CommitMessages,
		KeyFileTypes:       d.FileTypes,
		KeyScheduleTimes:   d.ScheduleTimes,
		KeyWeekendActivity: d.WeekendActivity,
		KeyCommitFrequency: d.CommitFrequency,
		KeyGithubUsername:  d.GithubUsername,
		KeyGithubEmail:     d.GithubEmail,
		KeyAutoPush:        d.AutoPush,
	}
}

func write(fs afero.Fs, path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.NewConfigError("config", path, errors.Wrap(err, "failed to encode config"))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return errors.NewConfigError("config", path, errors.Wrap(err, "failed to create config directory"))
		}
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return errors.NewConfigError("config", path, errors.Wrap(err, "failed to write config"))
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault(KeyCommitMessages, d.CommitMessages)
	v.SetDefault(KeyFileTypes, d.FileTypes)
	v.SetDefault(KeyScheduleTimes, d.ScheduleTimes)
	v.SetDefault(KeyWeekendActivity, d.WeekendActivity)
	v.SetDefault(KeyCommitFrequency, d.CommitFrequency)
	v.SetDefault(KeyGithubUsername, d.GithubUsername)
	v.SetDefault(KeyGithubEmail, d.GithubEmail)
	v.SetDefault(KeyAutoPush, d.AutoPush)
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
