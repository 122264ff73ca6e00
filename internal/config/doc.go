// Package config holds commitbot's persisted configuration and its
// command-line options.
//
// The configuration is a JSON document read through viper over an afero
// filesystem. Keys missing from the file take their built-in defaults and
// keys that are present are used unchanged; the scalar keys can also be set
// from COMMITBOT_* environment variables. A file that cannot be read or
// does not validate is a load failure, and LoadOrDefault turns it into the
// built-in defaults so the bot keeps running.
//
// Options is the go-flags description of the commitbot command line.
package config
