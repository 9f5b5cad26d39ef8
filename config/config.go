// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	_ = pflag.String("mode", "all", "What to run: api, worker or all")
	_ = pflag.String("config-path", ".", "Directory containing config.toml")

	validLogLevels     = []string{"debug", "info", "warn", "error", "fatal"}
	validModes         = []string{"api", "worker", "all"}
	validDBDrivers     = []string{"sqlite", "postgres"}
	validSessionStores = []string{"redis", "memory"}
	validQueueDrivers  = []string{"asynq", "memory"}
	validStorageTypes  = []string{"local", "s3"}
)

// Setup parses the command line and loads the configuration. Function will
// return an error if something is critically wrong and the application
// can't run because of that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	return Load()
}

// Load registers env bindings and defaults, reads the optional config.toml
// file and validates the result. It does not touch the command line.
func Load() error {
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(v.GetString("config-path"))
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("host.port", "HOST_PORT", "PORT")
	v.BindEnv("storage.folder_path", "STORAGE_FOLDER_PATH", "FOLDER_PATH")
	v.BindEnv("redis.addr", "REDIS_ADDR")

	//
	// Defaults
	//
	v.SetDefault("mode", "all")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 5000)
	v.SetDefault("host.cors", []string{"http://localhost:5173"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.driver", "redis")
	v.SetDefault("session.ttl", "24h")

	v.SetDefault("queue.driver", "asynq")
	v.SetDefault("queue.workers", 4)
	v.SetDefault("queue.size", 256)
	v.SetDefault("queue.max_retry", 3)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.folder_path", "/tmp/files_manager")

	v.SetDefault("upload.max_size", 50)
	v.SetDefault("security.rate_limit", 0)

	v.SetDefault("mail.port", 587)

	if err := v.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	return validate()
}

func validate() error {
	if !slices.Contains(validModes, v.GetString("mode")) {
		return errors.New("invalid mode provided")
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDBDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if !slices.Contains(validSessionStores, v.GetString("session.driver")) {
		return errors.New("invalid session driver provided")
	}

	if v.GetDuration("session.ttl") <= 0 {
		return errors.New("session.ttl must be a positive duration")
	}

	if !slices.Contains(validQueueDrivers, v.GetString("queue.driver")) {
		return errors.New("invalid queue driver provided")
	}

	if v.GetString("mode") == "worker" && v.GetString("queue.driver") == "memory" {
		return errors.New("worker mode requires the asynq queue driver")
	}

	if v.GetInt("queue.workers") <= 0 {
		return errors.New("queue.workers must be bigger than 0")
	}

	if !slices.Contains(validStorageTypes, v.GetString("storage.type")) {
		return errors.New("invalid storage type provided")
	}

	switch v.GetString("storage.type") {
	case "s3":
		if v.GetString("storage.s3.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
	case "local":
		if v.GetString("storage.folder_path") == "" {
			return errors.New("storage.folder_path can't be empty")
		}
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetString("mail.host") != "" && v.GetString("mail.sender_address") == "" {
		return errors.New("mail.sender_address is required when mail.host is set")
	}

	// Megabytes in config, bytes at runtime
	v.Set("upload.max_size_bytes", v.GetInt64("upload.max_size")<<20)
	return nil
}
