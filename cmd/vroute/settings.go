package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vango-dev/vroute/internal/config"
	"github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

// Setting keys. Each is also read from VROUTE_<KEY>, with '.' and '-'
// replaced by '_'.
const (
	keyConfig      = "config"
	keyLogLevel    = "log-level"
	keyS3Region    = "s3.region"
	keyS3Endpoint  = "s3.endpoint"
	keyS3AccessKey = "s3.access-key-id"
	keyS3Secret    = "s3.secret-access-key"
	keyS3PathStyle = "s3.path-style"
)

func bindSettings(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.StringP(keyConfig, "c", "", "route configuration file or s3://bucket/key (default: routes.{json,yaml,yml,toml} in the working directory)")
	flags.StringP(keyLogLevel, "l", "warn", "log level (debug, info, warn, error)")
	flags.String(keyS3Region, "us-east-1", "S3 region")
	flags.String(keyS3Endpoint, "", "S3 endpoint override for S3-compatible stores")
	flags.Bool(keyS3PathStyle, false, "use path-style S3 addressing")

	for _, key := range []string{keyConfig, keyLogLevel, keyS3Region, keyS3Endpoint, keyS3PathStyle} {
		v.BindPFlag(key, flags.Lookup(key))
	}

	v.SetEnvPrefix("VROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// Credentials are environment-only.
	v.BindEnv(keyS3AccessKey)
	v.BindEnv(keyS3Secret)
}

// newLogger builds the CLI logger from the log-level setting.
func newLogger(cmd *cobra.Command, v *viper.Viper) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// configLocation returns the configured location, falling back to a
// default file in the working directory.
func configLocation(v *viper.Viper) (string, error) {
	if loc := v.GetString(keyConfig); loc != "" {
		return loc, nil
	}
	return config.Find(".")
}

// loadConfig loads the route configuration named by the settings.
func loadConfig(ctx context.Context, v *viper.Viper) (router.Config, string, error) {
	loc, err := configLocation(v)
	if err != nil {
		return router.Config{}, "", err
	}

	loader := config.Loader{}
	if config.IsS3(loc) {
		loader.S3 = config.NewS3Client(config.S3Options{
			Region:          v.GetString(keyS3Region),
			Endpoint:        v.GetString(keyS3Endpoint),
			AccessKeyID:     v.GetString(keyS3AccessKey),
			SecretAccessKey: v.GetString(keyS3Secret),
			PathStyle:       v.GetBool(keyS3PathStyle),
		})
	}

	cfg, err := loader.Load(ctx, loc)
	return cfg, loc, err
}

// buildRouter loads the configuration and constructs a router from it.
func buildRouter(cmd *cobra.Command, v *viper.Viper, opts ...router.Option) (*router.Router, error) {
	cfg, loc, err := loadConfig(cmd.Context(), v)
	if err != nil {
		return nil, err
	}
	opts = append([]router.Option{router.WithLogger(newLogger(cmd, v))}, opts...)
	r, err := router.New(cfg, opts...)
	if err != nil {
		if re, ok := err.(*errors.RouterError); ok && re.Suggestion == "" {
			re.Suggestion = "Run 'vroute check -c " + loc + "' for a full report"
		}
		return nil, err
	}
	return r, nil
}
