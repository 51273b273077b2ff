package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/wcarank/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("WCARANK_ADDR", ":8080")
			_ = os.Setenv("WCARANK_RESULTS_SOURCE", "/data/results.tsv.gz")
			_ = os.Setenv("WCARANK_RANKS_SOURCE", "/data/ranks.tsv.gz")
			_ = os.Setenv("WCARANK_FETCH_TIMEOUT_MS", "5000")
			_ = os.Setenv("WCARANK_CACHE_TTL_SECONDS", "0")
			_ = os.Setenv("WCARANK_LOG_LEVEL", "debug")
			_ = os.Setenv("WCARANK_CORS_ORIGINS", "https://a.example,https://b.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ResultsSource, convey.ShouldEqual, "/data/results.tsv.gz")
				convey.So(cfg.RanksSource, convey.ShouldEqual, "/data/ranks.tsv.gz")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 5000)
				convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 0)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.AllowedOrigins(), convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
# local mirror
addr: ":9090"
results_source: ./testdata/results.tsv
ranks_source: ./testdata/ranks.tsv
cache_ttl_seconds: 60
log_format: json
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.ResultsSource, convey.ShouldEqual, "./testdata/results.tsv")
				convey.So(cfg.RanksSource, convey.ShouldEqual, "./testdata/ranks.tsv")
				convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 60)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 60_000)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
cache_ttl_seconds: 60
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)
			_ = os.Setenv("WCARANK_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv(config.EnvConfig, tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv(config.EnvConfig, "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("WCARANK_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("WCARANK_FETCH_TIMEOUT_MS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative cache TTL", func() {
			_ = os.Setenv("WCARANK_CACHE_TTL_SECONDS", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation rejects it", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		config.EnvConfig,
		"WCARANK_ADDR",
		"WCARANK_LOG_LEVEL",
		"WCARANK_LOG_FORMAT",
		"WCARANK_RESULTS_SOURCE",
		"WCARANK_RANKS_SOURCE",
		"WCARANK_FETCH_TIMEOUT_MS",
		"WCARANK_CACHE_TTL_SECONDS",
		"WCARANK_SHUTDOWN_TIMEOUT_MS",
		"WCARANK_CORS_ORIGINS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "wcarank-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
