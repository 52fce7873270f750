package config_test

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/halcyonfi/verdict/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
				convey.So(cfg.ChunkSize, convey.ShouldEqual, 10)
				convey.So(cfg.MaxBatchRows, convey.ShouldEqual, 10_000)
				convey.So(cfg.ProviderLatencyMinMS, convey.ShouldEqual, 500)
				convey.So(cfg.ProviderLatencyMaxMS, convey.ShouldEqual, 1500)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("VERDICT_ADDR", ":8080")
			_ = os.Setenv("VERDICT_QUEUE_SIZE", "4096")
			_ = os.Setenv("VERDICT_WORKER_COUNT", "16")
			_ = os.Setenv("VERDICT_CHUNK_SIZE", "25")
			_ = os.Setenv("VERDICT_PROVIDER_LATENCY_MIN_MS", "50")
			_ = os.Setenv("VERDICT_PROVIDER_LATENCY_MAX_MS", "100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 4096)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.ChunkSize, convey.ShouldEqual, 25)
				convey.So(cfg.ProviderLatencyMinMS, convey.ShouldEqual, 50)
				convey.So(cfg.ProviderLatencyMaxMS, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
queue_size: 2048
worker_count: 24
chunk_size: 50
max_batch_rows: 5000
redis_addr: "localhost:6379"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VERDICT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 2048)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.ChunkSize, convey.ShouldEqual, 50)
				convey.So(cfg.MaxBatchRows, convey.ShouldEqual, 5000)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
queue_size: 2048
worker_count: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VERDICT_CONFIG", tmpFile)
			_ = os.Setenv("VERDICT_ADDR", ":8080")      // This should override the file
			_ = os.Setenv("VERDICT_WORKER_COUNT", "32") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")         // Overridden by env
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 2048)    // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)       // Overridden by env
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VERDICT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("VERDICT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("VERDICT_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with inverted latency bounds", func() {
			_ = os.Setenv("VERDICT_PROVIDER_LATENCY_MIN_MS", "800")
			_ = os.Setenv("VERDICT_PROVIDER_LATENCY_MAX_MS", "200")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
addr: ":9090"
worker_count: 16
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("VERDICT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")   // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16) // From file
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.ChunkSize, convey.ShouldEqual, 10)
				convey.So(cfg.MaxBatchRows, convey.ShouldEqual, 10_000)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("VERDICT_QUEUE_SIZE", "invalid")
			_ = os.Setenv("VERDICT_WORKER_COUNT", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"VERDICT_CONFIG",
		"VERDICT_ADDR",
		"VERDICT_QUEUE_SIZE",
		"VERDICT_WORKER_COUNT",
		"VERDICT_CHUNK_SIZE",
		"VERDICT_MAX_BATCH_ROWS",
		"VERDICT_PROVIDER_LATENCY_MIN_MS",
		"VERDICT_PROVIDER_LATENCY_MAX_MS",
		"VERDICT_CACHE_SIZE",
		"VERDICT_REDIS_ADDR",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "verdict-config-*.yaml")
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
