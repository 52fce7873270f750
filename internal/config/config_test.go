package config_test

import (
	"runtime"
	"testing"

	"github.com/halcyonfi/verdict/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
			convey.So(cfg.JobQueueSize, convey.ShouldEqual, 1024)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.ChunkSize, convey.ShouldEqual, 10)
			convey.So(cfg.MaxBatchRows, convey.ShouldEqual, 10_000)
			convey.So(cfg.ProviderLatencyMinMS, convey.ShouldEqual, 500)
			convey.So(cfg.ProviderLatencyMaxMS, convey.ShouldEqual, 1500)
			convey.So(cfg.CacheSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.RedisAddr, convey.ShouldBeEmpty)
		})
	})
}
