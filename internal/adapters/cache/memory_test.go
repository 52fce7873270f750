package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/halcyonfi/verdict/internal/adapters/cache"
	"github.com/smartystreets/goconvey/convey"
)

func TestInMemoryCache(t *testing.T) {
	convey.Convey("Given an in-memory cache", t, func() {
		ctx := context.Background()

		convey.Convey("When storing and reading values", func() {
			c := cache.NewInMemoryCache()

			convey.So(c.Set(ctx, "a", "1"), convey.ShouldBeNil)
			convey.So(c.Set(ctx, "b", "2"), convey.ShouldBeNil)

			convey.Convey("Then stored values should be retrievable", func() {
				v, ok := c.Get(ctx, "a")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, "1")
				convey.So(c.Size(), convey.ShouldEqual, 2)
			})

			convey.Convey("Then missing keys should report absence", func() {
				_, ok := c.Get(ctx, "missing")
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When overwriting an existing key", func() {
			c := cache.NewInMemoryCache()
			_ = c.Set(ctx, "a", "1")
			_ = c.Set(ctx, "a", "updated")

			convey.Convey("Then the value should update without growing the cache", func() {
				v, ok := c.Get(ctx, "a")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, "updated")
				convey.So(c.Size(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the bounded cache fills up", func() {
			c := cache.NewInMemoryCache(cache.WithMaxSize(3))
			for i := 0; i < 5; i++ {
				_ = c.Set(ctx, fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i))
			}

			convey.Convey("Then the oldest entries should be evicted", func() {
				convey.So(c.Size(), convey.ShouldEqual, 3)
				_, ok := c.Get(ctx, "k0")
				convey.So(ok, convey.ShouldBeFalse)
				_, ok = c.Get(ctx, "k1")
				convey.So(ok, convey.ShouldBeFalse)

				v, ok := c.Get(ctx, "k4")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(v, convey.ShouldEqual, "v4")
			})
		})

		convey.Convey("When the cache is unbounded", func() {
			c := cache.NewInMemoryCache(cache.WithMaxSize(0))
			for i := 0; i < 100; i++ {
				_ = c.Set(ctx, fmt.Sprintf("k%d", i), "v")
			}

			convey.Convey("Then nothing should be evicted", func() {
				convey.So(c.Size(), convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When accessed concurrently", func() {
			c := cache.NewInMemoryCache(cache.WithMaxSize(64))
			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						key := fmt.Sprintf("k%d", i%32)
						_ = c.Set(ctx, key, "v")
						_, _ = c.Get(ctx, key)
					}
				}(g)
			}
			wg.Wait()

			convey.Convey("Then the cache should stay within its bound", func() {
				convey.So(c.Size(), convey.ShouldBeLessThanOrEqualTo, 64)
			})
		})
	})
}
