package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/gmrcWP/exercise-tracker/internal/adapters/http/api"
	"github.com/gmrcWP/exercise-tracker/internal/adapters/repository"
	service "github.com/gmrcWP/exercise-tracker/internal/app"
	"github.com/gmrcWP/exercise-tracker/internal/config"
	"github.com/gmrcWP/exercise-tracker/pkg/logger"
	"github.com/gmrcWP/exercise-tracker/pkg/metrics"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("TRACKER_ADDR", ":8080")
			_ = os.Setenv("TRACKER_STORE", "memory")
			defer func() {
				_ = os.Unsetenv("TRACKER_ADDR")
				_ = os.Unsetenv("TRACKER_STORE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Store, convey.ShouldEqual, config.StoreMemory)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := service.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := service.New(
					service.WithStore(repository.NewMemoryStore()),
					service.WithStoreKind(config.StoreMemory),
					service.WithDefaultLogLimit(25),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := service.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestOpenStore(t *testing.T) {
	convey.Convey("Given store configuration", t, func() {
		convey.Convey("When the memory backend is configured", func() {
			cfg := config.New()
			cfg.Store = config.StoreMemory

			store, err := openStore(context.Background(), cfg)

			convey.Convey("Then a memory store should be returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldNotBeNil)
				convey.So(store.Close(context.Background()), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the mongo backend is unreachable", func() {
			convey.So(logger.Init(), convey.ShouldBeNil)
			cfg := config.New()
			cfg.Store = config.StoreMongo
			cfg.MongoURI = "mongodb://127.0.0.1:1"

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			store, err := openStore(ctx, cfg)

			convey.Convey("Then startup still gets a store handle", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(store, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the mongo URI is malformed", func() {
			convey.So(logger.Init(), convey.ShouldBeNil)
			cfg := config.New()
			cfg.Store = config.StoreMongo
			cfg.MongoURI = "not-a-uri"

			store, err := openStore(context.Background(), cfg)

			convey.Convey("Then dialing should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(store, convey.ShouldBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop with its context", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer cancel()

				convey.So(func() {
					startSystemMetricsUpdater(ctx)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(func() {
					updateSystemMetrics()
				}, convey.ShouldNotPanic)
			})
		})
	})
}
