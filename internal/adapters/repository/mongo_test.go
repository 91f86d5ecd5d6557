package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	repository "github.com/gmrcWP/exercise-tracker/internal/adapters/repository"
)

func TestDial(t *testing.T) {
	convey.Convey("Given connection parameters", t, func() {
		convey.Convey("When the URI is malformed", func() {
			client, err := repository.Dial(context.Background(), "not-a-uri")

			convey.Convey("Then dialing should fail with ErrConnect", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, repository.ErrConnect.Error())
				convey.So(client, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the server is unreachable", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			client, err := repository.Dial(ctx, "mongodb://127.0.0.1:1")

			convey.Convey("Then dialing should still hand back a client", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(client, convey.ShouldNotBeNil)

				convey.Convey("And pinging it should fail", func() {
					pingErr := repository.Ping(ctx, client)
					convey.So(pingErr, convey.ShouldNotBeNil)
					convey.So(pingErr.Error(), convey.ShouldContainSubstring, repository.ErrConnect.Error())
				})
			})
		})
	})
}
