package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	repository "github.com/gmrcWP/exercise-tracker/internal/adapters/repository"
	service "github.com/gmrcWP/exercise-tracker/internal/app"
	"github.com/gmrcWP/exercise-tracker/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// failingStore returns a fixed error from every operation.
type failingStore struct {
	err error
}

func (f *failingStore) InsertUser(context.Context, string) (model.User, error) {
	return model.User{}, f.err
}

func (f *failingStore) ListUsers(context.Context) ([]model.User, error) {
	return nil, f.err
}

func (f *failingStore) FindUser(context.Context, string) (model.User, error) {
	return model.User{}, f.err
}

func (f *failingStore) InsertExercise(context.Context, model.Exercise) (model.Exercise, error) {
	return model.Exercise{}, f.err
}

func (f *failingStore) FindExercises(context.Context, string, model.LogFilter) ([]model.Exercise, error) {
	return nil, f.err
}

func (f *failingStore) CountUsers(context.Context) (int64, error)     { return 0, f.err }
func (f *failingStore) CountExercises(context.Context) (int64, error) { return 0, f.err }
func (f *failingStore) Close(context.Context) error                   { return nil }

func fixedClock(s string) func() time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return d }
}

func TestCreateUser(t *testing.T) {
	Convey("Given a service on a memory store", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(repository.NewMemoryStore()))

		Convey("When creating a user with a username", func() {
			res, err := svc.CreateUser(ctx, "fcc_test")

			Convey("Then it should return the username and a fresh id", func() {
				So(err, ShouldBeNil)
				So(res.Username, ShouldEqual, "fcc_test")
				So(res.ID, ShouldNotBeEmpty)
			})

			Convey("And a second user should get a different id", func() {
				res2, err := svc.CreateUser(ctx, "fcc_test")
				So(err, ShouldBeNil)
				So(res2.ID, ShouldNotEqual, res.ID)
			})
		})

		Convey("When creating a user with an empty username", func() {
			_, err := svc.CreateUser(ctx, "")

			Convey("Then it should return a validation error", func() {
				So(errors.Is(err, service.ErrEmptyUsername), ShouldBeTrue)
				So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
			})

			Convey("And nothing should be persisted", func() {
				users, err := svc.ListUsers(ctx)
				So(err, ShouldBeNil)
				So(len(users), ShouldEqual, 0)
			})
		})

		Convey("When creating a user with a whitespace-only username", func() {
			_, err := svc.CreateUser(ctx, "   ")

			Convey("Then it should return a validation error", func() {
				So(errors.Is(err, service.ErrEmptyUsername), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service on a failing store", t, func() {
		svc := service.New(service.WithStore(&failingStore{err: errors.New("boom")}))

		Convey("When creating a user", func() {
			_, err := svc.CreateUser(context.Background(), "x")

			Convey("Then the store error should surface wrapped", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, service.ErrValidation), ShouldBeFalse)
			})
		})
	})
}

func TestListUsers(t *testing.T) {
	Convey("Given a service on a memory store", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(repository.NewMemoryStore()))

		Convey("When no users exist", func() {
			users, err := svc.ListUsers(ctx)

			Convey("Then it should return an empty sequence", func() {
				So(err, ShouldBeNil)
				So(users, ShouldNotBeNil)
				So(len(users), ShouldEqual, 0)
			})
		})

		Convey("When several users exist", func() {
			for _, name := range []string{"a", "b", "c"} {
				_, err := svc.CreateUser(ctx, name)
				So(err, ShouldBeNil)
			}

			users, err := svc.ListUsers(ctx)

			Convey("Then all should return in creation order", func() {
				So(err, ShouldBeNil)
				So(len(users), ShouldEqual, 3)
				So(users[0].Username, ShouldEqual, "a")
				So(users[2].Username, ShouldEqual, "c")
			})
		})
	})
}

func TestAddExercise(t *testing.T) {
	Convey("Given a service with a registered user", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithStore(repository.NewMemoryStore()),
			service.WithClock(fixedClock("2024-05-20")),
		)
		user, err := svc.CreateUser(ctx, "fcc_test")
		So(err, ShouldBeNil)

		Convey("When adding a valid exercise with a date", func() {
			res, err := svc.AddExercise(ctx, user.ID, "test run", "30", "2023-01-01")

			Convey("Then the response should carry the denormalized username", func() {
				So(err, ShouldBeNil)
				So(res.Username, ShouldEqual, "fcc_test")
			})

			Convey("And the duration should be coerced to an integer", func() {
				So(res.Duration, ShouldEqual, 30)
			})

			Convey("And the date should render in calendar form", func() {
				So(res.Date, ShouldEqual, "Sun Jan 01 2023")
			})

			Convey("And the id field should carry the parent user's id", func() {
				So(res.ID, ShouldEqual, user.ID)
			})
		})

		Convey("When adding an exercise without a date", func() {
			res, err := svc.AddExercise(ctx, user.ID, "test run", "30", "")

			Convey("Then today's date should be used", func() {
				So(err, ShouldBeNil)
				So(res.Date, ShouldEqual, "Mon May 20 2024")
			})
		})

		Convey("When adding a dateless exercise just after local midnight east of UTC", func() {
			east := time.FixedZone("UTC+3", 3*60*60)
			eastSvc := service.New(
				service.WithStore(repository.NewMemoryStore()),
				service.WithClock(func() time.Time { return time.Date(2024, 5, 21, 1, 30, 0, 0, east) }),
			)
			eastUser, err := eastSvc.CreateUser(ctx, "fcc_test")
			So(err, ShouldBeNil)

			res, err := eastSvc.AddExercise(ctx, eastUser.ID, "test run", "30", "")

			Convey("Then the entry lands on the UTC calendar day", func() {
				So(err, ShouldBeNil)
				So(res.Date, ShouldEqual, "Mon May 20 2024")
			})
		})

		Convey("When adding an exercise with an unparseable date", func() {
			res, err := svc.AddExercise(ctx, user.ID, "test run", "30", "not-a-date")

			Convey("Then today's date should be used", func() {
				So(err, ShouldBeNil)
				So(res.Date, ShouldEqual, "Mon May 20 2024")
			})
		})

		Convey("When the user id is unknown", func() {
			_, err := svc.AddExercise(ctx, "64f000000000000000000000", "test run", "30", "")

			Convey("Then it should return ErrUserNotFound", func() {
				So(errors.Is(err, service.ErrUserNotFound), ShouldBeTrue)
			})

			Convey("And no exercise should be persisted", func() {
				logs, err := svc.Logs(ctx, user.ID, "", "", "")
				So(err, ShouldBeNil)
				So(logs.Count, ShouldEqual, 0)
			})
		})

		Convey("When the description is empty", func() {
			_, err := svc.AddExercise(ctx, user.ID, "", "30", "")

			Convey("Then it should return a validation error", func() {
				So(errors.Is(err, service.ErrEmptyDescription), ShouldBeTrue)
				So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When the duration is not numeric", func() {
			_, err := svc.AddExercise(ctx, user.ID, "run", "fast", "")

			Convey("Then it should return a validation error", func() {
				So(errors.Is(err, service.ErrBadDuration), ShouldBeTrue)
			})
		})

		Convey("When the duration is negative", func() {
			_, err := svc.AddExercise(ctx, user.ID, "run", "-5", "")

			Convey("Then it should return a validation error", func() {
				So(errors.Is(err, service.ErrBadDuration), ShouldBeTrue)
			})
		})
	})
}

func TestLogs(t *testing.T) {
	Convey("Given a service with a user and exercises", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(repository.NewMemoryStore()))
		user, err := svc.CreateUser(ctx, "fcc_test")
		So(err, ShouldBeNil)

		add := func(desc, date string) {
			_, err := svc.AddExercise(ctx, user.ID, desc, "30", date)
			So(err, ShouldBeNil)
		}

		Convey("When fetching logs for a single exercise", func() {
			add("test run", "2023-01-01")

			res, err := svc.Logs(ctx, user.ID, "", "", "")

			Convey("Then the envelope should match the contract", func() {
				So(err, ShouldBeNil)
				So(res.Username, ShouldEqual, "fcc_test")
				So(res.ID, ShouldEqual, user.ID)
				So(res.Count, ShouldEqual, 1)
				So(len(res.Log), ShouldEqual, 1)
				So(res.Log[0].Description, ShouldEqual, "test run")
				So(res.Log[0].Duration, ShouldEqual, 30)
				So(res.Log[0].Date, ShouldEqual, "Sun Jan 01 2023")
			})
		})

		Convey("When more exercises exist than the default limit", func() {
			for i := 0; i < 15; i++ {
				add(fmt.Sprintf("session %d", i), "2023-02-01")
			}

			res, err := svc.Logs(ctx, user.ID, "", "", "")

			Convey("Then at most 10 entries should return and count should match", func() {
				So(err, ShouldBeNil)
				So(res.Count, ShouldEqual, 10)
				So(len(res.Log), ShouldEqual, 10)
			})
		})

		Convey("When a limit is supplied", func() {
			for i := 0; i < 5; i++ {
				add(fmt.Sprintf("session %d", i), "2023-02-01")
			}

			res, err := svc.Logs(ctx, user.ID, "", "", "3")

			Convey("Then the limit should cap the entries", func() {
				So(err, ShouldBeNil)
				So(res.Count, ShouldEqual, 3)
			})
		})

		Convey("When the limit is unparseable", func() {
			for i := 0; i < 12; i++ {
				add(fmt.Sprintf("session %d", i), "2023-02-01")
			}

			res, err := svc.Logs(ctx, user.ID, "", "", "many")

			Convey("Then the default limit should apply", func() {
				So(err, ShouldBeNil)
				So(res.Count, ShouldEqual, 10)
			})
		})

		Convey("When date bounds are supplied", func() {
			add("before", "2022-12-31")
			add("on-from", "2023-01-01")
			add("inside", "2023-01-15")
			add("on-to", "2023-01-31")
			add("after", "2023-02-01")

			res, err := svc.Logs(ctx, user.ID, "2023-01-01", "2023-01-31", "")

			Convey("Then only entries within the inclusive range should return", func() {
				So(err, ShouldBeNil)
				So(res.Count, ShouldEqual, 3)
				So(res.Log[0].Description, ShouldEqual, "on-from")
				So(res.Log[2].Description, ShouldEqual, "on-to")
			})
		})

		Convey("When the range matches nothing", func() {
			add("lonely", "2023-06-01")

			res, err := svc.Logs(ctx, user.ID, "2024-01-01", "2024-12-31", "")

			Convey("Then an empty log should return, not an error", func() {
				So(err, ShouldBeNil)
				So(res.Count, ShouldEqual, 0)
				So(res.Log, ShouldNotBeNil)
				So(len(res.Log), ShouldEqual, 0)
			})
		})

		Convey("When the user id is unknown", func() {
			_, err := svc.Logs(ctx, "missing", "", "", "")

			Convey("Then it should return ErrUserNotFound", func() {
				So(errors.Is(err, service.ErrUserNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestGetStats(t *testing.T) {
	Convey("Given a service with some data", t, func() {
		ctx := context.Background()
		svc := service.New(
			service.WithStore(repository.NewMemoryStore()),
			service.WithStoreKind("memory"),
			service.WithDefaultLogLimit(10),
		)
		user, err := svc.CreateUser(ctx, "tracker")
		So(err, ShouldBeNil)
		_, err = svc.AddExercise(ctx, user.ID, "row", "15", "")
		So(err, ShouldBeNil)

		Convey("When fetching stats", func() {
			stats := svc.GetStats(ctx)

			Convey("Then counts and configuration should be reported", func() {
				So(stats["users"], ShouldEqual, int64(1))
				So(stats["exercises"], ShouldEqual, int64(1))
				So(stats["store"], ShouldEqual, "memory")
				So(stats["defaultLogLimit"], ShouldEqual, 10)
			})
		})
	})

	Convey("Given a service on a failing store", t, func() {
		svc := service.New(service.WithStore(&failingStore{err: errors.New("down")}))

		Convey("When fetching stats", func() {
			stats := svc.GetStats(context.Background())

			Convey("Then counts should be omitted rather than failing", func() {
				_, hasUsers := stats["users"]
				So(hasUsers, ShouldBeFalse)
				So(stats["store"], ShouldEqual, "memory")
			})
		})
	})
}
