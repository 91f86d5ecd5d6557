package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gmrcWP/exercise-tracker/internal/domain/model"
)

// Default collection names.
const (
	defaultUsersCollection     = "users"
	defaultExercisesCollection = "exercises"
)

// userDoc is the wire shape of a user in MongoDB.
type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

// exerciseDoc is the wire shape of an exercise in MongoDB.
// user_id is the owner's hex id; date carries midnight UTC only.
type exerciseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Username    string             `bson:"username"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

// MongoStore implements Store on top of a MongoDB database.
type MongoStore struct {
	users     *mongo.Collection
	exercises *mongo.Collection
	client    *mongo.Client
}

// Dial builds a MongoDB client for uri. Connection establishment is lazy;
// an unreachable server surfaces on first use, or earlier via Ping.
func Dial(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return client, nil
}

// Ping verifies the server behind client is reachable.
func Ping(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	return nil
}

// NewMongoStore creates a Store backed by the named database on client.
func NewMongoStore(client *mongo.Client, database string, opts ...MongoOption) *MongoStore {
	cfg := mongoConfig{
		usersCollection:     defaultUsersCollection,
		exercisesCollection: defaultExercisesCollection,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := client.Database(database)
	return &MongoStore{
		users:     db.Collection(cfg.usersCollection),
		exercises: db.Collection(cfg.exercisesCollection),
		client:    client,
	}
}

// InsertUser persists a new user and returns it with its generated id.
func (s *MongoStore) InsertUser(ctx context.Context, username string) (model.User, error) {
	res, err := s.users.InsertOne(ctx, userDoc{Username: username})
	if err != nil {
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return model.User{}, fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return model.User{ID: oid.Hex(), Username: username}, nil
}

// ListUsers returns all users in store order.
func (s *MongoStore) ListUsers(ctx context.Context) ([]model.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]model.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, model.User{ID: d.ID.Hex(), Username: d.Username})
	}
	return users, nil
}

// FindUser returns the user with the given id, or ErrNotFound.
// A malformed id cannot address any document, so it maps to ErrNotFound too.
func (s *MongoStore) FindUser(ctx context.Context, id string) (model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.User{}, ErrNotFound
	}
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return model.User{ID: doc.ID.Hex(), Username: doc.Username}, nil
}

// InsertExercise persists a new exercise entry.
func (s *MongoStore) InsertExercise(ctx context.Context, ex model.Exercise) (model.Exercise, error) {
	doc := exerciseDoc{
		UserID:      ex.UserID,
		Username:    ex.Username,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        model.Midnight(ex.Date),
	}
	res, err := s.exercises.InsertOne(ctx, doc)
	if err != nil {
		return model.Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return model.Exercise{}, fmt.Errorf("insert exercise: unexpected id type %T", res.InsertedID)
	}
	ex.ID = oid.Hex()
	ex.Date = doc.Date
	return ex, nil
}

// FindExercises returns a user's exercises matching the filter.
func (s *MongoStore) FindExercises(ctx context.Context, userID string, filter model.LogFilter) ([]model.Exercise, error) {
	query := bson.M{"user_id": userID}

	dateCond := bson.M{}
	if filter.From != nil {
		dateCond["$gte"] = model.Midnight(*filter.From)
	}
	if filter.To != nil {
		dateCond["$lte"] = model.Midnight(*filter.To)
	}
	if len(dateCond) > 0 {
		query["date"] = dateCond
	}

	findOpts := options.Find()
	if filter.Limit > 0 {
		findOpts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.exercises.Find(ctx, query, findOpts)
	if err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	var docs []exerciseDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find exercises: %w", err)
	}
	out := make([]model.Exercise, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.Exercise{
			ID:          d.ID.Hex(),
			UserID:      d.UserID,
			Username:    d.Username,
			Description: d.Description,
			Duration:    d.Duration,
			Date:        d.Date,
		})
	}
	return out, nil
}

// CountUsers reports the size of the users collection.
func (s *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountExercises reports the size of the exercises collection.
func (s *MongoStore) CountExercises(ctx context.Context) (int64, error) {
	n, err := s.exercises.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}
