// Package repository defines the document store interface and errors.
package repository

// mongoConfig holds tunables for the Mongo-backed store.
type mongoConfig struct {
	usersCollection     string
	exercisesCollection string
}

// MongoOption applies a configuration option to a MongoStore.
type MongoOption func(*mongoConfig)

// WithUsersCollection overrides the users collection name.
func WithUsersCollection(name string) MongoOption {
	return func(c *mongoConfig) {
		if name != "" {
			c.usersCollection = name
		}
	}
}

// WithExercisesCollection overrides the exercises collection name.
func WithExercisesCollection(name string) MongoOption {
	return func(c *mongoConfig) {
		if name != "" {
			c.exercisesCollection = name
		}
	}
}
