// Package store defines the document store contract the book handlers
// depend on. Implementations live in the mongostore and badgerstore
// subpackages.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"book-store-api/internal/models"
)

// ErrNotFound is returned when no book matches the given id.
var ErrNotFound = errors.New("book not found")

type BookStore interface {
	// Create persists a new book and returns it with its generated id.
	Create(ctx context.Context, in models.BookInput) (models.Book, error)
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id string) (models.Book, error)
	// FindByIDAndReplace overwrites title, author and publishYear and
	// returns the record as stored after the update. It never inserts.
	FindByIDAndReplace(ctx context.Context, id string, in models.BookInput) (models.Book, error)
	Ping(ctx context.Context) error
}

// ParseID converts a path id into an ObjectID. The error text names the
// offending value.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("cast to ObjectId failed for value %q at path \"_id\" for model \"Book\"", id)
	}
	return oid, nil
}
