package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"book-store-api/internal/models"
	"book-store-api/internal/store"
)

type BookStore struct {
	Collection *mongo.Collection
	now        func() time.Time
}

var _ store.BookStore = (*BookStore)(nil)

func NewBookStore(coll *mongo.Collection) *BookStore {
	return &BookStore{Collection: coll, now: time.Now}
}

// clock returns the current time at the precision Mongo stores.
func (s *BookStore) clock() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().UTC().Truncate(time.Millisecond)
}

func (s *BookStore) Create(ctx context.Context, in models.BookInput) (models.Book, error) {
	now := s.clock()
	book := models.Book{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(&book)

	if _, err := s.Collection.InsertOne(ctx, book); err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (s *BookStore) FindAll(ctx context.Context) ([]models.Book, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err = cursor.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookStore) FindByID(ctx context.Context, id string) (models.Book, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.Book{}, err
	}

	var book models.Book
	err = s.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, store.ErrNotFound
	}
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (s *BookStore) FindByIDAndReplace(ctx context.Context, id string, in models.BookInput) (models.Book, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.Book{}, err
	}

	update := bson.M{"$set": bson.M{
		"title":       *in.Title,
		"author":      *in.Author,
		"publishYear": *in.PublishYear,
		"updatedAt":   s.clock(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(false)

	var book models.Book
	err = s.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Book{}, store.ErrNotFound
	}
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (s *BookStore) Ping(ctx context.Context) error {
	return s.Collection.Database().Client().Ping(ctx, readpref.Primary())
}
