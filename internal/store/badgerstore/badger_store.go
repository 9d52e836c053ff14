// Package badgerstore keeps books as BSON documents in an embedded Badger
// database, one key per document under a collection prefix.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"book-store-api/internal/models"
	"book-store-api/internal/store"
)

var errClosed = errors.New("badger: database is closed")

type BookStore struct {
	Db   *badger.DB
	Name string
	now  func() time.Time
}

var _ store.BookStore = (*BookStore)(nil)

func NewBookStore(db *badger.DB, name string) *BookStore {
	return &BookStore{Db: db, Name: name, now: time.Now}
}

func (s *BookStore) prefix() []byte {
	return []byte(s.Name + "|")
}

func (s *BookStore) key(id primitive.ObjectID) []byte {
	return []byte(fmt.Sprintf("%s|%s", s.Name, id.Hex()))
}

func (s *BookStore) clock() time.Time {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return now().UTC().Truncate(time.Millisecond)
}

func (s *BookStore) Create(ctx context.Context, in models.BookInput) (models.Book, error) {
	if err := ctx.Err(); err != nil {
		return models.Book{}, err
	}

	now := s.clock()
	book := models.Book{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(&book)

	err := s.Db.Update(func(txn *badger.Txn) error {
		return s.put(txn, book)
	})
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (s *BookStore) FindAll(ctx context.Context) ([]models.Book, error) {
	books := []models.Book{}

	err := s.Db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := s.prefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var book models.Book
			err := it.Item().Value(func(val []byte) error {
				return bson.Unmarshal(val, &book)
			})
			if err != nil {
				return err
			}
			books = append(books, book)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (s *BookStore) FindByID(ctx context.Context, id string) (models.Book, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return models.Book{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Book{}, err
	}

	var book models.Book
	err = s.Db.View(func(txn *badger.Txn) error {
		book, err = s.get(txn, oid)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
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
	if err := ctx.Err(); err != nil {
		return models.Book{}, err
	}

	var book models.Book
	err = s.Db.Update(func(txn *badger.Txn) error {
		book, err = s.get(txn, oid)
		if err != nil {
			return err
		}

		in.Apply(&book)
		book.UpdatedAt = s.clock()
		return s.put(txn, book)
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Book{}, store.ErrNotFound
	}
	if err != nil {
		return models.Book{}, err
	}
	return book, nil
}

func (s *BookStore) Ping(ctx context.Context) error {
	if s.Db.IsClosed() {
		return errClosed
	}
	return ctx.Err()
}

func (s *BookStore) get(txn *badger.Txn, id primitive.ObjectID) (models.Book, error) {
	item, err := txn.Get(s.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Book{}, store.ErrNotFound
	}
	if err != nil {
		return models.Book{}, err
	}

	var book models.Book
	err = item.Value(func(val []byte) error {
		return bson.Unmarshal(val, &book)
	})
	return book, err
}

func (s *BookStore) put(txn *badger.Txn, book models.Book) error {
	doc, err := bson.Marshal(book)
	if err != nil {
		return err
	}
	return txn.Set(s.key(book.ID), doc)
}
