package db

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// InMemoryPath selects a non-persistent Badger instance.
const InMemoryPath = ":memory:"

// OpenBadger opens the embedded store at path, or an in-memory one for
// InMemoryPath.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if path == InMemoryPath {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return bdb, nil
}
