// Package migrations holds the collection index definitions. Each file
// registers itself via init(), and the CLI applies the whole registry
// with db:index. Index creation is idempotent, so re-running is safe.
package migrations

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// IndexFunc applies one collection's indexes.
type IndexFunc func(ctx context.Context, db *mongo.Database) error

type entry struct {
	name string
	fn   IndexFunc
}

var (
	mu      sync.Mutex
	entries []entry
)

// Register adds an index set to the registry. Call from init().
func Register(name string, fn IndexFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll applies every registered index set in registration order and
// stops on the first error.
func RunAll(ctx context.Context, db *mongo.Database) error {
	mu.Lock()
	current := make([]entry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		fmt.Printf("  • Ensuring indexes: %s … ", e.name)
		if err := e.fn(ctx, db); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("indexes %q: %w", e.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
