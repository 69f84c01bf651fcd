// Package blob abstracts the object store that holds uploaded image bytes.
// Slots reference objects by key; the rest of the system never sees bucket
// details.
package blob

import (
	"context"
	"io"
)

type Store interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	// URL returns an address a browser can fetch the object from.
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
