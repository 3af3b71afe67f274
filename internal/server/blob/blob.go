// Package blob stores uploaded objects and hands out URLs to read them back.
package blob

import (
	"context"
	"io"
)

type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	// URL returns a link through which the object can be fetched.
	URL(ctx context.Context, key string) (string, error)
}
