package port

import (
	"context"
	"io"
)

// PutInput encapsulates the parameters needed to store an object.
type PutInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Metadata    map[string]string
}

// PutOutput contains the result of a successful put.
type PutOutput struct {
	Key      string
	Location string
	ETag     string
}

// ObjectStorage abstracts a single object storage bucket.
type ObjectStorage interface {
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}
