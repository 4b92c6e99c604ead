package storage

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"
)

// ObjectStore uploads cover images and mints short-lived read URLs for them.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
