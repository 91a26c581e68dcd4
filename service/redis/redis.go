package redis

import (
	"errors"
	"time"

	"github.com/mintmarket/goapi/base/ctx"
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("key not found")
)

// Service abstracts the redis layer
type Service interface {
	// Get returns the value stored at key, ErrNotFound if the key does not exist
	Get(c ctx.Ctx, key string) ([]byte, error)

	// Set stores value at key with a ttl. ttl 0 means no expiration
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error

	// TTL returns remaining ttl of key in seconds
	TTL(c ctx.Ctx, key string) (int64, error)

	// Exists checks whether key exists
	Exists(c ctx.Ctx, key string) (bool, error)

	// Incrby increments the number stored at key by val
	Incrby(c ctx.Ctx, key string, val int) (int64, error)

	// Del removes key, returns number of keys removed
	Del(c ctx.Ctx, key string) (int64, error)

	// Publish sends payload to a pub/sub channel
	Publish(c ctx.Ctx, channel string, payload []byte) error
}
