package job

import (
	"context"
	"time"
)

// Locker guards a tick against concurrent runs across replicas
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}
