package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// OpenRedis connects the idempotency store and verifies the connection with
// a ping before handing the client out.
func OpenRedis(addr string, db int) (*redis.Client, error) {
	c := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return c, nil
}
