package errx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// RedisErrorMessage describes Redis related failures.
const RedisErrorMessage = "redis operation failed"

// WrapRedis maps Redis errors to AppError. redis.Nil becomes a 404 that also
// matches ErrNotFound.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return New(fmt.Errorf("%w: %w", ErrNotFound, err), http.StatusNotFound, NotFoundMessage)
	}

	return New(err, http.StatusBadGateway, RedisErrorMessage)
}
