package errx

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestWrapRedis(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))

	notFound := WrapRedis(redis.Nil)
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.ErrorIs(t, notFound, redis.Nil)
	assert.Equal(t, http.StatusNotFound, StatusOf(notFound))

	boom := errors.New("connection refused")
	wrapped := WrapRedis(boom)
	assert.ErrorIs(t, wrapped, boom)
	assert.NotErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, http.StatusBadGateway, StatusOf(wrapped))
	assert.Equal(t, RedisErrorMessage, MessageOf(wrapped))
}

func TestWrapSQLite(t *testing.T) {
	assert.NoError(t, WrapSQLite(nil))
	assert.ErrorIs(t, WrapSQLite(sql.ErrNoRows), ErrNotFound)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(WrapSQLite(errors.New("disk I/O error"))))
}

func TestNotPersistedKeepsStorageStatus(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrNotPersisted, WrapRedis(errors.New("connection refused")))
	assert.ErrorIs(t, err, ErrNotPersisted)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Equal(t, RedisErrorMessage, MessageOf(err))
}

func TestStatusAndMessageOf(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", ErrEmptyCart)
	assert.ErrorIs(t, wrapped, ErrEmptyCart)
	assert.Equal(t, http.StatusUnprocessableEntity, StatusOf(wrapped))
	assert.Equal(t, EmptyCartMessage, MessageOf(wrapped))

	plain := errors.New("plain")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(plain))
	assert.Equal(t, SystemErrorMessage, MessageOf(plain))

	assert.Equal(t, "price must not be negative", Invalid("price must not be negative").Error())
}
