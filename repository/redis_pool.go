package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
)

type RedisPoolOption struct {
	f func(*redis.Pool)
}

func RedisPoolDial(f func() (redis.Conn, error)) RedisPoolOption {
	return RedisPoolOption{func(pool *redis.Pool) {
		pool.Dial = f
	}}
}

func RedisPoolIdleTimeout(timeout time.Duration) RedisPoolOption {
	return RedisPoolOption{func(pool *redis.Pool) {
		pool.IdleTimeout = timeout
	}}
}

func RedisPoolMaxActive(i int) RedisPoolOption {
	return RedisPoolOption{func(pool *redis.Pool) {
		pool.MaxActive = i
	}}
}

func RedisPoolMaxIdle(i int) RedisPoolOption {
	return RedisPoolOption{func(pool *redis.Pool) {
		pool.MaxIdle = i
	}}
}

func RedisPoolTestOnBorrow(f func(c redis.Conn, t time.Time) error) RedisPoolOption {
	return RedisPoolOption{func(pool *redis.Pool) {
		pool.TestOnBorrow = f
	}}
}

func RedisPoolWait(b bool) RedisPoolOption {
	return RedisPoolOption{func(pool *redis.Pool) {
		pool.Wait = b
	}}
}

// NewRedisPool builds a pool dialling localhost by default; the snapshot
// store only ever holds one connection's worth of work so the defaults
// are modest.
func NewRedisPool(options ...RedisPoolOption) *redis.Pool {
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", ":6379")
		},
		MaxIdle:     2,
		IdleTimeout: 4 * time.Minute,
	}

	for _, option := range options {
		option.f(pool)
	}

	return pool
}
