package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/log"
	"github.com/mintmarket/goapi/base/metrics"
)

const (
	// retTTLNoKey is the return value of TTL when the key does not exist
	retTTLNoKey = -2
)

type redImpl struct {
	name string
	met  metrics.Service
	pool *redis.Pool
}

// New redis service over a connection pool
func New(name string, met metrics.Service, pool *redis.Pool) Service {
	return &redImpl{
		name: name,
		met:  met,
		pool: pool,
	}
}

func (r *redImpl) connDo(c ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	defer r.met.BumpTime("command.time", "cluster", r.name, "command", commandName).End()

	conn := r.pool.Get()
	defer conn.Close()

	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name)
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)
	if err != nil {
		r.met.BumpSum("command.err", 1, "cluster", r.name, "command", commandName)
		c.WithFields(log.Fields{"err": err, "command": commandName}).Error("redis command failed")
	}
	return reply, err
}

func (r *redImpl) Get(c ctx.Ctx, key string) ([]byte, error) {
	reply, err := redis.Bytes(r.connDo(c, "GET", key))
	if err == redis.ErrNil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return reply, nil
}

func (r *redImpl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	var err error
	if ttl > 0 {
		_, err = r.connDo(c, "SET", key, value, "EX", int(ttl.Seconds()))
	} else {
		_, err = r.connDo(c, "SET", key, value)
	}
	return err
}

func (r *redImpl) TTL(c ctx.Ctx, key string) (int64, error) {
	reply, err := redis.Int64(r.connDo(c, "TTL", key))
	if err != nil {
		return 0, err
	}
	if reply == retTTLNoKey {
		return 0, ErrNotFound
	}
	return reply, nil
}

func (r *redImpl) Exists(c ctx.Ctx, key string) (bool, error) {
	reply, err := redis.Int(r.connDo(c, "EXISTS", key))
	if err != nil {
		return false, err
	}
	return reply == 1, nil
}

func (r *redImpl) Incrby(c ctx.Ctx, key string, val int) (int64, error) {
	return redis.Int64(r.connDo(c, "INCRBY", key, val))
}

func (r *redImpl) Del(c ctx.Ctx, key string) (int64, error) {
	return redis.Int64(r.connDo(c, "DEL", key))
}

func (r *redImpl) Publish(c ctx.Ctx, channel string, payload []byte) error {
	_, err := r.connDo(c, "PUBLISH", channel, payload)
	return err
}
