package check

import (
	"context"
	"net"

	"github.com/go-redis/redis"
	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/internal/helper"
	log "github.com/sirupsen/logrus"
)

type redisCheck struct {
	addr     string
	password string
}

func NewRedisCheck(cfg *config.Redis) *redisCheck {
	return &redisCheck{
		addr: net.JoinHostPort(
			helper.ResolveEnv(cfg.Hostname),
			helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "6379", "port", "redis"),
		),
		password: helper.ResolveEnv(cfg.Password),
	}
}

func (r *redisCheck) Exec(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     r.addr,
		Password: r.password,
	}).WithContext(ctx)
	defer client.Close()

	if _, err := client.Ping().Result(); err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "check", "name": "redis", "status": "alive", "host": r.addr}).Debug()
	return nil
}
