package check

import (
	"context"
	"net"
	"net/url"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/internal/helper"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	defaultVirtualHost = "/"
)

type amqpCheck struct {
	user        string
	password    string
	host        string
	virtualHost string
}

func NewAmqpCheck(cfg *config.Amqp) *amqpCheck {
	return &amqpCheck{
		user:     helper.ResolveEnv(cfg.User),
		password: helper.ResolveEnv(cfg.Password),
		host: net.JoinHostPort(
			helper.ResolveEnv(cfg.Hostname),
			helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "5672", "port", "amqp"),
		),
		virtualHost: helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.VirtualHost), defaultVirtualHost),
	}
}

func (a *amqpCheck) url() *url.URL {
	u := &url.URL{
		Scheme: "amqp",
		Host:   a.host,
		Path:   a.virtualHost,
	}

	if a.user != "" && a.password != "" {
		u.User = url.UserPassword(a.user, a.password)
	}
	return u
}

func (a *amqpCheck) Exec(ctx context.Context) error {
	u := a.url()

	var dialer net.Dialer
	conn, err := amqp.DialConfig(u.String(), amqp.Config{
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to dial amqp at %s", u.Redacted())
	}
	defer conn.Close()

	log.WithFields(log.Fields{"kind": "check", "name": "amqp", "status": "alive", "host": a.host}).Debug()
	return nil
}
