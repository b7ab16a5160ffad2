package check

import (
	"context"
	"net"
	"net/smtp"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/internal/helper"
	log "github.com/sirupsen/logrus"
)

type smtpCheck struct {
	addr string
}

func NewSMTPCheck(cfg *config.SMTP) *smtpCheck {
	return &smtpCheck{
		addr: net.JoinHostPort(
			helper.ResolveEnv(cfg.Hostname),
			helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "25", "port", "smtp"),
		),
	}
}

func (s *smtpCheck) Exec(ctx context.Context) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}

	host, _, _ := net.SplitHostPort(s.addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer client.Close()

	if err := client.Noop(); err != nil {
		return err
	}

	if err := client.Quit(); err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "check", "name": "smtp", "status": "alive", "host": s.addr}).Debug()
	return nil
}
