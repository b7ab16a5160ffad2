package check

import (
	"context"
	"database/sql"
	"net"
	"net/url"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/internal/helper"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

type postgresCheck struct {
	dsn  string
	host string
}

func NewPostgresCheck(cfg *config.Postgres) *postgresCheck {
	host := net.JoinHostPort(
		helper.ResolveEnv(cfg.Hostname),
		helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "5432", "port", "postgres"),
	)

	u := url.URL{
		Scheme:   "postgres",
		Host:     host,
		Path:     helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Database), "postgres", "database", "postgres"),
		RawQuery: url.Values{"sslmode": {helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.SSLMode), "require", "sslMode", "postgres")}}.Encode(),
	}

	user := helper.ResolveEnv(cfg.User)
	password := helper.ResolveEnv(cfg.Password)
	if user != "" {
		u.User = url.UserPassword(user, password)
	}

	return &postgresCheck{dsn: u.String(), host: host}
}

func (p *postgresCheck) Exec(ctx context.Context) error {
	return pingSQL(ctx, "postgres", p.dsn, p.host)
}

// pingSQL opens a connection through driver and runs a trivial query.
func pingSQL(ctx context.Context, driver, dsn, host string) error {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := db.QueryContext(ctx, "SELECT 1")
	if err != nil {
		return err
	}
	_ = r.Close()

	log.WithFields(log.Fields{"kind": "check", "name": driver, "status": "alive", "host": host}).Debug()
	return nil
}
