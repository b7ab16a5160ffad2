package check

import (
	"context"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/internal/helper"
)

type mySQLCheck struct {
	dsn  string
	host string
}

func NewMySQLCheck(cfg *config.MySQL) *mySQLCheck {
	host := net.JoinHostPort(
		helper.ResolveEnv(cfg.Hostname),
		helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "3306", "port", "mysql"),
	)

	connCfg := mysql.NewConfig()
	connCfg.User = helper.ResolveEnv(cfg.User)
	connCfg.Passwd = helper.ResolveEnv(cfg.Password)
	connCfg.Net = "tcp"
	connCfg.Addr = host
	connCfg.DBName = helper.ResolveEnv(cfg.Database)

	return &mySQLCheck{
		dsn:  connCfg.FormatDSN(),
		host: host,
	}
}

func (m *mySQLCheck) Exec(ctx context.Context) error {
	return pingSQL(ctx, "mysql", m.dsn, m.host)
}
