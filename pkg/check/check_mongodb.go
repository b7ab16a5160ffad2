package check

import (
	"context"
	"net"
	"net/url"

	"github.com/hellostack/hellostack/internal/config"
	"github.com/hellostack/hellostack/internal/helper"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoDBCheck struct {
	url *url.URL
}

func NewMongoDBCheck(cfg *config.MongoDB) (*mongoDBCheck, error) {
	if raw := helper.ResolveEnv(cfg.URL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		return &mongoDBCheck{url: u}, nil
	}

	u := &url.URL{
		Scheme: "mongodb",
		Host: net.JoinHostPort(
			helper.ResolveEnv(cfg.Hostname),
			helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.Port), "27017", "port", "mongodb"),
		),
		Path: helper.ResolveEnv(cfg.Database),
	}

	user := helper.ResolveEnv(cfg.User)
	if user != "" {
		u.User = url.UserPassword(user, helper.ResolveEnv(cfg.Password))
	}

	return &mongoDBCheck{url: u}, nil
}

func (m *mongoDBCheck) Exec(ctx context.Context) error {
	client, err := mongo.NewClient(options.Client().ApplyURI(m.url.String()))
	if err != nil {
		return err
	}

	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return err
	}

	log.WithFields(log.Fields{"kind": "check", "name": "mongodb", "status": "alive", "host": m.url.Host}).Debug()
	return nil
}
