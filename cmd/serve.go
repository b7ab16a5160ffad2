package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hellostack/hellostack/pkg/api"
	"github.com/hellostack/hellostack/pkg/check"
	"github.com/hellostack/hellostack/pkg/pidfile"
	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/hellostack/hellostack/pkg/tutorial"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	listenAddress string
	pidFile       string
	waitForChecks bool
)

func init() {
	serveCmd.Flags().StringVarP(&listenAddress, "listen", "l", ":9102", "address to listen on; use unix:///path/to/socket for a unix socket")
	serveCmd.Flags().StringVarP(&pidFile, "pidfile", "", "", "write hellostack's process id to this file")
	serveCmd.Flags().BoolVar(&waitForChecks, "wait", false, "wait for checks marked with wait = true before serving")

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the connection test, checks and guide over HTTP",
	Long:  "This sub-command hosts a single connection test widget, the configured checks and the guide behind a small HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pidFileHandle := pidfile.New(pidFile)
		if err := pidFileHandle.Acquire(); err != nil {
			return err
		}

		defer func() {
			if err := pidFileHandle.Release(); err != nil {
				log.Errorf("error while cleaning up the pid file: %s", err)
			}
		}()

		handler, err := check.NewHandler(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if waitForChecks {
			if err := handler.Wait(ctx, time.Second); err != nil {
				return err
			}
		}

		widget := probe.NewWidget(probe.NewProber(nil), cfg.InitialEndpoint(""))
		server := api.NewServer(listenAddress, widget, handler, tutorial.DefaultData())

		go func() {
			<-ctx.Done()
			log.Info("received shutdown signal")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.WithError(err).Error("failed to shut down remote api")
			}
		}()

		if err := server.Start(); err != nil {
			return err
		}

		log.Info("remote api stopped without error")
		return nil
	},
}
