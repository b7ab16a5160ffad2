package cmd

import (
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/hellostack/hellostack/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const DefaultAPIAddress = "http://localhost:9102"

var configDir string
var logLevel string
var enableProfile bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "c", "/etc/hellostack.d", "set directory to where your .hcl-configs are located")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "log level (debug, info, warning, error)")
	rootCmd.PersistentFlags().BoolVar(&enableProfile, "profile", false, "enable pprof http server")
}

var rootCmd = &cobra.Command{
	Use:           "hellostack",
	Short:         "hellostack - your first full-stack Hello World",
	Long:          "hellostack walks you through deploying a database, a backend and a frontend, and tests the connection between them",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)

		if enableProfile {
			go servePprof()
		}
		return nil
	},
}

func servePprof() {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Errorf("pprof server failed to listen: %v", err)
		return
	}
	log.Warnf("Starting pprof server on http://%s/debug/pprof/", listener.Addr().String())
	if err := http.Serve(listener, mux); err != nil {
		log.Errorf("pprof server error: %v", err)
	}
}

func loadConfig() (*config.Hellostack, error) {
	cfg := &config.Hellostack{}
	if err := cfg.GenerateFromConfigDir(configDir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// exitError ends the process with code after the command printed its own
// output.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if e, ok := err.(exitError); ok {
			os.Exit(e.code)
		}
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}
