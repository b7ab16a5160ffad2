package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type API struct {
	listenAddr string
	router     *mux.Router
	upgrader   websocket.Upgrader
	srv        *http.Server
}

// NewAPI prepares a server listening on listenAddr, which is either a TCP
// address (":9102") or a unix socket ("unix:///run/hellostack.sock").
func NewAPI(listenAddr string) *API {
	api := &API{
		listenAddr: listenAddr,
		router:     mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	api.srv = &http.Server{
		Addr:    listenAddr,
		Handler: api.router,
	}
	return api
}

func (api *API) Router() *mux.Router {
	return api.router
}

func (api *API) RegisterHandler(path string, methods []string, handler func(http.ResponseWriter, *http.Request)) {
	api.router.
		Path(path).
		HandlerFunc(handler).
		Methods(methods...)
}

func (api *API) RegisterMiddlewareFuncs(middlewareFunc ...mux.MiddlewareFunc) {
	api.router.Use(middlewareFunc...)
}

// Start serves until Shutdown is called.
func (api *API) Start() error {
	log.Infof("remote api listens on %s", api.srv.Addr)
	if err := api.listen(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (api *API) Shutdown(ctx context.Context) error {
	log.Info("shutting down remote api")
	return api.srv.Shutdown(ctx)
}

func (api *API) listen() error {
	socketParts := strings.Split(api.srv.Addr, "unix://")
	if len(socketParts) <= 1 {
		return api.srv.ListenAndServe()
	}

	return api.listenOnUnixSocket(socketParts[1])
}

func (api *API) listenOnUnixSocket(socketFile string) error {
	socketDir := path.Dir(socketFile)
	if err := os.MkdirAll(socketDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to prepare folder for socket-file")
	}

	if err := os.Remove(socketFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove stale socket-file")
	}

	conn, err := net.Listen("unix", socketFile)
	if err != nil {
		return err
	}
	return api.srv.Serve(conn)
}
