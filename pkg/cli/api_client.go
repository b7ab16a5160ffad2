package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/hellostack/hellostack/pkg/check"
	"github.com/hellostack/hellostack/pkg/probe"
	"github.com/hellostack/hellostack/pkg/tutorial"
)

type APIClient struct {
	apiAddress string
}

func NewAPIClient(apiAddress string) *APIClient {
	return &APIClient{
		apiAddress: apiAddress,
	}
}

func (api *APIClient) ProbeStatus() *TypedAPIResponse[probe.Status] {
	client, addr, err := api.buildHTTPClientAndAddress()
	if err != nil {
		return &TypedAPIResponse[probe.Status]{Error: err}
	}

	return NewTypedAPIResponse(probe.Status{})(client.Get(addr + "/v1/probe"))
}

func (api *APIClient) Submit() *TypedAPIResponse[probe.Status] {
	client, addr, err := api.buildHTTPClientAndAddress()
	if err != nil {
		return &TypedAPIResponse[probe.Status]{Error: err}
	}

	return NewTypedAPIResponse(probe.Status{})(client.Post(addr+"/v1/probe", "application/json", nil))
}

func (api *APIClient) SetEndpoint(endpoint string) *TypedAPIResponse[probe.Status] {
	client, addr, err := api.buildHTTPClientAndAddress()
	if err != nil {
		return &TypedAPIResponse[probe.Status]{Error: err}
	}

	body, err := json.Marshal(map[string]string{"endpoint": endpoint})
	if err != nil {
		return &TypedAPIResponse[probe.Status]{Error: err}
	}

	req, err := http.NewRequest(http.MethodPut, addr+"/v1/probe/endpoint", bytes.NewReader(body))
	if err != nil {
		return &TypedAPIResponse[probe.Status]{Error: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return NewTypedAPIResponse(probe.Status{})(client.Do(req))
}

func (api *APIClient) Checks() APIResponse {
	client, addr, err := api.buildHTTPClientAndAddress()
	if err != nil {
		return &CommonAPIResponse{Error: err}
	}

	return NewAPIResponse(client.Get(addr + "/v1/checks"))
}

func (api *APIClient) Steps() *TypedAPIResponse[[]tutorial.Step] {
	client, addr, err := api.buildHTTPClientAndAddress()
	if err != nil {
		return &TypedAPIResponse[[]tutorial.Step]{Error: err}
	}

	return NewTypedAPIResponse([]tutorial.Step{})(client.Get(addr + "/v1/steps"))
}

// ProbeEvents streams every status change of the remote probe widget.
func (api *APIClient) ProbeEvents() *StreamingAPIResponse {
	dialer, u, err := api.buildWebsocketURL()
	if err != nil {
		return &StreamingAPIResponse{err: err}
	}
	u.Path = "/v1/probe/events"

	handler := func(ctx context.Context, conn *websocket.Conn, msgChan chan []byte, errChan chan error) {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				select {
				case errChan <- err:
				case <-ctx.Done():
				}
				return
			}

			select {
			case msgChan <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
	return NewStreamingAPIResponse(u, dialer, handler)
}

// CheckResults fetches the check results as a typed body.
func (api *APIClient) CheckResults() *TypedAPIResponse[check.StatusResponse] {
	client, addr, err := api.buildHTTPClientAndAddress()
	if err != nil {
		return &TypedAPIResponse[check.StatusResponse]{Error: err}
	}

	return NewTypedAPIResponse(check.StatusResponse{})(client.Get(addr + "/v1/checks"))
}

func (api *APIClient) buildHTTPClientAndAddress() (*http.Client, string, error) {
	u, err := url.Parse(api.apiAddress)
	if err != nil {
		return nil, "", err
	}
	if u.Scheme != "unix" {
		return &http.Client{}, api.apiAddress, nil
	}

	return &http.Client{
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", u.Path)
			},
		},
	}, "http://unix", nil
}

func (api *APIClient) buildWebsocketURL() (*websocket.Dialer, *url.URL, error) {
	u, err := url.Parse(api.apiAddress)
	if err != nil {
		return nil, nil, err
	}
	if u.Scheme != "unix" {
		if u.Scheme == "https" {
			u.Scheme = "wss"
		} else {
			u.Scheme = "ws"
		}
		return websocket.DefaultDialer, u, nil
	}

	socketPath := u.Path
	dialer := &websocket.Dialer{
		NetDial: func(network, addr string) (net.Conn, error) {
			return net.Dial("unix", socketPath)
		},
	}

	return dialer, &url.URL{Scheme: "ws", Host: "unix"}, nil
}
