package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/gorilla/websocket"
)

var _ APIResponse = &StreamingAPIResponse{}

type StreamingAPIResponseHandler func(ctx context.Context, conn *websocket.Conn, msg chan []byte, err chan error)

type StreamingAPIResponse struct {
	url           *url.URL
	streamingFunc StreamingAPIResponseHandler
	dialer        *websocket.Dialer
	err           error
}

func NewStreamingAPIResponse(url *url.URL, dialer *websocket.Dialer, streamingFunc StreamingAPIResponseHandler) *StreamingAPIResponse {
	return &StreamingAPIResponse{
		url:           url,
		streamingFunc: streamingFunc,
		dialer:        dialer,
	}
}

func (resp *StreamingAPIResponse) Err() error {
	return resp.err
}

func (resp *StreamingAPIResponse) Print(w io.Writer) error {
	return resp.Stream(context.Background(), func(msg []byte) (bool, error) {
		_, err := fmt.Fprintln(w, string(msg))
		return true, err
	})
}

// Stream calls onMessage for every received message until it returns false,
// the server closes the connection or ctx is done.
func (resp *StreamingAPIResponse) Stream(ctx context.Context, onMessage func([]byte) (bool, error)) error {
	if resp.err != nil {
		return resp.err
	}

	conn, _, err := resp.dialer.DialContext(ctx, resp.url.String(), nil)
	if err != nil {
		return fmt.Errorf("error dialing to %s: %w", resp.url.String(), err)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	messageChan := make(chan []byte)
	errorChan := make(chan error)
	defer func() {
		cancel()
		conn.Close()
	}()

	go resp.streamingFunc(streamCtx, conn, messageChan, errorChan)

	for {
		select {
		case msg := <-messageChan:
			more, err := onMessage(msg)
			if err != nil {
				return err
			}
			if !more {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return nil
			}
		case err := <-errorChan:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				return nil
			}
			return err
		case <-streamCtx.Done():
			return nil
		}
	}
}
