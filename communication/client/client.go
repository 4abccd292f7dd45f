package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"isolation/communication"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// Client follows the games served by a spectator server
type Client struct {
	serverURL string
	http      *http.Client
	dialer    *websocket.Dialer
}

// NewClient initializes a client for a server such as http://localhost:9090
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		http:      http.DefaultClient,
		dialer:    websocket.DefaultDialer,
	}
}

// Latest returns the last move played, false when no move was played yet
func (c *Client) Latest(ctx context.Context) (communication.MovePayload, bool, error) {
	var payload communication.MovePayload

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/games/latest", nil)
	if err != nil {
		return payload, false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return payload, false, fmt.Errorf("get latest move: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return payload, false, nil
	case http.StatusOK:
	default:
		return payload, false, fmt.Errorf("get latest move: unexpected status %s", resp.Status)
	}

	var msg communication.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return payload, false, fmt.Errorf("decode latest move: %w", err)
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, false, fmt.Errorf("decode latest move: %w", err)
	}
	return payload, true, nil
}

// Watch streams messages to handle until ctx is done, the server goes away, or
// handle returns an error. Pings are not passed on.
func (c *Client) Watch(ctx context.Context, handle func(communication.Message) error) error {
	url := "ws" + strings.TrimPrefix(c.serverURL, "http") + "/ws"
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", url, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		var msg communication.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("decode message: %w", err)
		}
		if msg.Type == communication.PingMessage {
			continue
		}
		if err := handle(msg); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// ErrStop ends Watch without an error when returned by the handler
var ErrStop = errors.New("stop watching")
