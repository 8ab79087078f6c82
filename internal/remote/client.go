// ABOUTME: Websocket control client
// ABOUTME: Sends commands to a player and reads status replies
package remote

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a connection to a player's control endpoint
type Client struct {
	conn    *websocket.Conn
	timeout time.Duration
}

// Dial connects to a control endpoint URL such as ws://host:8930/control
func Dial(url string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	return &Client{conn: conn, timeout: timeout}, nil
}

// Send writes a command
func (c *Client) Send(msgType string, payload interface{}) error {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	return c.conn.WriteJSON(msg)
}

// Receive reads the next message
func (c *Client) Receive() (Message, error) {
	var msg Message
	c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return msg, fmt.Errorf("failed to read reply: %w", err)
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("invalid reply: %w", err)
	}
	return msg, nil
}

// Do sends a command and waits for its status or error reply. Status
// broadcasts that arrive first are returned as well, since they carry the
// same state.
func (c *Client) Do(msgType string, payload interface{}) (Status, error) {
	var st Status
	if err := c.Send(msgType, payload); err != nil {
		return st, err
	}

	reply, err := c.Receive()
	if err != nil {
		return st, err
	}

	switch reply.Type {
	case TypeStatus:
		err = reply.Decode(&st)
		return st, err
	case TypeError:
		var info ErrorInfo
		if err := reply.Decode(&info); err != nil {
			return st, err
		}
		return st, fmt.Errorf("%s: %s", msgType, info.Message)
	default:
		return st, fmt.Errorf("unexpected reply %q", reply.Type)
	}
}

// Close closes the connection
func (c *Client) Close() error {
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}
