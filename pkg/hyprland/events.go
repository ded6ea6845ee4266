package hyprland

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// Client reads the compositor's event stream.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func Connect() (*Client, error) {
	conn, err := connect(eventSocket)
	if err != nil {
		return nil, fmt.Errorf("connect event socket: %w", err)
	}

	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// event is one line of the stream, "TYPE>>DATA".
type event struct {
	kind string
	data string
}

func (c *Client) readEvent() (event, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return event{}, fmt.Errorf("read from hypr socket: %w", err)
	}

	line = strings.TrimSuffix(line, "\n")
	kind, data, found := strings.Cut(line, ">>")
	if !found {
		return event{}, fmt.Errorf("invalid event line: %q", line)
	}

	return event{kind: kind, data: data}, nil
}
