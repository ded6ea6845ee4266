package hyprland

import (
	"encoding/json"
	"fmt"
	"net"
)

// Hyprctl queries the compositor's control socket.
type Hyprctl struct{}

func NewHyprctl() (*Hyprctl, error) {
	return &Hyprctl{}, nil
}

// ActiveWindow mirrors the fields of `hyprctl activewindow -j` this tool
// cares about.
type ActiveWindow struct {
	Class string `json:"class"`
	Title string `json:"title"`
	PID   int    `json:"pid"`
}

func (c *Hyprctl) ActiveWindow() (ActiveWindow, error) {
	conn, err := c.makeRequest("activewindow", "j")
	if err != nil {
		return ActiveWindow{}, err
	}
	defer conn.Close()

	var win ActiveWindow
	if err := json.NewDecoder(conn).Decode(&win); err != nil {
		return ActiveWindow{}, fmt.Errorf("unmarshal active window: %w", err)
	}

	return win, nil
}

func (c *Hyprctl) makeRequest(request string, args string) (net.Conn, error) {
	conn, err := connect(hyprctlSocket)
	if err != nil {
		return nil, err
	}

	_, err = conn.Write([]byte(fmt.Sprintf("%s/%s", args, request)))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("write to hyprctl socket: %w", err)
	}

	return conn, nil
}
