package hyprland

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var ErrNotRunning = errors.New("hyprland might not be running")

type socketType int

const (
	// hyprctlSocket is the request/response control socket.
	hyprctlSocket socketType = iota
	// eventSocket streams compositor events, one line per event.
	eventSocket
)

func connect(sock socketType) (net.Conn, error) {
	socketPath, err := getSocketPath(sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}

func getSocketPath(sock socketType) (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	var name string
	switch sock {
	case hyprctlSocket:
		name = ".socket.sock"
	case eventSocket:
		name = ".socket2.sock"
	default:
		return "", fmt.Errorf("unknown socket type: %d", sock)
	}

	// Current hyprland keeps its sockets under the runtime dir; older
	// releases used /tmp/hypr.
	path := filepath.Join(xdg.RuntimeDir, "hypr", signature, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	return filepath.Join("/tmp/hypr", signature, name), nil
}
