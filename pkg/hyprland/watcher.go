package hyprland

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"codeberg.org/martonv/autopage/pkg/autopage"
)

// Watcher turns the compositor's focus-change events into window
// observations. It implements autopage.WindowSource.
type Watcher struct {
	client  *Client
	hyprctl *Hyprctl
}

var _ autopage.WindowSource = (*Watcher)(nil)

func NewWatcher(client *Client, hyprctl *Hyprctl) *Watcher {
	return &Watcher{client: client, hyprctl: hyprctl}
}

// ReadObservation blocks until the next focus change. The event line only
// carries class and title; PID comes from a hyprctl query so the owning
// process' environment can be inspected for storefront variables.
func (w *Watcher) ReadObservation() (autopage.WindowObservation, error) {
	for {
		ev, err := w.client.readEvent()
		if err != nil {
			return autopage.WindowObservation{}, fmt.Errorf("read event: %w", err)
		}

		if ev.kind != "activewindow" {
			continue
		}

		class, title, _ := strings.Cut(ev.data, ",")
		obs := autopage.WindowObservation{
			Class: class,
			Title: title,
		}

		// Best effort: an empty-desktop event or a query race just means
		// fewer identity candidates, never a failed observation.
		if win, err := w.hyprctl.ActiveWindow(); err == nil && win.PID > 0 {
			obs.PID = win.PID
			obs.Env = processEnv(win.PID)
		}

		return obs, nil
	}
}

// processEnv reads /proc/<pid>/environ. Nil on any failure: the process may
// be gone already or owned by another user.
func processEnv(pid int) map[string]string {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/environ", pid))
	if err != nil {
		return nil
	}

	env := make(map[string]string)
	for _, entry := range bytes.Split(data, []byte{0}) {
		if len(entry) == 0 {
			continue
		}
		key, value, found := strings.Cut(string(entry), "=")
		if !found {
			continue
		}
		env[key] = value
	}

	return env
}
