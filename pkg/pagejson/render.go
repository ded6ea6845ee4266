// Package pagejson serializes compiled pages into the controller host's
// page document format.
package pagejson

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/martonv/autopage/pkg/autopage"
	"codeberg.org/martonv/autopage/pkg/keys"
)

// Action id of the host's OS plugin hotkey action, used for shorthand
// actions like "Ctrl+Shift+T".
const hotkeyActionID = "com_core447_OSPlugin::Hotkey"

// Renderer produces page documents. Action strings containing "::" are
// passed through as plugin action ids; everything else is treated as hotkey
// shorthand and expanded to key events.
type Renderer struct {
	log *zap.SugaredLogger
}

func NewRenderer(log *zap.SugaredLogger) *Renderer {
	return &Renderer{log: log}
}

type pageDoc struct {
	Settings map[string]any    `json:"settings"`
	Keys     map[string]keyDoc `json:"keys"`
}

type keyDoc struct {
	States map[string]stateDoc `json:"states"`
}

type stateDoc struct {
	Actions    []actionDoc         `json:"actions"`
	Labels     map[string]labelDoc `json:"labels,omitempty"`
	Background *backgroundDoc      `json:"background,omitempty"`
	Media      *mediaDoc           `json:"media,omitempty"`
}

type actionDoc struct {
	ID       string         `json:"id"`
	Settings map[string]any `json:"settings"`
}

type labelDoc struct {
	Text string `json:"text"`
}

type backgroundDoc struct {
	Color [4]int `json:"color"`
}

type mediaDoc struct {
	Path string `json:"path"`
}

// Render builds the page document. The recipe supplies the window-matching
// patterns for the host's own page auto-change settings; the grid comes
// entirely from the compiled page.
func (r *Renderer) Render(page autopage.CompiledPage, recipe *autopage.Recipe) ([]byte, error) {
	doc := pageDoc{
		Settings: map[string]any{},
		Keys:     make(map[string]keyDoc, len(page.Grid)),
	}

	if ac := autoChangeSettings(recipe); ac != nil {
		doc.Settings["auto-change"] = ac
	}
	if page.Background != "" {
		doc.Settings["background"] = map[string]any{
			"show": true,
			"path": page.Background,
		}
	}

	for _, button := range page.Grid {
		// The host addresses keys column-first.
		loc := fmt.Sprintf("%dx%d", button.Coord.Col, button.Coord.Row)
		doc.Keys[loc] = keyDoc{
			States: map[string]stateDoc{"0": r.buttonState(page.PageName, button)},
		}
	}

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal page: %w", err)
	}

	return out, nil
}

func (r *Renderer) buttonState(pageName string, button autopage.ResolvedButton) stateDoc {
	state := stateDoc{
		Actions: []actionDoc{},
		Background: &backgroundDoc{
			Color: [4]int{int(button.Color.R), int(button.Color.G), int(button.Color.B), int(button.Color.A)},
		},
	}

	if button.Action != "" {
		action, err := r.action(button.Action)
		if err != nil {
			// A bad shorthand leaves the button actionless but visible.
			r.log.Warnw("dropping button action", "page", pageName, "coord", button.Coord.String(), "error", err)
		} else {
			state.Actions = append(state.Actions, action)
		}
	}

	labels := make(map[string]labelDoc)
	if button.Labels.Top != "" {
		labels["top"] = labelDoc{Text: button.Labels.Top}
	}
	if button.Labels.Center != "" {
		labels["center"] = labelDoc{Text: button.Labels.Center}
	}
	if button.Labels.Bottom != "" {
		labels["bottom"] = labelDoc{Text: button.Labels.Bottom}
	}
	if len(labels) > 0 {
		state.Labels = labels
	}

	if button.Icon != nil {
		state.Media = &mediaDoc{Path: button.Icon.AssetPath}
	}

	return state
}

func (r *Renderer) action(descriptor string) (actionDoc, error) {
	if strings.Contains(descriptor, "::") {
		return actionDoc{ID: descriptor, Settings: map[string]any{}}, nil
	}

	events, err := keys.FromShorthand(descriptor)
	if err != nil {
		return actionDoc{}, fmt.Errorf("hotkey shorthand %q: %w", descriptor, err)
	}

	pairs := make([][2]int, 0, len(events))
	for _, ev := range events {
		pairs = append(pairs, [2]int{ev.Code, ev.State})
	}

	return actionDoc{
		ID:       hotkeyActionID,
		Settings: map[string]any{"keys": pairs},
	}, nil
}

// autoChangeSettings emits the host's own window-matching config so the
// page also activates when the host sees the window itself.
func autoChangeSettings(recipe *autopage.Recipe) map[string]any {
	ac := map[string]any{}
	for _, key := range recipe.Keys {
		pattern, ok := key.(autopage.KeyPattern)
		if !ok {
			continue
		}
		if pattern.Class != nil {
			ac["wm-class"] = pattern.Class.String()
		}
		if pattern.Name != nil {
			ac["title"] = pattern.Name.String()
		}
	}

	if len(ac) == 0 {
		return nil
	}

	ac["enable"] = true
	ac["stay-on-page"] = false
	return ac
}
