package autopage

import (
	"fmt"
	"strings"
)

// WindowObservation is a snapshot of the foreground window, taken once per
// focus-change event.
type WindowObservation struct {
	Class string
	Title string
	PID   int
	// Env holds the owning process' environment, when the window source
	// could read it. Only used for storefront app-id extraction.
	Env map[string]string
}

// Storefront identifies a game/app store whose numeric ids can key recipes.
type Storefront string

const (
	StorefrontSteam Storefront = "steam"
)

// Identity is a resolved descriptor of "which application this is".
// The variant set is closed: matching code switches over all of them.
type Identity interface {
	isIdentity()
	String() string
}

// PackageIdentity is a reverse-domain application id, e.g. "org.mozilla.firefox".
type PackageIdentity struct {
	Namespace string
}

// StorefrontIdentity is a numeric app id within a store.
type StorefrontIdentity struct {
	Store Storefront
	AppID int64
}

// PatternIdentity carries the raw window class and title. As a candidate the
// fields are concrete values to be matched against recipe patterns.
type PatternIdentity struct {
	Class string
	Title string
}

func (PackageIdentity) isIdentity()    {}
func (StorefrontIdentity) isIdentity() {}
func (PatternIdentity) isIdentity()    {}

func (i PackageIdentity) String() string { return "package:" + i.Namespace }

func (i StorefrontIdentity) String() string {
	return fmt.Sprintf("%s:%d", i.Store, i.AppID)
}

func (i PatternIdentity) String() string {
	return fmt.Sprintf("window:%s,%s", i.Class, i.Title)
}

// Coord addresses a button cell on the controller grid.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// RGBA is a button color. The zero value is fully transparent black.
type RGBA struct {
	R, G, B, A uint8
}

// DefaultColor is used for buttons whose recipe sets no color.
var DefaultColor = RGBA{R: 0, G: 0, B: 0, A: 255}

// ParseRGBA parses "#RRGGBB", "#RRGGBBAA", "0xRRGGBB" or "0xRRGGBBAA".
// The 6-digit form defaults alpha to 255.
func ParseRGBA(s string) (RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"), "#")

	var c RGBA
	switch len(hex) {
	case 6:
		_, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		c.A = 255
	case 8:
		_, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	default:
		return RGBA{}, fmt.Errorf("parse color %q: expected 6 or 8 hex digits", s)
	}

	return c, nil
}

// Labels are the button's text slots.
type Labels struct {
	Top    string
	Center string
	Bottom string
}

// ButtonSpec is one button entry of a recipe. Coord and Color are optional;
// an unset Coord requests auto-placement.
type ButtonSpec struct {
	IconRequest string
	Action      string
	Color       *RGBA
	Coord       *Coord
	Labels      Labels
}

// IconCatalogEntry is one installed icon asset.
type IconCatalogEntry struct {
	Pack      string
	Name      string
	AssetPath string
}

// ResolvedButton is a placed button. Icon is nil when no catalog entry
// matched the request; the button is still shown with its action and color.
type ResolvedButton struct {
	Coord  Coord
	Icon   *IconCatalogEntry
	Action string
	Color  RGBA
	Labels Labels
}

// CompiledPage is the output of layout compilation. Coords in Grid are
// pairwise distinct.
type CompiledPage struct {
	PageName   string
	Background string
	Grid       []ResolvedButton
}

// Action is the page reconciliation decision.
type Action int

const (
	ActionCreate Action = iota
	ActionReplace
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionReplace:
		return "replace"
	case ActionSkip:
		return "skip"
	}
	return fmt.Sprintf("action(%d)", int(a))
}
