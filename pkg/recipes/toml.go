package recipes

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"codeberg.org/martonv/autopage/pkg/autopage"
)

// Recipe documents are TOML files named like "firefox.ap.toml".
const fileSuffix = ".ap.toml"

type recipeDoc struct {
	Page       string      `toml:"page"`
	Background string      `toml:"background"`
	Match      []matchDoc  `toml:"match"`
	Button     []buttonDoc `toml:"button"`
}

type matchDoc struct {
	Class   string `toml:"class"`
	Name    string `toml:"name"`
	Package string `toml:"package"`
	Steam   int64  `toml:"steam"`
}

type buttonDoc struct {
	Icon       string `toml:"icon"`
	Location   string `toml:"location"`
	Top        string `toml:"top"`
	Center     string `toml:"center"`
	Bottom     string `toml:"bottom"`
	Background string `toml:"background"`
	Action     string `toml:"action"`
}

// ParseFile loads one recipe document. The page name defaults to the file
// name with the ".ap.toml" suffix stripped.
func ParseFile(path string) (*autopage.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}

	name := filepath.Base(path)
	name = strings.TrimSuffix(strings.TrimSuffix(name, fileSuffix), ".toml")

	return Parse(data, name)
}

// Parse decodes a recipe document. defaultPage names the page when the
// document doesn't.
func Parse(data []byte, defaultPage string) (*autopage.Recipe, error) {
	var doc recipeDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	if len(doc.Match) == 0 {
		return nil, fmt.Errorf("recipe has no [[match]] table")
	}

	recipe := &autopage.Recipe{
		PageName:   doc.Page,
		Background: doc.Background,
	}
	if recipe.PageName == "" {
		recipe.PageName = defaultPage
	}
	if recipe.PageName == "" {
		return nil, fmt.Errorf("recipe has no page name")
	}

	for i, m := range doc.Match {
		key, err := parseMatch(m)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}
		recipe.Keys = append(recipe.Keys, key)
	}

	for i, b := range doc.Button {
		spec, err := parseButton(b)
		if err != nil {
			return nil, fmt.Errorf("button %d: %w", i, err)
		}
		recipe.Buttons = append(recipe.Buttons, spec)
	}

	return recipe, nil
}

// parseMatch turns one [[match]] table into a recipe key. Exactly one
// addressing scheme per table.
func parseMatch(m matchDoc) (autopage.RecipeKey, error) {
	schemes := 0
	if m.Steam != 0 {
		schemes++
	}
	if m.Package != "" {
		schemes++
	}
	if m.Class != "" || m.Name != "" {
		schemes++
	}

	switch {
	case schemes == 0:
		return nil, fmt.Errorf("empty match table")
	case schemes > 1:
		return nil, fmt.Errorf("match table mixes addressing schemes")
	}

	if m.Steam != 0 {
		if m.Steam < 0 {
			return nil, fmt.Errorf("negative steam app id %d", m.Steam)
		}
		return autopage.KeyStorefront{Store: autopage.StorefrontSteam, AppID: m.Steam}, nil
	}

	if m.Package != "" {
		return autopage.KeyPackage{Namespace: m.Package}, nil
	}

	key := autopage.KeyPattern{}
	if m.Class != "" {
		re, err := regexp.Compile(m.Class)
		if err != nil {
			return nil, fmt.Errorf("class pattern: %w", err)
		}
		key.Class = re
	}
	if m.Name != "" {
		re, err := regexp.Compile(m.Name)
		if err != nil {
			return nil, fmt.Errorf("name pattern: %w", err)
		}
		key.Name = re
	}
	return key, nil
}

func parseButton(b buttonDoc) (autopage.ButtonSpec, error) {
	spec := autopage.ButtonSpec{
		IconRequest: b.Icon,
		Action:      b.Action,
		Labels: autopage.Labels{
			Top:    b.Top,
			Center: b.Center,
			Bottom: b.Bottom,
		},
	}

	if b.Location != "" {
		coord, err := parseLocation(b.Location)
		if err != nil {
			return autopage.ButtonSpec{}, err
		}
		spec.Coord = &coord
	}

	if b.Background != "" {
		color, err := autopage.ParseRGBA(b.Background)
		if err != nil {
			return autopage.ButtonSpec{}, err
		}
		spec.Color = &color
	}

	return spec, nil
}

// parseLocation decodes the "CxR" form used by the controller app, e.g.
// "1x2" is column 1, row 2.
func parseLocation(s string) (autopage.Coord, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return autopage.Coord{}, fmt.Errorf("invalid location %q", s)
	}

	col, err := strconv.Atoi(parts[0])
	if err != nil {
		return autopage.Coord{}, fmt.Errorf("invalid location %q: %w", s, err)
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil {
		return autopage.Coord{}, fmt.Errorf("invalid location %q: %w", s, err)
	}

	if col < 0 || row < 0 {
		return autopage.Coord{}, fmt.Errorf("invalid location %q", s)
	}

	return autopage.Coord{Row: row, Col: col}, nil
}

// LoadDir parses every recipe document in dir, in lexical order so "first
// loaded" is stable between runs. A malformed document is logged and
// skipped; it never blocks the rest of the directory.
func LoadDir(dir string, log *zap.SugaredLogger) ([]*autopage.Recipe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read recipe dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var recipes []*autopage.Recipe
	for _, name := range names {
		recipe, err := ParseFile(filepath.Join(dir, name))
		if err != nil {
			log.Warnw("skipping malformed recipe", "file", name, "error", err)
			continue
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}
