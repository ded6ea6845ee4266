package autopage

import "fmt"

// DiagnosticKind tags a non-fatal condition found while compiling a page.
type DiagnosticKind int

const (
	// DiagUnresolvedIcon means an icon request matched nothing; the button
	// is still placed without an icon.
	DiagUnresolvedIcon DiagnosticKind = iota
	// DiagPlacementConflict means two buttons declared the same coordinate;
	// the later one was dropped.
	DiagPlacementConflict
	// DiagGridFull means auto-placement ran out of cells; the button was
	// dropped.
	DiagGridFull
)

// Diagnostic is a non-fatal per-button condition. None of these stop the
// page from being generated.
type Diagnostic struct {
	Kind   DiagnosticKind
	Button int // index into the recipe's button list
	Detail string
}

func (d Diagnostic) String() string { return d.Detail }

// Compiler turns recipes into concrete page layouts for one controller
// geometry.
type Compiler struct {
	Rows int
	Cols int
}

const (
	DefaultRows = 4
	DefaultCols = 5
)

// NewCompiler builds a compiler for the given grid. Non-positive dimensions
// fall back to the default controller geometry.
func NewCompiler(rows, cols int) *Compiler {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return &Compiler{Rows: rows, Cols: cols}
}

// Compile places the recipe's buttons on the grid. Buttons with an explicit
// coordinate are placed first, in declaration order; a duplicate explicit
// coordinate drops the later button. The remaining buttons fill free cells
// in row-major order, wrapping at Cols and skipping cells taken by explicit
// placements. Icon lookups come precomputed in iconResolutions, keyed by
// the button's icon request; a nil entry leaves the button iconless.
//
// Deterministic: the same recipe and resolutions always produce the same
// page.
func (c *Compiler) Compile(recipe *Recipe, iconResolutions map[string]*IconCatalogEntry) (CompiledPage, []Diagnostic) {
	page := CompiledPage{
		PageName:   recipe.PageName,
		Background: recipe.Background,
	}

	var diags []Diagnostic
	occupied := make(map[Coord]bool)

	place := func(idx int, spec ButtonSpec, coord Coord) {
		occupied[coord] = true

		color := DefaultColor
		if spec.Color != nil {
			color = *spec.Color
		}

		page.Grid = append(page.Grid, ResolvedButton{
			Coord:  coord,
			Icon:   iconResolutions[spec.IconRequest],
			Action: spec.Action,
			Color:  color,
			Labels: spec.Labels,
		})

		if spec.IconRequest != "" && iconResolutions[spec.IconRequest] == nil {
			diags = append(diags, Diagnostic{
				Kind:   DiagUnresolvedIcon,
				Button: idx,
				Detail: fmt.Sprintf("icon unresolved: %s", spec.IconRequest),
			})
		}
	}

	// Explicit coordinates win over auto-placement, so they go in first.
	for idx, spec := range recipe.Buttons {
		if spec.Coord == nil {
			continue
		}

		if occupied[*spec.Coord] {
			diags = append(diags, Diagnostic{
				Kind:   DiagPlacementConflict,
				Button: idx,
				Detail: fmt.Sprintf("placement conflict at %s", *spec.Coord),
			})
			continue
		}

		place(idx, spec, *spec.Coord)
	}

	next := Coord{}
	for idx, spec := range recipe.Buttons {
		if spec.Coord != nil {
			continue
		}

		coord, ok := c.nextFree(&next, occupied)
		if !ok {
			diags = append(diags, Diagnostic{
				Kind:   DiagGridFull,
				Button: idx,
				Detail: fmt.Sprintf("grid full, dropping button %d", idx),
			})
			continue
		}

		place(idx, spec, coord)
	}

	return page, diags
}

// nextFree advances the row-major cursor to the first unoccupied cell.
func (c *Compiler) nextFree(cursor *Coord, occupied map[Coord]bool) (Coord, bool) {
	for cursor.Row < c.Rows {
		coord := *cursor

		cursor.Col++
		if cursor.Col >= c.Cols {
			cursor.Col = 0
			cursor.Row++
		}

		if !occupied[coord] {
			return coord, true
		}
	}

	return Coord{}, false
}
