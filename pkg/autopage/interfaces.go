package autopage

// WindowSource delivers foreground window observations, one per
// focus-change event. ReadObservation blocks until the next event.
type WindowSource interface {
	ReadObservation() (WindowObservation, error)
}

// RecipeSource looks up the recipe for a set of candidate identities,
// most specific candidate first. A nil result means no recipe applies,
// which is the common case.
type RecipeSource interface {
	Lookup(candidates []Identity) *Recipe
}

// PageHost is the controller host application's page collection.
type PageHost interface {
	Pages() ([]string, error)
	AddPage(name string, doc []byte) error
	RemovePage(name string) error
}

// PageRenderer serializes a compiled page into the host's page document
// format.
type PageRenderer interface {
	Render(page CompiledPage, recipe *Recipe) ([]byte, error)
}

// GeneratedRecord remembers which page names this tool has generated, so
// reconciliation can tell them apart from pages the user authored.
type GeneratedRecord interface {
	Generated() (map[string]bool, error)
	Record(name string) error
}
