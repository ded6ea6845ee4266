package autopage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Engine runs the foreground-window pipeline: one observation in, at most
// one page pushed to the host. All state it touches between events is
// read-only, so a single engine handles consecutive events with no locking.
type Engine struct {
	source   WindowSource
	recipes  RecipeSource
	resolver *Resolver
	compiler *Compiler
	renderer PageRenderer
	host     PageHost
	record   GeneratedRecord
	log      *zap.SugaredLogger
}

func NewEngine(
	source WindowSource,
	recipes RecipeSource,
	resolver *Resolver,
	compiler *Compiler,
	renderer PageRenderer,
	host PageHost,
	record GeneratedRecord,
	log *zap.SugaredLogger,
) *Engine {
	return &Engine{
		source:   source,
		recipes:  recipes,
		resolver: resolver,
		compiler: compiler,
		renderer: renderer,
		host:     host,
		record:   record,
		log:      log,
	}
}

// Run processes observations until the context is cancelled or the window
// source fails. Per-event failures are logged and the loop keeps going: a
// broken recipe or unreachable host for one app must not stop page
// generation for the next one.
func (e *Engine) Run(ctx context.Context) error {
	for {
		obsCh := make(chan WindowObservation)
		errCh := make(chan error)
		go func() {
			obs, err := e.source.ReadObservation()
			if err != nil {
				errCh <- err
				return
			}
			obsCh <- obs
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case obs := <-obsCh:
			if err := e.Process(obs); err != nil {
				e.log.Errorw("process foreground change", "class", obs.Class, "error", err)
			}
		case err := <-errCh:
			return fmt.Errorf("read observation: %w", err)
		}
	}
}

// Process runs one full pass for a single observation.
func (e *Engine) Process(obs WindowObservation) error {
	candidates := DeriveIdentities(obs)
	if len(candidates) == 0 {
		e.log.Debugw("no identity derived", "pid", obs.PID)
		return nil
	}

	recipe := e.recipes.Lookup(candidates)
	if recipe == nil {
		e.log.Debugw("no recipe matched", "class", obs.Class, "title", obs.Title)
		return nil
	}

	page, diags := e.compiler.Compile(recipe, e.resolveIcons(recipe))
	for _, d := range diags {
		e.log.Warnw("layout diagnostic", "page", page.PageName, "detail", d.Detail)
	}

	return e.push(page, recipe)
}

func (e *Engine) resolveIcons(recipe *Recipe) map[string]*IconCatalogEntry {
	resolutions := make(map[string]*IconCatalogEntry)
	for _, b := range recipe.Buttons {
		if b.IconRequest == "" {
			continue
		}
		if _, done := resolutions[b.IconRequest]; done {
			continue
		}
		resolutions[b.IconRequest] = e.resolver.Resolve(b.IconRequest)
	}
	return resolutions
}

func (e *Engine) push(page CompiledPage, recipe *Recipe) error {
	hostPages, err := e.host.Pages()
	if err != nil {
		return fmt.Errorf("list host pages: %w", err)
	}

	generated, err := e.record.Generated()
	if err != nil {
		return fmt.Errorf("load generated-page record: %w", err)
	}

	// Host pages we never generated belong to the user.
	known := make(map[string]bool)
	userOwned := make(map[string]bool)
	for _, name := range hostPages {
		if generated[name] {
			known[name] = true
		} else {
			userOwned[name] = true
		}
	}

	action := Decide(page.PageName, known, userOwned)
	if action == ActionSkip {
		e.log.Infow("page is user-owned, leaving it alone", "page", page.PageName)
		return nil
	}

	doc, err := e.renderer.Render(page, recipe)
	if err != nil {
		return fmt.Errorf("render page %q: %w", page.PageName, err)
	}

	if action == ActionReplace {
		if err := e.host.RemovePage(page.PageName); err != nil {
			return fmt.Errorf("remove page %q: %w", page.PageName, err)
		}
	}

	if err := e.host.AddPage(page.PageName, doc); err != nil {
		return fmt.Errorf("add page %q: %w", page.PageName, err)
	}

	if err := e.record.Record(page.PageName); err != nil {
		return fmt.Errorf("record page %q: %w", page.PageName, err)
	}

	e.log.Infow("pushed page", "page", page.PageName, "action", action.String(), "buttons", len(page.Grid))
	return nil
}
