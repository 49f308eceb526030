// Package suggest is the core, providing the debounced, cached lookup pipeline and the
// per-field selection state behind a city autocomplete.
//
// A Controller owns one field: input goes through a Debouncer, the quiet-period
// query goes to a Finder (normally a *Fetcher shared between fields), and the
// resulting CandidateList drives a Selection that keyboard and pointer events
// move around. Everything the user sees is pushed to a Surface; committed values
// land in a Binding.
package suggest

import "context"

// Finder resolves a query into a candidate list.
type Finder interface {
	// Fetch returns candidates for query. Implementations should only fail when
	// ctx is done; data source problems are expected to degrade to a fallback.
	Fetch(ctx context.Context, query string) (CandidateList, error)
}

// Source is the remote data source queried by a Fetcher.
type Source interface {
	// Search returns the raw payload for query. Any error sends the fetcher to
	// its fallback list.
	Search(ctx context.Context, query string) ([]byte, error)
}

// Surface renders the state of one field's suggestion list.
// Render is called from timer goroutines and must not call back into the
// Controller synchronously.
type Surface interface {
	Render(v View)
}

// Binding is the field a controller writes committed candidates into.
type Binding interface {
	// SetValue records raw typed text.
	SetValue(v string)

	// Commit writes a chosen candidate and notifies listeners.
	Commit(c Candidate)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, query string) ([]byte, error)

// Search calls f.
func (f SourceFunc) Search(ctx context.Context, query string) ([]byte, error) {
	return f(ctx, query)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(v View)

// Render calls f.
func (f SurfaceFunc) Render(v View) {
	f(v)
}
