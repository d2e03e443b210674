package catalog

import (
	"context"
	"sync/atomic"

	"github.com/secmon-lab/pathfinder/pkg/domain/model"
)

// Holder publishes the process-wide catalog. Readers always see a fully
// materialized catalog; reloads swap in a new instance.
type Holder struct {
	current atomic.Pointer[model.Catalog]
	loader  *Loader
}

// NewHolder loads the catalog once and publishes it
func NewHolder(ctx context.Context, loader *Loader) *Holder {
	h := &Holder{loader: loader}
	h.Reload(ctx)
	return h
}

// NewStaticHolder publishes a fixed catalog. Reload is a no-op.
func NewStaticHolder(c *model.Catalog) *Holder {
	h := &Holder{}
	h.Store(c)
	return h
}

// Get returns the current catalog
func (h *Holder) Get() *model.Catalog {
	return h.current.Load()
}

// Store publishes c as the current catalog
func (h *Holder) Store(c *model.Catalog) {
	h.current.Store(c)
	questions.Set(float64(c.Len()))
}

// Reload materializes the catalog again from the loader's sources
func (h *Holder) Reload(ctx context.Context) {
	if h.loader == nil {
		return
	}
	h.Store(h.loader.Load(ctx))
}
