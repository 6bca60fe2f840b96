// Package facet renders arbitrary acyclic object graphs to JSON (or any
// api.Sink) with per-call, path-scoped include/exclude rules keyed by
// declaring type, layered over tag-driven default field visibility.
//
//	view := api.NewView(user).
//		ForType(User{}, api.NewMatch().Exclude("contact.phone"))
//	out, err := facet.Marshal(view)
package facet

import (
	"bytes"
	"io"

	"go.uber.org/zap"

	"github.com/agentic-research/facet/api"
	"github.com/agentic-research/facet/internal/engine"
	"github.com/agentic-research/facet/internal/meta"
	"github.com/agentic-research/facet/internal/sink"
	"github.com/agentic-research/facet/internal/viscache"
)

// Serializer runs filtered traversals. One Serializer may serve many
// concurrent Serialize calls; per-call traversal state is call-local and the
// shared visibility cache is concurrency-safe.
type Serializer struct {
	cache *viscache.Cache
	meta  api.Metadata
	log   *zap.Logger
	diag  func(api.FieldError)
}

// Option configures a Serializer.
type Option func(*config)

type config struct {
	capacity int
	meta     api.Metadata
	log      *zap.Logger
	diag     func(api.FieldError)
}

// WithCacheCapacity sets the visibility cache's soft cap (default 1000).
func WithCacheCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithMetadata swaps the default tag-backed visibility provider.
func WithMetadata(m api.Metadata) Option {
	return func(c *config) { c.meta = m }
}

// WithLogger routes per-field diagnostics to l instead of discarding them.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.log = l }
}

// WithDiagnostics registers a callback invoked for every recoverable
// per-field read failure, in addition to logging.
func WithDiagnostics(fn func(api.FieldError)) Option {
	return func(c *config) { c.diag = fn }
}

// New builds a Serializer.
func New(opts ...Option) *Serializer {
	c := config{
		capacity: viscache.DefaultCapacity,
		meta:     meta.TagMetadata{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return &Serializer{
		cache: viscache.New(c.capacity),
		meta:  c.meta,
		log:   c.log,
		diag:  c.diag,
	}
}

// Serialize walks the view's root value and emits it through out. Sink
// failures abort the call; per-field read failures are reported and skipped.
func (s *Serializer) Serialize(v *api.View, out api.Sink) error {
	return engine.New(out, v, s.meta, s.cache, s.log, s.diag).Write("", v.Value())
}

// Marshal serializes the view to compact JSON.
func (s *Serializer) Marshal(v *api.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Serialize(v, sink.NewJSON(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// defaultSerializer backs the package-level helpers, giving all callers one
// process-wide visibility cache.
var defaultSerializer = New()

// Marshal serializes the view with the package-level Serializer.
func Marshal(v *api.View) ([]byte, error) {
	return defaultSerializer.Marshal(v)
}

// Serialize emits the view through out with the package-level Serializer.
func Serialize(v *api.View, out api.Sink) error {
	return defaultSerializer.Serialize(v, out)
}

// NewJSONSink returns the shipped JSON sink; it exists so callers outside
// this module can target custom writers without importing internal packages.
func NewJSONSink(w io.Writer) api.Sink {
	return sink.NewJSON(w)
}
