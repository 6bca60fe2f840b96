// Package engine drives the filtered traversal: it classifies each value,
// emits it through the sink, and consults the match resolver and visibility
// cache to decide, per named field, whether to recurse.
package engine

import (
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/agentic-research/facet/api"
	"github.com/agentic-research/facet/internal/meta"
	"github.com/agentic-research/facet/internal/pattern"
	"github.com/agentic-research/facet/internal/viscache"
)

// Writer is one traversal frame. Named struct fields recurse within the same
// frame, so their path segments and match context accumulate; every slice
// element and map value gets a brand-new frame with an empty path and no
// inherited match. That container-boundary reset is a contract, not an
// accident: `items.x` never suppresses `x` inside the elements of `items`.
type Writer struct {
	sink  api.Sink
	view  *api.View
	meta  api.Metadata
	cache *viscache.Cache
	log   *zap.Logger
	diag  func(api.FieldError)

	path    []string
	current string
	match   *api.Match
}

// New builds the root frame for one traversal. diag may be nil.
func New(sink api.Sink, view *api.View, md api.Metadata, cache *viscache.Cache, log *zap.Logger, diag func(api.FieldError)) *Writer {
	return &Writer{
		sink:  sink,
		view:  view,
		meta:  md,
		cache: cache,
		log:   log,
		diag:  diag,
	}
}

// fresh starts the frame for a container element: shared sink, view and
// cache, but empty path and no match context.
func (w *Writer) fresh() *Writer {
	return New(w.sink, w.view, w.meta, w.cache, w.log, w.diag)
}

// Write renders value through the sink. A non-empty name scopes the value as
// a named field: the name is pushed onto the path around classification and
// popped again whether or not the inner write succeeds.
func (w *Writer) Write(name string, value any) error {
	if name != "" {
		w.push(name)
		defer w.pop()
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			rv = reflect.Value{}
			break
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		// Only unnamed positions reach here: named nil fields are
		// dropped before recursing.
		return w.sink.Scalar(nil)
	}

	// Classification order is fixed: primitive, then collection, then
	// mapping, then structured-object fallthrough.
	if done, err := w.writePrimitive(rv); done {
		return err
	}
	if done, err := w.writeList(rv); done {
		return err
	}
	if done, err := w.writeMap(rv); done {
		return err
	}
	return w.writeObject(rv)
}

func (w *Writer) writePrimitive(rv reflect.Value) (bool, error) {
	switch rv.Kind() {
	case reflect.String:
		return true, w.sink.Scalar(rv.String())
	case reflect.Bool:
		return true, w.sink.Scalar(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true, w.sink.Scalar(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true, w.sink.Scalar(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return true, w.sink.Scalar(rv.Float())
	default:
		return false, nil
	}
}

func (w *Writer) writeList(rv reflect.Value) (bool, error) {
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return false, nil
	}
	if err := w.sink.BeginArray(); err != nil {
		return true, err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := w.fresh().Write("", rv.Index(i).Interface()); err != nil {
			return true, err
		}
	}
	return true, w.sink.EndArray()
}

func (w *Writer) writeMap(rv reflect.Value) (bool, error) {
	if rv.Kind() != reflect.Map {
		return false, nil
	}
	if err := w.sink.BeginObject(); err != nil {
		return true, err
	}
	iter := rv.MapRange()
	for iter.Next() {
		// Keys are emitted unconditionally in their string form; they
		// are never filtered and never extend the path.
		if err := w.sink.FieldName(keyString(iter.Key())); err != nil {
			return true, err
		}
		if err := w.fresh().Write("", iter.Value().Interface()); err != nil {
			return true, err
		}
	}
	return true, w.sink.EndObject()
}

func keyString(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}
	return fmt.Sprint(key.Interface())
}

// writeObject walks the named fields of a struct value, most-derived level
// first. Anything that is neither primitive, collection nor map lands here;
// a value with no enumerable fields emits an empty object rather than an
// error.
func (w *Writer) writeObject(rv reflect.Value) error {
	if err := w.sink.BeginObject(); err != nil {
		return err
	}
	t := rv.Type()
	for _, f := range meta.Fields(t) {
		val, err := f.Read(rv)
		if err != nil {
			w.report(api.FieldError{Type: t, Field: f.Name, Err: err})
			continue
		}
		if isNull(val) {
			continue
		}
		if !w.fieldAllowed(f) {
			continue
		}
		if err := w.sink.FieldName(f.Name); err != nil {
			return err
		}
		if err := w.Write(f.Name, val.Interface()); err != nil {
			return err
		}
	}
	return w.sink.EndObject()
}

// fieldAllowed resolves the effective match for f and applies the filter
// decision. A match found for f's declaring type (or an ancestor) becomes
// the frame's current match for every later sibling — later fields can see a
// different effective match than earlier ones. That stickiness is observed,
// tested behavior.
func (w *Writer) fieldAllowed(f meta.Field) bool {
	prefix := ""
	if w.current != "" {
		prefix = w.current + "."
	}

	m := w.resolveMatch(f.Declaring)
	if m == nil {
		m = w.match
	}
	if m == nil {
		return !w.hiddenByDefault(f)
	}
	w.match = m
	return (pattern.Matches(m.Includes, prefix+f.Name) || !w.hiddenByDefault(f)) &&
		!pattern.Matches(m.Excludes, prefix+f.Name)
}

// resolveMatch finds the view's match for t, walking embedded types
// depth-first when t itself has none configured.
func (w *Writer) resolveMatch(t reflect.Type) *api.Match {
	if m := w.view.MatchFor(t); m != nil {
		return m
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		et := sf.Type
		if et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		if m := w.resolveMatch(et); m != nil {
			return m
		}
	}
	return nil
}

func (w *Writer) hiddenByDefault(f meta.Field) bool {
	k := viscache.Key{Type: f.Declaring, Name: f.Name}
	if v, ok := w.cache.Get(k); ok {
		return v
	}
	v := w.meta.HiddenAlways(f.StructField) || w.meta.HiddenByTypeList(f.Declaring, f.Name)
	w.cache.Put(k, v)
	return v
}

func (w *Writer) report(ferr api.FieldError) {
	w.log.Warn("skipping unreadable field",
		zap.Stringer("type", ferr.Type),
		zap.String("field", ferr.Field),
		zap.Error(ferr.Err))
	if w.diag != nil {
		w.diag(ferr)
	}
}

func (w *Writer) push(name string) {
	w.path = append(w.path, name)
	w.current = strings.Join(w.path, ".")
}

func (w *Writer) pop() {
	w.path = w.path[:len(w.path)-1]
	w.current = strings.Join(w.path, ".")
}

// isNull reports whether a field value counts as null: nil maps, slices,
// funcs and channels, and any pointer/interface chain with a nil link.
// Chains are unwrapped the same way Write's deref loop unwraps them, so the
// omission decision and the emission classification always agree. Null
// fields are never emitted.
func isNull(rv reflect.Value) bool {
	for rv.IsValid() {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return true
			}
			rv = rv.Elem()
		case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return rv.IsNil()
		default:
			return false
		}
	}
	return true
}
