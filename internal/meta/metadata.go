package meta

import (
	"reflect"

	"github.com/agentic-research/facet/api"
)

// Hider lets a type declare fields hidden by default, the type-level
// counterpart of the `facet:"-"` tag. Include patterns can still resurrect
// the listed fields; exclude patterns always win.
type Hider interface {
	HiddenFields() []string
}

var hiderType = reflect.TypeOf((*Hider)(nil)).Elem()

// TagMetadata is the default api.Metadata provider: a `facet:"-"` tag marks a
// field always hidden, and a Hider implementation hides fields by name at the
// type level.
type TagMetadata struct{}

var _ api.Metadata = TagMetadata{}

func (TagMetadata) HiddenAlways(field reflect.StructField) bool {
	return field.Tag.Get("facet") == "-"
}

func (TagMetadata) HiddenByTypeList(declaring reflect.Type, name string) bool {
	var h Hider
	switch {
	case declaring.Implements(hiderType):
		h = reflect.Zero(declaring).Interface().(Hider)
	case reflect.PointerTo(declaring).Implements(hiderType):
		h = reflect.New(declaring).Interface().(Hider)
	default:
		return false
	}
	for _, hidden := range h.HiddenFields() {
		if hidden == name {
			return true
		}
	}
	return false
}
