package api

import "reflect"

// Metadata supplies the default per-field visibility verdicts. The engine is
// agnostic to how the metadata is declared; the default provider reads struct
// tags and a type-level hidden list, but a schema- or config-backed provider
// can be swapped in.
type Metadata interface {
	// HiddenAlways reports whether the field itself is marked hidden.
	HiddenAlways(field reflect.StructField) bool
	// HiddenByTypeList reports whether the declaring type hides the named
	// field through a type-level list.
	HiddenByTypeList(declaring reflect.Type, name string) bool
}
