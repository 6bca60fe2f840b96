// Package meta is the type-introspection capability behind the traversal
// engine: it enumerates the named fields of a struct type, most-derived level
// first, and resolves each field's emitted name and declaring type. Embedded
// structs play the role of ancestor types.
package meta

import (
	"fmt"
	"reflect"
)

// Field is one named property of a structured object.
type Field struct {
	// Name is the emitted field name, after any `facet:"name"` tag override.
	Name string
	// Declaring is the struct type that literally declares the field.
	Declaring reflect.Type
	// StructField carries the raw tag and type information for metadata
	// providers.
	StructField reflect.StructField

	index []int
}

// Read resolves the field's value on v, navigating through any embedded
// structs on the way. A nil embedded pointer makes the field unreadable;
// that is a recoverable condition the engine reports and skips.
func (f Field) Read(v reflect.Value) (reflect.Value, error) {
	for _, i := range f.index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, fmt.Errorf("nil embedded %s", v.Type().Elem())
			}
			v = v.Elem()
		}
		v = v.Field(i)
	}
	return v, nil
}

// Fields enumerates the exported named fields of t in traversal order: the
// struct's own non-embedded fields in declaration order, then each embedded
// type's fields, recursively. A name shadowed at a more derived level is
// visited exactly once. Non-struct types yield no fields.
func Fields(t reflect.Type) []Field {
	var out []Field
	collect(t, nil, map[string]bool{}, &out)
	return out
}

func collect(t reflect.Type, index []int, seen map[string]bool, out *[]Field) {
	if t.Kind() != reflect.Struct {
		return
	}
	var embedded []int
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous {
			embedded = append(embedded, i)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name := FieldName(sf)
		if seen[name] {
			continue
		}
		seen[name] = true
		*out = append(*out, Field{
			Name:        name,
			Declaring:   t,
			StructField: sf,
			index:       append(append([]int(nil), index...), i),
		})
	}
	for _, i := range embedded {
		et := t.Field(i).Type
		if et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		collect(et, append(append([]int(nil), index...), i), seen, out)
	}
}

// FieldName resolves the emitted name of sf: the `facet` tag value when
// present (and not the hide marker), the Go field name otherwise.
func FieldName(sf reflect.StructField) string {
	if tag := sf.Tag.Get("facet"); tag != "" && tag != "-" {
		return tag
	}
	return sf.Name
}
