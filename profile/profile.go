// Package profile loads named view definitions from HCL files and binds them
// to registered Go types, so applications can keep their include/exclude
// rules in configuration instead of code:
//
//	profile "summary" {
//	  match "User" {
//	    includes = ["name", "contact.*"]
//	    excludes = ["contact.phone"]
//	  }
//	}
package profile

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/agentic-research/facet/api"
)

// File is the decoded form of one profile file.
type File struct {
	Profiles []Profile `hcl:"profile,block"`
}

// Profile is one named set of per-type rules.
type Profile struct {
	Name  string `hcl:"name,label"`
	Rules []Rule `hcl:"match,block"`
}

// Rule scopes pattern lists to a registered type name.
type Rule struct {
	Type     string   `hcl:"type,label"`
	Includes []string `hcl:"includes,optional"`
	Excludes []string `hcl:"excludes,optional"`
}

// Load reads and decodes an HCL profile file.
func Load(path string) (*File, error) {
	var f File
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, fmt.Errorf("decode profiles %s: %w", path, err)
	}
	return &f, nil
}

// Parse decodes profile source held in memory. filename only picks the
// syntax (.hcl or .json) and labels diagnostics.
func Parse(filename string, src []byte) (*File, error) {
	var f File
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, fmt.Errorf("decode profiles %s: %w", filename, err)
	}
	return &f, nil
}

// Profile finds a profile by name.
func (f *File) Profile(name string) (*Profile, bool) {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i], true
		}
	}
	return nil, false
}

// Registry maps the type names used in profile files to Go types. It is safe
// for concurrent use; registration normally happens at startup.
type Registry struct {
	mu    sync.RWMutex
	types map[string]reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]reflect.Type)}
}

// Register binds name to the type of sample (pointers are dereferenced).
func (r *Registry) Register(name string, sample any) {
	t := reflect.TypeOf(sample)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// Resolve returns the type registered under name.
func (r *Registry) Resolve(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// View builds an api.View for root from the named profile. Every rule's type
// name must be registered; unknown names are an error rather than a silent
// no-op, since a typo would otherwise leak fields.
func (r *Registry) View(f *File, name string, root any) (*api.View, error) {
	p, ok := f.Profile(name)
	if !ok {
		return nil, fmt.Errorf("profile %q not defined", name)
	}
	v := api.NewView(root)
	for _, rule := range p.Rules {
		t, ok := r.Resolve(rule.Type)
		if !ok {
			return nil, fmt.Errorf("profile %q: type %q not registered", name, rule.Type)
		}
		v.ForType(reflect.New(t).Elem().Interface(), &api.Match{
			Includes: rule.Includes,
			Excludes: rule.Excludes,
		})
	}
	return v, nil
}
