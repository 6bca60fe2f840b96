package api

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type widget struct{ Name string }

func TestMatchBuilder(t *testing.T) {
	m := NewMatch().Include("a", "b.*").Exclude("b.secret")
	assert.Equal(t, []string{"a", "b.*"}, m.Includes)
	assert.Equal(t, []string{"b.secret"}, m.Excludes)
}

func TestView_ForTypeDereferencesPointers(t *testing.T) {
	m := NewMatch().Exclude("x")
	v := NewView(widget{}).ForType(&widget{}, m)

	assert.Same(t, m, v.MatchFor(reflect.TypeOf(widget{})))
	assert.Nil(t, v.MatchFor(reflect.TypeOf(0)))
}

func TestView_Value(t *testing.T) {
	w := widget{Name: "n"}
	assert.Equal(t, w, NewView(w).Value())
}
