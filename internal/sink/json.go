// Package sink ships the JSON implementation of api.Sink. It only sequences
// structural characters; scalar and name encoding is delegated to ojg.
package sink

import (
	"fmt"
	"io"

	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/facet/api"
)

type frame struct {
	array bool
	count int
}

// JSON streams compact JSON to an io.Writer as emission events arrive. It
// trusts the engine to produce a well-formed event sequence; it only tracks
// enough state to place commas.
type JSON struct {
	w         io.Writer
	stack     []frame
	afterName bool
}

var _ api.Sink = (*JSON)(nil)

func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (s *JSON) BeginObject() error {
	if err := s.beginValue(); err != nil {
		return err
	}
	s.stack = append(s.stack, frame{})
	return s.write("{")
}

func (s *JSON) EndObject() error {
	if len(s.stack) == 0 || s.stack[len(s.stack)-1].array {
		return fmt.Errorf("unbalanced end of object")
	}
	s.stack = s.stack[:len(s.stack)-1]
	return s.write("}")
}

func (s *JSON) BeginArray() error {
	if err := s.beginValue(); err != nil {
		return err
	}
	s.stack = append(s.stack, frame{array: true})
	return s.write("[")
}

func (s *JSON) EndArray() error {
	if len(s.stack) == 0 || !s.stack[len(s.stack)-1].array {
		return fmt.Errorf("unbalanced end of array")
	}
	s.stack = s.stack[:len(s.stack)-1]
	return s.write("]")
}

func (s *JSON) FieldName(name string) error {
	if len(s.stack) == 0 || s.stack[len(s.stack)-1].array {
		return fmt.Errorf("field name %q outside object", name)
	}
	top := &s.stack[len(s.stack)-1]
	if top.count > 0 {
		if err := s.write(","); err != nil {
			return err
		}
	}
	top.count++
	s.afterName = true
	return s.write(oj.JSON(name) + ":")
}

func (s *JSON) Scalar(value any) error {
	if err := s.beginValue(); err != nil {
		return err
	}
	return s.write(oj.JSON(value))
}

// beginValue places the separator owed before a value in array position.
// A value following a field name owes nothing: FieldName paid already.
func (s *JSON) beginValue() error {
	if s.afterName {
		s.afterName = false
		return nil
	}
	if len(s.stack) == 0 {
		return nil
	}
	top := &s.stack[len(s.stack)-1]
	if !top.array {
		return fmt.Errorf("value without field name inside object")
	}
	if top.count > 0 {
		if err := s.write(","); err != nil {
			return err
		}
	}
	top.count++
	return nil
}

func (s *JSON) write(text string) error {
	_, err := io.WriteString(s.w, text)
	return err
}
