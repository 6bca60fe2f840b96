package api

// Sink consumes the engine's emission events and performs the actual
// serialization. The engine sequences calls; it does no buffering or
// formatting of its own. Any error returned aborts the root call.
type Sink interface {
	BeginObject() error
	EndObject() error
	BeginArray() error
	EndArray() error
	// FieldName announces the name of the next value inside an object.
	FieldName(name string) error
	// Scalar emits a primitive value. A nil argument emits a null.
	Scalar(value any) error
}
