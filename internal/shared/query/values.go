package query

// Values is an ordered list of field/value pairs for Create and Update.
// Order is preserved so the generated SQL is deterministic, and only fields
// explicitly Set participate — which is what gives Update its partial
// semantics (an unset field is untouched, not nulled).
type Values struct {
	names []string
	args  []interface{}
}

func NewValues() *Values {
	return &Values{}
}

// Set records a field value. Chainable.
func (v *Values) Set(field string, value interface{}) *Values {
	v.names = append(v.names, field)
	v.args = append(v.args, value)
	return v
}

// SetIf records the value only when the pointer is non-nil, dereferenced.
// This is the partial-update path: handlers decode into pointer-field DTOs
// and forward only what the client actually sent.
func SetIf[V any](v *Values, field string, ptr *V) *Values {
	if ptr != nil {
		v.Set(field, *ptr)
	}
	return v
}

// Len reports the number of recorded fields.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.names)
}

// Fields returns the recorded field names in insertion order.
func (v *Values) Fields() []string {
	return v.names
}
