// Package patch applies partial updates. A nil pointer means the client did
// not send the field.
package patch

// Required copies *v into dst when v was sent and is not the zero value.
// Used for fields that must always hold a value, so "" or 0 keeps the stored one.
func Required[T comparable](dst *T, v *T) bool {
	if v == nil {
		return false
	}
	var zero T
	if *v == zero {
		return false
	}
	*dst = *v
	return true
}

// Optional copies *v into dst whenever v was sent, including zero values,
// so a client can clear the field explicitly.
func Optional[T any](dst *T, v *T) bool {
	if v == nil {
		return false
	}
	*dst = *v
	return true
}

// Changed reports whether any of the apply calls touched a field.
func Changed(applied ...bool) bool {
	for _, a := range applied {
		if a {
			return true
		}
	}
	return false
}
