package xdr

import (
	"fmt"
	"strings"
)

// Record is a fixed-layout XDR struct: an ordered list of named fields
// encoded by concatenation with no padding, length prefix or separators.
type Record interface {
	SizedCodec
	fmt.Stringer

	// Equal reports whether other has the same declared type and equal
	// fields. Values of different types are never equal.
	Equal(other Record) bool
}

// Field is a named field value used to render a record.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for Field{name, value}.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// FormatRecord renders name(f1=v1, f2=v2) with fields in the given order.
func FormatRecord(name string, fields ...Field) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		fmt.Fprint(&b, f.Value)
	}
	b.WriteByte(')')
	return b.String()
}

// FormatMember renders a union member as shape(payload).
func FormatMember(shape string, payload any) string {
	return fmt.Sprintf("%s(%v)", shape, payload)
}

// Equal reports whether a and b are equal records. Two nil records are
// equal; a nil and a non-nil record are not.
func Equal(a, b Record) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
