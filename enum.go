package xdr

import (
	"fmt"
	"slices"
)

// Enum is the member registry of an XDR enumeration whose Go representation
// is T. It is built once, usually in a package-level var, and never changes
// afterwards, so concurrent readers need no locking.
type Enum[T ~int32] struct {
	name    string
	names   map[T]string
	values  map[string]T
	members []T
}

// NewEnum builds the registry for the enum called name. It panics if two
// members share a name.
func NewEnum[T ~int32](name string, members map[T]string) *Enum[T] {
	e := &Enum[T]{
		name:    name,
		names:   make(map[T]string, len(members)),
		values:  make(map[string]T, len(members)),
		members: make([]T, 0, len(members)),
	}
	for v, n := range members {
		if prev, dup := e.values[n]; dup {
			panic(fmt.Sprintf("xdr: enum %s: %s used for both %d and %d", name, n, prev, v))
		}
		e.names[v] = n
		e.values[n] = v
		e.members = append(e.members, v)
	}
	slices.Sort(e.members)
	return e
}

// TypeName returns the schema name of the enum
func (e *Enum[T]) TypeName() string {
	return e.name
}

// Name returns the member name of v, or "Enum(v)" when v is not registered
func (e *Enum[T]) Name(v T) string {
	if n, ok := e.names[v]; ok {
		return n
	}
	return fmt.Sprintf("%s(%d)", e.name, int32(v))
}

// Valid reports whether v is a registered member
func (e *Enum[T]) Valid(v T) bool {
	_, ok := e.names[v]
	return ok
}

// Lookup returns the member called name
func (e *Enum[T]) Lookup(name string) (T, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Members returns the registered members in ascending order
func (e *Enum[T]) Members() []T {
	return slices.Clone(e.members)
}

// Encode writes v as a 4-byte signed integer. Unregistered values are
// written as-is.
func (e *Enum[T]) Encode(enc *Encoder, v T) error {
	return enc.EncodeInt32(int32(v))
}

// Decode reads a 4-byte integer and returns the matching member
func (e *Enum[T]) Decode(dec *Decoder) (T, error) {
	raw, err := dec.DecodeInt32()
	if err != nil {
		return 0, err
	}
	v := T(raw)
	if !e.Valid(v) {
		return 0, fmt.Errorf("%w: %s %d", ErrUnknownEnumValue, e.name, raw)
	}
	return v, nil
}

// Type returns the enum as a Type, for typedefs and union discriminants
func (e *Enum[T]) Type() Type[T] {
	return Type[T]{name: e.name, encode: e.Encode, decode: e.Decode}
}
