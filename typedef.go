package xdr

import (
	"fmt"
	"unsafe"
)

// Scalar is the set of Go types with a fixed-width integer XDR form.
type Scalar interface {
	~int32 | ~uint32 | ~int64 | ~uint64
}

// Type is a named XDR type with its encode/decode pair.
type Type[T any] struct {
	name   string
	encode func(*Encoder, T) error
	decode func(*Decoder) (T, error)
}

// Built-in XDR primitive types
var (
	Int           = Type[int32]{"int", (*Encoder).EncodeInt32, (*Decoder).DecodeInt32}
	UnsignedInt   = Type[uint32]{"unsigned int", (*Encoder).EncodeUint32, (*Decoder).DecodeUint32}
	Hyper         = Type[int64]{"hyper", (*Encoder).EncodeInt64, (*Decoder).DecodeInt64}
	UnsignedHyper = Type[uint64]{"unsigned hyper", (*Encoder).EncodeUint64, (*Decoder).DecodeUint64}
	Bool          = Type[bool]{"bool", (*Encoder).EncodeBool, (*Decoder).DecodeBool}
)

// Name returns the schema name of the type
func (t Type[T]) Name() string {
	return t.name
}

// Rename returns a typedef of t called name that keeps t's Go type. Use it
// for types Typedef cannot convert, such as Bool or an enum aliased as itself.
func (t Type[T]) Rename(name string) Type[T] {
	return Type[T]{name: name, encode: t.encode, decode: t.decode}
}

// Encode encodes v
func (t Type[T]) Encode(enc *Encoder, v T) error {
	return t.encode(enc, v)
}

// Decode decodes one value
func (t Type[T]) Decode(dec *Decoder) (T, error) {
	return t.decode(dec)
}

// Marshal encodes v into a new buffer
func (t Type[T]) Marshal(v T) ([]byte, error) {
	return Marshal(typeCodec[T]{t: t, v: &v})
}

// Unmarshal decodes data, which must hold exactly one value
func (t Type[T]) Unmarshal(data []byte) (T, error) {
	var v T
	err := Unmarshal(data, typeCodec[T]{t: t, v: &v})
	return v, err
}

// typeCodec adapts a Type and a value slot to the Codec interface.
type typeCodec[T any] struct {
	t Type[T]
	v *T
}

func (c typeCodec[T]) Encode(enc *Encoder) error {
	return c.t.encode(enc, *c.v)
}

func (c typeCodec[T]) Decode(dec *Decoder) error {
	v, err := c.t.decode(dec)
	if err != nil {
		return err
	}
	*c.v = v
	return nil
}

// Typedef declares name as an alias of base whose Go representation is A.
// The wire form is exactly base's; only the name differs. A and T must
// have the same width.
func Typedef[A, T Scalar](name string, base Type[T]) Type[A] {
	var a A
	var t T
	if unsafe.Sizeof(a) != unsafe.Sizeof(t) {
		panic(fmt.Sprintf("xdr: typedef %s: %T is not as wide as %s", name, a, base.name))
	}
	return Type[A]{
		name: name,
		encode: func(enc *Encoder, v A) error {
			return base.encode(enc, T(v))
		},
		decode: func(dec *Decoder) (A, error) {
			v, err := base.decode(dec)
			return A(v), err
		},
	}
}
