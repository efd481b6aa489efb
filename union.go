package xdr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// UnionMember is one arm of a discriminated union. The arm's runtime type
// decides its wire form: Discriminant names the arm and the embedded
// Record encodes its payload.
type UnionMember[D ~int32] interface {
	Record

	// Discriminant returns the tag that selects this arm
	Discriminant() D
}

// Union is a closed family of arms keyed by a discriminant of type D.
//
// The wire form is the 4-byte discriminant followed by the arm payload:
//
//	+--------------+-----------------+
//	| discriminant | arm payload ... |
//	+--------------+-----------------+
//
// Arms are registered during package initialization and the table is only
// read afterwards.
type Union[D ~int32] struct {
	name string
	disc Type[D]
	arms map[D]arm[D]
}

// arm is a registered union arm. typ and void identify the members the
// arm accepts on encode.
type arm[D ~int32] struct {
	newMember func() UnionMember[D]
	typ       reflect.Type
	void      string
}

// NewUnion creates an empty union called name whose discriminant is
// encoded with disc. Use an Enum's Type to reject unknown tags by name.
func NewUnion[D ~int32](name string, disc Type[D]) *Union[D] {
	return &Union[D]{
		name: name,
		disc: disc,
		arms: make(map[D]arm[D]),
	}
}

// Name returns the schema name of the union
func (u *Union[D]) Name() string {
	return u.name
}

// Register adds the arm built by newMember. The arm's tag is taken from a
// freshly built instance. It panics if the tag is already registered.
func (u *Union[D]) Register(newMember func() UnionMember[D]) *Union[D] {
	proto := newMember()
	tag := proto.Discriminant()
	if _, dup := u.arms[tag]; dup {
		panic(fmt.Sprintf("xdr: union %s: arm %d registered twice", u.name, tag))
	}
	a := arm[D]{newMember: newMember, typ: reflect.TypeOf(proto)}
	if v, ok := proto.(*Void[D]); ok {
		a.void = v.name
	}
	u.arms[tag] = a
	return u
}

// RegisterVoid adds a payload-less arm called name for tag.
func (u *Union[D]) RegisterVoid(name string, tag D) *Union[D] {
	return u.Register(func() UnionMember[D] {
		return &Void[D]{tag: tag, name: name}
	})
}

// Has reports whether an arm is registered for tag
func (u *Union[D]) Has(tag D) bool {
	_, ok := u.arms[tag]
	return ok
}

// check verifies that m is the member type registered for its tag.
func (u *Union[D]) check(m UnionMember[D]) error {
	if m == nil {
		return fmt.Errorf("%w: nil %s member", ErrInvalidData, u.name)
	}
	if rv := reflect.ValueOf(m); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return fmt.Errorf("%w: nil %s member", ErrInvalidData, u.name)
	}
	tag := m.Discriminant()
	a, ok := u.arms[tag]
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrUnknownDiscriminant, u.name, tag)
	}
	if reflect.TypeOf(m) != a.typ {
		return fmt.Errorf("%w: %s arm %d does not accept %T", ErrInvalidData, u.name, tag, m)
	}
	if v, ok := m.(*Void[D]); ok && v.name != a.void {
		return fmt.Errorf("%w: %s arm %d is %s, not %s", ErrInvalidData, u.name, tag, a.void, v.name)
	}
	return nil
}

// Encode writes the discriminant of m followed by m's own encoding. m must
// be the member type registered for its discriminant.
func (u *Union[D]) Encode(enc *Encoder, m UnionMember[D]) error {
	if err := u.check(m); err != nil {
		return err
	}
	tag := m.Discriminant()
	if err := u.disc.Encode(enc, tag); err != nil {
		return err
	}
	return m.Encode(enc)
}

// Decode reads a discriminant, builds the matching arm and decodes its
// payload
func (u *Union[D]) Decode(dec *Decoder) (UnionMember[D], error) {
	tag, err := u.disc.Decode(dec)
	if err != nil {
		return nil, err
	}
	a, ok := u.arms[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrUnknownDiscriminant, u.name, tag)
	}
	m := a.newMember()
	if err := m.Decode(dec); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteMember writes m to a stream in the same form Encode produces.
func (u *Union[D]) WriteMember(w *Writer, m UnionMember[D]) error {
	if err := u.check(m); err != nil {
		return err
	}
	// Discriminant types are 4 bytes wide, so the raw bits are the wire form
	if err := w.WriteUint32(uint32(int32(m.Discriminant()))); err != nil {
		return err
	}
	return w.WriteRecord(m)
}

// ReadMember reads one member from a stream. It returns io.EOF when the
// stream ends before a discriminant and ErrUnexpectedEOF when it ends
// inside a member.
func (u *Union[D]) ReadMember(r *Reader) (UnionMember[D], error) {
	raw, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], raw)
	tag, err := u.disc.Decode(NewDecoder(buf[:]))
	if err != nil {
		return nil, err
	}
	a, ok := u.arms[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", ErrUnknownDiscriminant, u.name, tag)
	}
	m := a.newMember()
	if err := r.ReadRecord(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrUnexpectedEOF
		}
		return nil, err
	}
	return m, nil
}

// Marshal encodes m into a new buffer
func (u *Union[D]) Marshal(m UnionMember[D]) ([]byte, error) {
	return Marshal(&unionCodec[D]{u: u, m: m})
}

// Unmarshal decodes data, which must hold exactly one union value
func (u *Union[D]) Unmarshal(data []byte) (UnionMember[D], error) {
	c := &unionCodec[D]{u: u}
	if err := Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c.m, nil
}

// unionCodec adapts a Union and a member slot to the Codec interface.
type unionCodec[D ~int32] struct {
	u *Union[D]
	m UnionMember[D]
}

func (c *unionCodec[D]) Encode(enc *Encoder) error {
	return c.u.Encode(enc, c.m)
}

func (c *unionCodec[D]) Decode(dec *Decoder) error {
	m, err := c.u.Decode(dec)
	if err != nil {
		return err
	}
	c.m = m
	return nil
}

func (c *unionCodec[D]) Size() int {
	if c.u.check(c.m) != nil {
		return 4
	}
	return 4 + c.m.Size()
}

// Void is the member of a payload-less arm.
type Void[D ~int32] struct {
	tag  D
	name string
}

// NewVoid returns the void member called name for tag
func NewVoid[D ~int32](name string, tag D) *Void[D] {
	return &Void[D]{tag: tag, name: name}
}

func (v *Void[D]) Discriminant() D           { return v.tag }
func (v *Void[D]) Encode(enc *Encoder) error { return nil }
func (v *Void[D]) Decode(dec *Decoder) error { return nil }
func (v *Void[D]) Size() int                 { return 0 }
func (v *Void[D]) String() string            { return v.name + "()" }

func (v *Void[D]) Equal(other Record) bool {
	o, ok := other.(*Void[D])
	return ok && (o == v || o != nil && v != nil && o.tag == v.tag && o.name == v.name)
}
