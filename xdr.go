// Package xdr implements the fixed-width subset of XDR (RFC 4506) used to
// exchange L2-switch endpoint state.
//
// Every value is a big-endian integer occupying a multiple of four bytes.
// Records are the plain concatenation of their fields, unions are a 4-byte
// discriminant followed by the active arm, and typedefs reuse the wire form
// of the type they rename. Variable-length data is not supported.
package xdr

import (
	"encoding/binary"
	"errors"
	"io"
)

// XDR errors
var (
	ErrBufferTooSmall      = errors.New("buffer too small")
	ErrInvalidData         = errors.New("invalid XDR data")
	ErrUnexpectedEOF       = errors.New("unexpected end of data")
	ErrTrailingData        = errors.New("trailing data after value")
	ErrUnknownEnumValue    = errors.New("unknown enum value")
	ErrUnknownDiscriminant = errors.New("unknown union discriminant")
)

// Encoder provides methods for encoding data in XDR format
type Encoder struct {
	buf []byte
	pos int
}

// NewEncoder creates a new XDR encoder with the provided buffer
func NewEncoder(buf []byte) *Encoder {
	return &Encoder{buf: buf}
}

// Bytes returns the encoded data
func (e *Encoder) Bytes() []byte {
	return e.buf[:e.pos]
}

// Len returns the number of bytes encoded
func (e *Encoder) Len() int {
	return e.pos
}

// Reset resets the encoder to use a new buffer
func (e *Encoder) Reset(buf []byte) {
	e.buf = buf
	e.pos = 0
}

// EncodeUint32 encodes a 32-bit unsigned integer
func (e *Encoder) EncodeUint32(v uint32) error {
	if e.pos+4 > len(e.buf) {
		return ErrBufferTooSmall
	}
	binary.BigEndian.PutUint32(e.buf[e.pos:], v)
	e.pos += 4
	return nil
}

// EncodeUint64 encodes a 64-bit unsigned integer
func (e *Encoder) EncodeUint64(v uint64) error {
	if e.pos+8 > len(e.buf) {
		return ErrBufferTooSmall
	}
	binary.BigEndian.PutUint64(e.buf[e.pos:], v)
	e.pos += 8
	return nil
}

// EncodeInt32 encodes a 32-bit signed integer
func (e *Encoder) EncodeInt32(v int32) error {
	return e.EncodeUint32(uint32(v))
}

// EncodeInt64 encodes a 64-bit signed integer
func (e *Encoder) EncodeInt64(v int64) error {
	return e.EncodeUint64(uint64(v))
}

// EncodeBool encodes a boolean value
func (e *Encoder) EncodeBool(v bool) error {
	if v {
		return e.EncodeUint32(1)
	}
	return e.EncodeUint32(0)
}

// Decoder provides methods for decoding XDR format data.
// A failed decode leaves the position unchanged.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new XDR decoder with the provided data
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of bytes remaining to be decoded
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Position returns the current decode position
func (d *Decoder) Position() int {
	return d.pos
}

// Reset resets the decoder to use new data
func (d *Decoder) Reset(buf []byte) {
	d.buf = buf
	d.pos = 0
}

// DecodeUint32 decodes a 32-bit unsigned integer
func (d *Decoder) DecodeUint32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// DecodeUint64 decodes a 64-bit unsigned integer
func (d *Decoder) DecodeUint64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

// DecodeInt32 decodes a 32-bit signed integer
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.DecodeUint32()
	return int32(v), err
}

// DecodeInt64 decodes a 64-bit signed integer
func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.DecodeUint64()
	return int64(v), err
}

// DecodeBool decodes a boolean value. Only 0 and 1 are accepted.
func (d *Decoder) DecodeBool() (bool, error) {
	if d.pos+4 > len(d.buf) {
		return false, ErrUnexpectedEOF
	}
	switch binary.BigEndian.Uint32(d.buf[d.pos:]) {
	case 0:
		d.pos += 4
		return false, nil
	case 1:
		d.pos += 4
		return true, nil
	default:
		return false, ErrInvalidData
	}
}

// Writer wraps an io.Writer for streaming XDR encoding
type Writer struct {
	w   io.Writer
	buf [8]byte // Temporary buffer for encoding primitives
}

// NewWriter creates a new XDR writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteUint32 writes a 32-bit unsigned integer
func (w *Writer) WriteUint32(v uint32) error {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	_, err := w.w.Write(w.buf[:4])
	return err
}

// WriteRecord encodes a fixed-size value and writes it with no framing.
func (w *Writer) WriteRecord(c SizedCodec) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.w.Write(data)
	return err
}

// Reader wraps an io.Reader for streaming XDR decoding
type Reader struct {
	r   io.Reader
	buf [8]byte // Temporary buffer for decoding primitives
}

// NewReader creates a new XDR reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadUint32 reads a 32-bit unsigned integer
func (r *Reader) ReadUint32() (uint32, error) {
	if _, err := io.ReadFull(r.r, r.buf[:4]); err != nil {
		return 0, streamErr(err)
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadRecord reads exactly c.Size() bytes and decodes them into c.
// It returns io.EOF when the stream ends on a record boundary and
// ErrUnexpectedEOF when it ends inside a record.
func (r *Reader) ReadRecord(c SizedCodec) error {
	data := make([]byte, c.Size())
	if _, err := io.ReadFull(r.r, data); err != nil {
		return streamErr(err)
	}
	return Unmarshal(data, c)
}

func streamErr(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return err
}
