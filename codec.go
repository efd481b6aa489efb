package xdr

import (
	"fmt"
)

// Codec interface provides consistent XDR encoding/decoding for types
type Codec interface {
	// Encode encodes the type to XDR format using the provided encoder
	Encode(enc *Encoder) error

	// Decode decodes the type from XDR format using the provided decoder
	Decode(dec *Decoder) error
}

// Sizer is implemented by types whose encoded length is fixed by the schema.
type Sizer interface {
	// Size returns the encoded length in bytes
	Size() int
}

// SizedCodec is a Codec with a fixed encoded length.
type SizedCodec interface {
	Codec
	Sizer
}

// defaultBufferSize is used by Marshal when the value does not report its size.
const defaultBufferSize = 512

// Marshal provides generic XDR encoding for any type implementing Codec
func Marshal(codec Codec) ([]byte, error) {
	size := defaultBufferSize
	if s, ok := codec.(Sizer); ok {
		size = s.Size()
	}
	enc := NewEncoder(make([]byte, size))

	if err := codec.Encode(enc); err != nil {
		return nil, fmt.Errorf("XDR encoding failed: %w", err)
	}

	result := make([]byte, enc.Len())
	copy(result, enc.Bytes())
	return result, nil
}

// Unmarshal decodes data into codec. The whole buffer must be consumed:
// leftover bytes are reported as ErrTrailingData.
func Unmarshal(data []byte, codec Codec) error {
	n, err := UnmarshalPrefix(data, codec)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("XDR decoding failed: %w: %d bytes", ErrTrailingData, len(data)-n)
	}
	return nil
}

// UnmarshalPrefix decodes the leading bytes of data into codec and returns
// how many bytes were consumed. Trailing bytes are left for the caller.
func UnmarshalPrefix(data []byte, codec Codec) (int, error) {
	dec := NewDecoder(data)
	if err := codec.Decode(dec); err != nil {
		return 0, fmt.Errorf("XDR decoding failed: %w", err)
	}
	return dec.Position(), nil
}
