package xdr

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingWriter fails after N successful writes
type failingWriter struct {
	failAfter int
	writes    int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes > w.failAfter {
		return 0, errors.New("write failed")
	}
	return len(p), nil
}

// pair is a fixed-size record used by the cursor and stream tests
type pair struct {
	A uint32
	B int32
}

func (p *pair) Encode(enc *Encoder) error {
	if err := enc.EncodeUint32(p.A); err != nil {
		return err
	}
	return enc.EncodeInt32(p.B)
}

func (p *pair) Decode(dec *Decoder) error {
	a, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	b, err := dec.DecodeInt32()
	if err != nil {
		return err
	}
	p.A, p.B = a, b
	return nil
}

func (p *pair) Size() int { return 8 }

func TestEncoder(t *testing.T) {
	buf := make([]byte, 64)
	encoder := NewEncoder(buf)

	tests := []struct {
		name     string
		encode   func(*Encoder) error
		expected []byte
	}{
		{"Uint32", func(e *Encoder) error { return e.EncodeUint32(0x12345678) }, []byte{0x12, 0x34, 0x56, 0x78}},
		{"Uint32Max", func(e *Encoder) error { return e.EncodeUint32(0xFFFFFFFF) }, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"Uint64", func(e *Encoder) error { return e.EncodeUint64(0x123456789ABCDEF0) },
			[]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}},
		{"Int32Negative", func(e *Encoder) error { return e.EncodeInt32(-1) }, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"Int32Min", func(e *Encoder) error { return e.EncodeInt32(-2147483648) }, []byte{0x80, 0x00, 0x00, 0x00}},
		{"Int64Negative", func(e *Encoder) error { return e.EncodeInt64(-2) },
			[]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE}},
		{"BoolTrue", func(e *Encoder) error { return e.EncodeBool(true) }, []byte{0x00, 0x00, 0x00, 0x01}},
		{"BoolFalse", func(e *Encoder) error { return e.EncodeBool(false) }, []byte{0x00, 0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoder.Reset(buf)
			require.NoError(t, tt.encode(encoder))
			assert.Equal(t, tt.expected, encoder.Bytes())
			assert.Equal(t, len(tt.expected), encoder.Len())
		})
	}

	t.Run("FieldsConcatenate", func(t *testing.T) {
		encoder.Reset(buf)
		require.NoError(t, encoder.EncodeUint32(1))
		require.NoError(t, encoder.EncodeUint32(2))
		assert.Equal(t, []byte{0, 0, 0, 1, 0, 0, 0, 2}, encoder.Bytes())
	})

	t.Run("BufferTooSmall", func(t *testing.T) {
		small := NewEncoder(make([]byte, 2))
		assert.Equal(t, ErrBufferTooSmall, small.EncodeUint32(1))
		assert.Equal(t, 0, small.Len())

		small = NewEncoder(make([]byte, 4))
		assert.Equal(t, ErrBufferTooSmall, small.EncodeUint64(1))
		require.NoError(t, small.EncodeBool(true))
		assert.Equal(t, ErrBufferTooSmall, small.EncodeInt32(1))
		assert.Equal(t, []byte{0, 0, 0, 1}, small.Bytes())
	})
}

func TestDecoder(t *testing.T) {
	t.Run("Uint32", func(t *testing.T) {
		decoder := NewDecoder([]byte{0x12, 0x34, 0x56, 0x78})
		v, err := decoder.DecodeUint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(0x12345678), v)
		assert.Equal(t, 0, decoder.Remaining())
		assert.Equal(t, 4, decoder.Position())
	})

	t.Run("Uint64", func(t *testing.T) {
		decoder := NewDecoder([]byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0})
		v, err := decoder.DecodeUint64()
		require.NoError(t, err)
		assert.Equal(t, uint64(0x123456789ABCDEF0), v)
	})

	t.Run("Int32", func(t *testing.T) {
		decoder := NewDecoder([]byte{0xFF, 0xFF, 0xFF, 0xFE})
		v, err := decoder.DecodeInt32()
		require.NoError(t, err)
		assert.Equal(t, int32(-2), v)
	})

	t.Run("Int64", func(t *testing.T) {
		decoder := NewDecoder([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
		v, err := decoder.DecodeInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(-1), v)
	})

	t.Run("Bool", func(t *testing.T) {
		decoder := NewDecoder([]byte{0, 0, 0, 1, 0, 0, 0, 0})
		v, err := decoder.DecodeBool()
		require.NoError(t, err)
		assert.True(t, v)
		v, err = decoder.DecodeBool()
		require.NoError(t, err)
		assert.False(t, v)
	})

	t.Run("BoolRejectsOtherValues", func(t *testing.T) {
		decoder := NewDecoder([]byte{0, 0, 0, 2})
		_, err := decoder.DecodeBool()
		assert.Equal(t, ErrInvalidData, err)
		assert.Equal(t, 0, decoder.Position())
	})

	t.Run("UnexpectedEOF", func(t *testing.T) {
		tests := []struct {
			name   string
			data   []byte
			decode func(*Decoder) error
		}{
			{"Uint32", []byte{0x01, 0x02, 0x03}, func(d *Decoder) error { _, err := d.DecodeUint32(); return err }},
			{"Int32", []byte{}, func(d *Decoder) error { _, err := d.DecodeInt32(); return err }},
			{"Uint64", []byte{1, 2, 3, 4}, func(d *Decoder) error { _, err := d.DecodeUint64(); return err }},
			{"Int64", []byte{1, 2, 3, 4, 5, 6, 7}, func(d *Decoder) error { _, err := d.DecodeInt64(); return err }},
			{"Bool", []byte{0, 0}, func(d *Decoder) error { _, err := d.DecodeBool(); return err }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				decoder := NewDecoder(tt.data)
				assert.Equal(t, ErrUnexpectedEOF, tt.decode(decoder))
				assert.Equal(t, 0, decoder.Position(), "failed decode must not advance")
			})
		}
	})

	t.Run("Reset", func(t *testing.T) {
		decoder := NewDecoder([]byte{0, 0, 0, 1})
		_, err := decoder.DecodeUint32()
		require.NoError(t, err)
		decoder.Reset([]byte{0, 0, 0, 2, 0, 0, 0, 3})
		assert.Equal(t, 0, decoder.Position())
		assert.Equal(t, 8, decoder.Remaining())
		v, err := decoder.DecodeUint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(2), v)
	})
}

func TestRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	enc := NewEncoder(buf)
	require.NoError(t, enc.EncodeUint32(0))
	require.NoError(t, enc.EncodeUint32(0xFFFFFFFF))
	require.NoError(t, enc.EncodeInt32(-123))
	require.NoError(t, enc.EncodeUint64(1<<63))
	require.NoError(t, enc.EncodeInt64(-1<<40))
	require.NoError(t, enc.EncodeBool(true))
	assert.Equal(t, 32, enc.Len())

	dec := NewDecoder(enc.Bytes())
	u0, err := dec.DecodeUint32()
	require.NoError(t, err)
	u1, err := dec.DecodeUint32()
	require.NoError(t, err)
	i0, err := dec.DecodeInt32()
	require.NoError(t, err)
	h0, err := dec.DecodeUint64()
	require.NoError(t, err)
	h1, err := dec.DecodeInt64()
	require.NoError(t, err)
	b, err := dec.DecodeBool()
	require.NoError(t, err)

	assert.Equal(t, uint32(0), u0)
	assert.Equal(t, uint32(0xFFFFFFFF), u1)
	assert.Equal(t, int32(-123), i0)
	assert.Equal(t, uint64(1<<63), h0)
	assert.Equal(t, int64(-1<<40), h1)
	assert.True(t, b)
	assert.Equal(t, 0, dec.Remaining())
}

func TestWriter(t *testing.T) {
	t.Run("WriteUint32", func(t *testing.T) {
		var out bytes.Buffer
		w := NewWriter(&out)
		require.NoError(t, w.WriteUint32(0xDEADBEEF))
		assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, out.Bytes())
	})

	t.Run("WriteRecord", func(t *testing.T) {
		var out bytes.Buffer
		w := NewWriter(&out)
		require.NoError(t, w.WriteRecord(&pair{A: 1, B: -1}))
		require.NoError(t, w.WriteRecord(&pair{A: 2, B: 2}))
		assert.Equal(t, []byte{
			0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF,
			0, 0, 0, 2, 0, 0, 0, 2,
		}, out.Bytes())
	})

	t.Run("WriteError", func(t *testing.T) {
		w := NewWriter(&failingWriter{failAfter: 0})
		assert.Error(t, w.WriteUint32(1))
		assert.Error(t, w.WriteRecord(&pair{}))
	})
}

func TestReader(t *testing.T) {
	t.Run("ReadUint32", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0x00, 0x00, 0x01, 0x00}))
		v, err := r.ReadUint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(256), v)

		_, err = r.ReadUint32()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("ReadUint32Short", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0x00, 0x01}))
		_, err := r.ReadUint32()
		assert.Equal(t, ErrUnexpectedEOF, err)
	})

	t.Run("ReadRecordStream", func(t *testing.T) {
		data := []byte{
			0, 0, 0, 7, 0, 0, 0, 8,
			0, 0, 0, 9, 0xFF, 0xFF, 0xFF, 0xF6,
		}
		r := NewReader(bytes.NewReader(data))

		var got []pair
		for {
			var p pair
			err := r.ReadRecord(&p)
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			got = append(got, p)
		}
		assert.Equal(t, []pair{{A: 7, B: 8}, {A: 9, B: -10}}, got)
	})

	t.Run("ReadRecordTruncated", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0, 0, 0, 7, 0, 0}))
		err := r.ReadRecord(&pair{})
		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func BenchmarkEncoder(b *testing.B) {
	buf := make([]byte, 12)
	encoder := NewEncoder(buf)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		encoder.Reset(buf)
		_ = encoder.EncodeUint32(100)
		_ = encoder.EncodeUint32(0x0A0B0C0D)
		_ = encoder.EncodeUint32(0x0E0F1011)
	}
}

func BenchmarkDecoder(b *testing.B) {
	data := []byte{0, 0, 0, 100, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10, 0x11}
	decoder := NewDecoder(data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		decoder.Reset(data)
		_, _ = decoder.DecodeUint32()
		_, _ = decoder.DecodeUint32()
		_, _ = decoder.DecodeUint32()
	}
}
