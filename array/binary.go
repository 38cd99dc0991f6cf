package array

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrCorrupt indicates a malformed or truncated value stream.
var ErrCorrupt = errors.New("corrupt array data")

const maxChunkLen = 1 << 31

// Writer writes array values in optimized little-endian binary form.
// Fixed-width slices are written as raw bytes without per-element encoding.
type Writer struct {
	w         io.Writer
	byteOrder binary.ByteOrder
	scratch   [binary.MaxVarintLen64]byte
}

// NewWriter creates a new binary value writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:         w,
		byteOrder: binary.LittleEndian, // Native on x86/ARM
	}
}

// WriteBytes writes raw bytes.
func (w *Writer) WriteBytes(b []byte) error {
	_, err := w.w.Write(b)
	return err
}

// WriteUint8 writes a single byte.
func (w *Writer) WriteUint8(v uint8) error {
	w.scratch[0] = v
	_, err := w.w.Write(w.scratch[:1])
	return err
}

// WriteUint16 writes a uint16.
func (w *Writer) WriteUint16(v uint16) error {
	w.byteOrder.PutUint16(w.scratch[:2], v)
	_, err := w.w.Write(w.scratch[:2])
	return err
}

// WriteUint32 writes a uint32.
func (w *Writer) WriteUint32(v uint32) error {
	w.byteOrder.PutUint32(w.scratch[:4], v)
	_, err := w.w.Write(w.scratch[:4])
	return err
}

// WriteInt32 writes an int32.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteUvarint writes an unsigned varint.
func (w *Writer) WriteUvarint(v uint64) error {
	n := binary.PutUvarint(w.scratch[:], v)
	_, err := w.w.Write(w.scratch[:n])
	return err
}

// WriteInt32Slice writes an int32 slice as raw bytes (zero-copy compatible).
func (w *Writer) WriteInt32Slice(s []int32) error {
	if len(s) == 0 {
		return nil
	}
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.w.Write(byteSlice)
	return err
}

// WriteInt64Slice writes an int64 slice as raw bytes.
func (w *Writer) WriteInt64Slice(s []int64) error {
	if len(s) == 0 {
		return nil
	}
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.w.Write(byteSlice)
	return err
}

// WriteFloat32Slice writes a float32 slice as raw bytes.
func (w *Writer) WriteFloat32Slice(s []float32) error {
	if len(s) == 0 {
		return nil
	}
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.w.Write(byteSlice)
	return err
}

// WriteFloat64Slice writes a float64 slice as raw bytes.
func (w *Writer) WriteFloat64Slice(s []float64) error {
	if len(s) == 0 {
		return nil
	}
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.w.Write(byteSlice)
	return err
}

// WriteByteSlice writes a length-prefixed byte slice.
func (w *Writer) WriteByteSlice(b []byte) error {
	if err := w.WriteUvarint(uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.w.Write(b)
	return err
}

// WriteString writes a length-prefixed string.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	_, err := io.WriteString(w.w, s)
	return err
}

// WriteBitmap writes a serialized roaring bitmap, length-prefixed.
func (w *Writer) WriteBitmap(rb *roaring.Bitmap) error {
	b, err := rb.ToBytes()
	if err != nil {
		return err
	}
	return w.WriteByteSlice(b)
}

// WriteScalar writes a single scalar of the given kind. Used for axis
// keys and per-array key headers; KindAny scalars are not supported.
func (w *Writer) WriteScalar(kind Kind, v any) error {
	switch kind {
	case KindBool:
		b := v.(bool)
		if b {
			return w.WriteUint8(1)
		}
		return w.WriteUint8(0)
	case KindInt:
		return w.WriteInt64Slice([]int64{int64(v.(int))})
	case KindInt32:
		return w.WriteInt32(v.(int32))
	case KindInt64:
		return w.WriteInt64Slice([]int64{v.(int64)})
	case KindFloat32:
		return w.WriteFloat32Slice([]float32{v.(float32)})
	case KindFloat64:
		return w.WriteFloat64Slice([]float64{v.(float64)})
	case KindString:
		return w.WriteString(v.(string))
	case KindTime:
		return w.WriteInt64Slice([]int64{v.(time.Time).UnixNano()})
	default:
		return &ErrUnsupportedKind{Kind: kind}
	}
}

// Reader reads array values from the binary form produced by Writer.
type Reader struct {
	r         io.Reader
	byteOrder binary.ByteOrder
	scratch   [8]byte
}

// NewReader creates a new binary value reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:         r,
		byteOrder: binary.LittleEndian,
	}
}

// ReadBytes fills b with raw bytes.
func (r *Reader) ReadBytes(b []byte) error {
	_, err := io.ReadFull(r.r, b)
	return err
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.ReadBytes(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	return r.ReadByte()
}

// ReadUint16 reads a uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.ReadBytes(r.scratch[:2]); err != nil {
		return 0, err
	}
	return r.byteOrder.Uint16(r.scratch[:2]), nil
}

// ReadUint32 reads a uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.ReadBytes(r.scratch[:4]); err != nil {
		return 0, err
	}
	return r.byteOrder.Uint32(r.scratch[:4]), nil
}

// ReadInt32 reads an int32.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUvarint reads an unsigned varint.
func (r *Reader) ReadUvarint() (uint64, error) {
	return binary.ReadUvarint(r)
}

// ReadInt32Slice reads count int32 values.
func (r *Reader) ReadInt32Slice(count int) ([]int32, error) {
	if count == 0 {
		return nil, nil
	}
	s := make([]int32, count)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), count*4)
	if _, err := io.ReadFull(r.r, byteSlice); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadInt64Slice reads count int64 values.
func (r *Reader) ReadInt64Slice(count int) ([]int64, error) {
	if count == 0 {
		return nil, nil
	}
	s := make([]int64, count)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), count*8)
	if _, err := io.ReadFull(r.r, byteSlice); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFloat32Slice reads count float32 values.
func (r *Reader) ReadFloat32Slice(count int) ([]float32, error) {
	if count == 0 {
		return nil, nil
	}
	s := make([]float32, count)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), count*4)
	if _, err := io.ReadFull(r.r, byteSlice); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadFloat64Slice reads count float64 values.
func (r *Reader) ReadFloat64Slice(count int) ([]float64, error) {
	if count == 0 {
		return nil, nil
	}
	s := make([]float64, count)
	byteSlice := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), count*8)
	if _, err := io.ReadFull(r.r, byteSlice); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadByteSlice reads a length-prefixed byte slice.
func (r *Reader) ReadByteSlice() ([]byte, error) {
	n, err := r.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n > maxChunkLen {
		return nil, fmt.Errorf("%w: chunk length %d", ErrCorrupt, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadByteSlice()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBitmap reads a length-prefixed serialized roaring bitmap.
func (r *Reader) ReadBitmap() (*roaring.Bitmap, error) {
	b, err := r.ReadByteSlice()
	if err != nil {
		return nil, err
	}
	rb := roaring.New()
	if len(b) == 0 {
		return rb, nil
	}
	if err := rb.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return rb, nil
}

// ReadScalar reads a single scalar of the given kind, the mirror of
// Writer.WriteScalar.
func (r *Reader) ReadScalar(kind Kind) (any, error) {
	switch kind {
	case KindBool:
		b, err := r.ReadUint8()
		return b != 0, err
	case KindInt:
		s, err := r.ReadInt64Slice(1)
		if err != nil {
			return nil, err
		}
		return int(s[0]), nil
	case KindInt32:
		return r.ReadInt32()
	case KindInt64:
		s, err := r.ReadInt64Slice(1)
		if err != nil {
			return nil, err
		}
		return s[0], nil
	case KindFloat32:
		s, err := r.ReadFloat32Slice(1)
		if err != nil {
			return nil, err
		}
		return s[0], nil
	case KindFloat64:
		s, err := r.ReadFloat64Slice(1)
		if err != nil {
			return nil, err
		}
		return s[0], nil
	case KindString:
		return r.ReadString()
	case KindTime:
		s, err := r.ReadInt64Slice(1)
		if err != nil {
			return nil, err
		}
		return time.Unix(0, s[0]), nil
	default:
		return nil, &ErrUnsupportedKind{Kind: kind}
	}
}
