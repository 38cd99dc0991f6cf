package store

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/tabgo/array"
	"github.com/hupe1980/tabgo/axis"
	"github.com/hupe1980/tabgo/codec"
	"github.com/hupe1980/tabgo/core"
)

const (
	magicNumber   uint32 = 0x5442_474F // "TBGO"
	formatVersion uint16 = 1
)

// CompressionType defines the compression applied to the serialized
// payload after the fixed header.
type CompressionType uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone CompressionType = 0
	// CompressionLZ4 indicates LZ4 stream compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD indicates ZSTD stream compression (better ratio).
	CompressionZSTD CompressionType = 2
)

// Write serializes the content to w.
//
// Layout: [magic u32][version u16][compression u8], then the (possibly
// compressed) payload: codec name, row count, column count, row/col key
// kinds, the columnStore flag, the index-axis key sequence, and one block
// per backing array (key, element kind, null set, values). Values are
// written in logical ordinal order via the axis permutation, so sorted
// and filtered views serialize in logical order, not raw physical order.
func (ct *Content[R, C]) Write(w io.Writer, compression CompressionType, enc codec.Codec) error {
	if enc == nil {
		enc = codec.Default
	}
	hw := array.NewWriter(w)
	if err := hw.WriteUint32(magicNumber); err != nil {
		return err
	}
	if err := hw.WriteUint16(formatVersion); err != nil {
		return err
	}
	if err := hw.WriteUint8(uint8(compression)); err != nil {
		return err
	}

	switch compression {
	case CompressionNone:
		return ct.writePayload(array.NewWriter(w), enc)
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if err := ct.writePayload(array.NewWriter(zw), enc); err != nil {
			return err
		}
		return zw.Close()
	case CompressionZSTD:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return err
		}
		if err := ct.writePayload(array.NewWriter(zw), enc); err != nil {
			zw.Close()
			return err
		}
		return zw.Close()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}

func (ct *Content[R, C]) writePayload(bw *array.Writer, enc codec.Codec) error {
	rowKind := keyKind[R]()
	colKind := keyKind[C]()

	if err := bw.WriteString(enc.Name()); err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(ct.rows.Size())); err != nil {
		return err
	}
	if err := bw.WriteInt32(int32(ct.cols.Size())); err != nil {
		return err
	}
	if err := bw.WriteUint8(uint8(rowKind)); err != nil {
		return err
	}
	if err := bw.WriteUint8(uint8(colKind)); err != nil {
		return err
	}
	var flag uint8
	if ct.columnStore {
		flag = 1
	}
	if err := bw.WriteUint8(flag); err != nil {
		return err
	}

	// The index axis is the one without arrays of its own: rows in a
	// column-store, columns in a row-store.
	var (
		indexKind, arrayKind    array.Kind
		indexKeys, arrayKeys    []any
		arrayCoords, dataCoords []core.Coordinate
	)
	if ct.columnStore {
		indexKind, arrayKind = rowKind, colKind
		indexKeys = boxKeys(ct.rows.KeySlice())
		arrayKeys = boxKeys(ct.cols.KeySlice())
		arrayCoords = ct.cols.CoordinateSlice()
		dataCoords = ct.rows.CoordinateSlice()
	} else {
		indexKind, arrayKind = colKind, rowKind
		indexKeys = boxKeys(ct.cols.KeySlice())
		arrayKeys = boxKeys(ct.rows.KeySlice())
		arrayCoords = ct.rows.CoordinateSlice()
		dataCoords = ct.cols.CoordinateSlice()
	}

	for _, k := range indexKeys {
		if err := bw.WriteScalar(indexKind, k); err != nil {
			return err
		}
	}
	for i, coord := range arrayCoords {
		if err := bw.WriteScalar(arrayKind, arrayKeys[i]); err != nil {
			return err
		}
		arr := ct.arrays[coord]
		if err := bw.WriteUint8(uint8(arr.Kind())); err != nil {
			return err
		}
		if err := arr.WriteValues(bw, dataCoords, enc); err != nil {
			return err
		}
	}
	return nil
}

// Read deserializes a content written by Write. A nil dec selects the
// codec recorded in the stream by name.
func Read[R comparable, C comparable](r io.Reader, dec codec.Codec) (*Content[R, C], error) {
	hr := array.NewReader(r)
	magic, err := hr.ReadUint32()
	if err != nil {
		return nil, err
	}
	if magic != magicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, magic)
	}
	ver, err := hr.ReadUint16()
	if err != nil {
		return nil, err
	}
	if ver != formatVersion {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, ver)
	}
	compression, err := hr.ReadUint8()
	if err != nil {
		return nil, err
	}

	switch CompressionType(compression) {
	case CompressionNone:
		return readPayload[R, C](array.NewReader(r), dec)
	case CompressionLZ4:
		return readPayload[R, C](array.NewReader(lz4.NewReader(r)), dec)
	case CompressionZSTD:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return readPayload[R, C](array.NewReader(zr), dec)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}

func readPayload[R comparable, C comparable](br *array.Reader, dec codec.Codec) (*Content[R, C], error) {
	codecName, err := br.ReadString()
	if err != nil {
		return nil, err
	}
	if dec == nil {
		var ok bool
		if dec, ok = codec.ByName(codecName); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
		}
	}

	rowCount, err := br.ReadInt32()
	if err != nil {
		return nil, err
	}
	colCount, err := br.ReadInt32()
	if err != nil {
		return nil, err
	}
	rowKind8, err := br.ReadUint8()
	if err != nil {
		return nil, err
	}
	colKind8, err := br.ReadUint8()
	if err != nil {
		return nil, err
	}
	flag, err := br.ReadUint8()
	if err != nil {
		return nil, err
	}
	columnStore := flag != 0

	rowKind, colKind := array.Kind(rowKind8), array.Kind(colKind8)
	if want := keyKind[R](); want != rowKind {
		return nil, &ErrKeyKindMismatch{Axis: "row", Expected: want, Actual: rowKind}
	}
	if want := keyKind[C](); want != colKind {
		return nil, &ErrKeyKindMismatch{Axis: "col", Expected: want, Actual: colKind}
	}

	indexKind, arrayKind := rowKind, colKind
	indexCount, arrayCount := int(rowCount), int(colCount)
	if !columnStore {
		indexKind, arrayKind = colKind, rowKind
		indexCount, arrayCount = int(colCount), int(rowCount)
	}

	indexKeys := make([]any, indexCount)
	for i := range indexKeys {
		if indexKeys[i], err = br.ReadScalar(indexKind); err != nil {
			return nil, err
		}
	}
	arrayKeys := make([]any, arrayCount)
	arrays := make([]array.Array, arrayCount)
	for i := range arrays {
		if arrayKeys[i], err = br.ReadScalar(arrayKind); err != nil {
			return nil, err
		}
		kind8, err := br.ReadUint8()
		if err != nil {
			return nil, err
		}
		arr, err := array.New(array.Kind(kind8), indexCount)
		if err != nil {
			return nil, err
		}
		if err := arr.ReadValues(br, indexCount, dec); err != nil {
			return nil, err
		}
		arrays[i] = arr
	}

	var (
		rowKeys []R
		colKeys []C
	)
	if columnStore {
		if rowKeys, err = unboxKeys[R](indexKeys); err != nil {
			return nil, err
		}
		if colKeys, err = unboxKeys[C](arrayKeys); err != nil {
			return nil, err
		}
	} else {
		if colKeys, err = unboxKeys[C](indexKeys); err != nil {
			return nil, err
		}
		if rowKeys, err = unboxKeys[R](arrayKeys); err != nil {
			return nil, err
		}
	}
	rows, err := axis.New(rowKeys)
	if err != nil {
		return nil, err
	}
	cols, err := axis.New(colKeys)
	if err != nil {
		return nil, err
	}
	rows.Reserve(int(rowCount))
	return FromParts(rows, cols, columnStore, arrays), nil
}

// keyKind maps a key type parameter onto its element kind.
func keyKind[K comparable]() array.Kind {
	var zero K
	return array.KindOf(zero)
}

func boxKeys[K comparable](keys []K) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}

func unboxKeys[K comparable](keys []any) ([]K, error) {
	out := make([]K, len(keys))
	for i, k := range keys {
		kk, ok := k.(K)
		if !ok {
			return nil, fmt.Errorf("key %v is not a %T", k, out[i])
		}
		out[i] = kk
	}
	return out, nil
}
