package tabgo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/tabgo/internal/pool"
	"github.com/hupe1980/tabgo/store"
)

// Write serializes the table to w in the binary table format, using the
// codec and compression configured on the table. Filtered views are
// compacted first so the stream only carries visible cells.
func (t *Table[R, C]) Write(w io.Writer) error {
	ct := t.content
	if ct.Rows().IsFilter() || ct.Cols().IsFilter() {
		ct = ct.Copy()
	}
	err := ct.Write(w, t.opts.compression, t.opts.codec)
	t.opts.metrics.RecordSerialize(t.Rows()*t.Cols(), err)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	t.opts.logger.Debug("table written", "rows", t.Rows(), "cols", t.Cols(), "compression", t.opts.compression)
	return nil
}

// Read deserializes a table from r. The stream names its own codec and
// compression; options configure the resulting table.
func Read[R comparable, C comparable](r io.Reader, opts ...Option) (*Table[R, C], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	content, err := store.Read[R, C](r, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	t := &Table[R, C]{content: content, opts: o}
	if o.workers != 0 {
		t.pool = pool.New(o.workers)
	}
	return t, nil
}

// SaveFile writes the table to path via a temp file in the same
// directory, fsyncs, then renames into place so readers never observe a
// partial file.
func (t *Table[R, C]) SaveFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	bw := bufio.NewWriter(tmp)
	if err := t.Write(bw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	// Best-effort directory fsync so the rename survives a crash.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// OpenFile reads a table previously written by SaveFile.
func OpenFile[R comparable, C comparable](path string, opts ...Option) (*Table[R, C], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read[R, C](bufio.NewReader(f), opts...)
}
