// Package wire provides bounds-checked little-endian cursors over raw
// byte buffers. The 802.11 MAC serializes multi-byte fields in
// little-endian order, so only LE accessors exist here.
package wire

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when a read or write would run past the end
// of the buffer.
var ErrTruncated = errors.New("buffer truncated")

// Reader consumes a byte buffer from front to back.
type Reader struct {
	b   []byte
	off int
}

// NewReader returns a Reader over b. The buffer is not copied.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.b) - r.off
}

func (r *Reader) need(n int) error {
	if r.Remaining() < n {
		return errors.Wrapf(ErrTruncated, "need %d bytes, have %d", n, r.Remaining())
	}
	return nil
}

func (r *Reader) Uint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.off]
	r.off++
	return v, nil
}

func (r *Reader) Uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.b[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) Uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v, nil
}

func (r *Reader) Uint64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.b[r.off:])
	r.off += 8
	return v, nil
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.b[r.off:])
	r.off += n
	return out, nil
}

// Rest returns a copy of everything left in the buffer.
func (r *Reader) Rest() []byte {
	out := make([]byte, r.Remaining())
	copy(out, r.b[r.off:])
	r.off = len(r.b)
	return out
}

// Hw6 reads a 6-byte hardware address.
func (r *Reader) Hw6() ([6]byte, error) {
	var out [6]byte
	if err := r.need(6); err != nil {
		return out, err
	}
	copy(out[:], r.b[r.off:])
	r.off += 6
	return out, nil
}

// Writer fills a byte buffer from front to back.
type Writer struct {
	b   []byte
	off int
}

// NewWriter returns a Writer over b. Writes land directly in b.
func NewWriter(b []byte) *Writer {
	return &Writer{b: b}
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int {
	return w.off
}

// Remaining returns the writable bytes left.
func (w *Writer) Remaining() int {
	return len(w.b) - w.off
}

func (w *Writer) need(n int) error {
	if w.Remaining() < n {
		return errors.Wrapf(ErrTruncated, "need %d bytes, have %d", n, w.Remaining())
	}
	return nil
}

func (w *Writer) Uint8(v uint8) error {
	if err := w.need(1); err != nil {
		return err
	}
	w.b[w.off] = v
	w.off++
	return nil
}

func (w *Writer) Uint16(v uint16) error {
	if err := w.need(2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(w.b[w.off:], v)
	w.off += 2
	return nil
}

func (w *Writer) Uint32(v uint32) error {
	if err := w.need(4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.b[w.off:], v)
	w.off += 4
	return nil
}

func (w *Writer) Uint64(v uint64) error {
	if err := w.need(8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(w.b[w.off:], v)
	w.off += 8
	return nil
}

func (w *Writer) Bytes(v []byte) error {
	if err := w.need(len(v)); err != nil {
		return err
	}
	copy(w.b[w.off:], v)
	w.off += len(v)
	return nil
}

// Hw6 writes a 6-byte hardware address.
func (w *Writer) Hw6(v [6]byte) error {
	return w.Bytes(v[:])
}
