// Package dot11 models IEEE 802.11 MAC frames. Frames parse from raw
// monitor-mode bytes into typed values and serialize back to bit-exact
// wire form. The package covers the management, control and data frame
// families with their fixed parameter blocks and the tagged
// information-element chain of management bodies.
//
// Frames are plain values: no internal locking, exclusive ownership of
// option bytes and of the child payload. Concurrent reads of an
// immutable frame are safe; concurrent mutation is not.
package dot11

import (
	"github.com/wlantools/dot11/wire"
)

// Frame is a single 802.11 PDU.
type Frame interface {
	// PDUType returns the variant's tag.
	PDUType() PDUType

	// Matches reports whether the frame is, or descends from, the
	// given tag.
	Matches(tag PDUType) bool

	// HeaderSize returns the serialized size of the frame's own bytes:
	// MAC header, extended header, fixed parameters and options. The
	// child payload is not included.
	HeaderSize() int

	// Size returns HeaderSize plus the size of the child payload.
	Size() int

	// SerializeTo writes the frame, child included, into b and returns
	// the number of bytes written. The variant's canonical type and
	// subtype are forced into the frame control word.
	SerializeTo(b []byte) (int, error)

	// Serialize allocates a buffer of exactly Size bytes and writes
	// the frame into it.
	Serialize() []byte

	// Clone returns a deep copy, options and child payload included.
	Clone() Frame

	// Payload returns the child PDU, or nil.
	Payload() Frame
}

// PacketSender injects a serialized frame on an interface. The core
// delegates transmission entirely; implementations live under
// linux/inject.
type PacketSender interface {
	Send(ifIndex int, b []byte) error
}

// Send serializes f and hands it to the sender. The sender's result is
// returned verbatim.
func Send(f Frame, s PacketSender, ifIndex int) error {
	return s.Send(ifIndex, f.Serialize())
}

// Header is the MAC header fields present on every frame: the frame
// control word, the duration/ID field and the first address.
type Header struct {
	FrameControl
	DurationID uint16
	Addr1      Addr
}

// write emits the header, forcing typ and subtype into the frame
// control word while keeping every flag the caller set.
func (h *Header) write(w *wire.Writer, typ, subtype uint8) error {
	fc := h.FrameControl
	fc.Type = typ
	fc.Subtype = subtype
	if err := w.Uint16(fc.Pack()); err != nil {
		return err
	}
	if err := w.Uint16(h.DurationID); err != nil {
		return err
	}
	return w.Hw6([6]byte(h.Addr1))
}

func (h *Header) read(r *wire.Reader) error {
	fcw, err := r.Uint16()
	if err != nil {
		return err
	}
	h.FrameControl = UnpackFrameControl(fcw)
	if h.DurationID, err = r.Uint16(); err != nil {
		return err
	}
	hw, err := r.Hw6()
	if err != nil {
		return err
	}
	h.Addr1 = Addr(hw)
	return nil
}

// headerLen is the fixed MAC header size: frame control, duration/ID
// and addr1.
const headerLen = 2 + 2 + 6

// serializeFrame implements the self-allocating Serialize path shared
// by every variant: the buffer is sized exactly, so the write cannot
// fail.
func serializeFrame(f Frame) []byte {
	b := make([]byte, f.Size())
	if _, err := f.SerializeTo(b); err != nil {
		// Unreachable with an exact-size buffer.
		panic(err)
	}
	return b
}

func payloadSize(p Frame) int {
	if p == nil {
		return 0
	}
	return p.Size()
}

func clonePayload(p Frame) Frame {
	if p == nil {
		return nil
	}
	return p.Clone()
}

// RawPayload is an opaque child PDU: bytes the 802.11 layer does not
// interpret. Higher-level dispatchers may decode it further.
type RawPayload []byte

func (p RawPayload) PDUType() PDUType { return TypeRaw }

func (p RawPayload) Matches(tag PDUType) bool { return tag == TypeRaw }

func (p RawPayload) HeaderSize() int { return len(p) }

func (p RawPayload) Size() int { return len(p) }

func (p RawPayload) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := w.Bytes(p); err != nil {
		return 0, err
	}
	return w.Offset(), nil
}

func (p RawPayload) Serialize() []byte { return serializeFrame(p) }

func (p RawPayload) Clone() Frame {
	out := make(RawPayload, len(p))
	copy(out, p)
	return out
}

func (p RawPayload) Payload() Frame { return nil }

// Generic is the fallback variant for frames whose subtype has no
// dedicated type: the MAC header plus an opaque body. Its tag is the
// category of the frame control word it was parsed with.
type Generic struct {
	Header
	Body []byte

	tag PDUType
}

// NewGeneric returns a generic frame with the given category tag
// (TypeDot11, TypeManagement, TypeControl or TypeData).
func NewGeneric(tag PDUType, h Header, body []byte) *Generic {
	b := make([]byte, len(body))
	copy(b, body)
	return &Generic{Header: h, Body: b, tag: tag}
}

func (g *Generic) PDUType() PDUType { return g.tag }

func (g *Generic) Matches(tag PDUType) bool { return g.tag.Matches(tag) }

func (g *Generic) HeaderSize() int { return headerLen + len(g.Body) }

func (g *Generic) Size() int { return g.HeaderSize() }

func (g *Generic) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	// No canonical subtype to force; the parsed word is authoritative.
	if err := g.Header.write(w, g.Type, g.Subtype); err != nil {
		return w.Offset(), err
	}
	if err := w.Bytes(g.Body); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (g *Generic) Serialize() []byte { return serializeFrame(g) }

func (g *Generic) Clone() Frame {
	out := *g
	out.Body = make([]byte, len(g.Body))
	copy(out.Body, g.Body)
	return &out
}

func (g *Generic) Payload() Frame { return nil }
