package dot11

import (
	"github.com/wlantools/dot11/wire"
)

// controlTA is the shared shape of control frames that carry a
// transmitter address after the receiver address.
type controlTA struct {
	Header
	TargetAddr Addr
}

const ctrlTALen = headerLen + 6

func (c *controlTA) writeTA(w *wire.Writer, subtype uint8) error {
	if err := c.Header.write(w, FrameTypeControl, subtype); err != nil {
		return err
	}
	return w.Hw6([6]byte(c.TargetAddr))
}

func (c *controlTA) readTA(r *wire.Reader) error {
	if err := c.Header.read(r); err != nil {
		return err
	}
	hw, err := r.Hw6()
	if err != nil {
		return err
	}
	c.TargetAddr = Addr(hw)
	return nil
}

// RTS is the request-to-send control frame.
type RTS struct {
	controlTA
}

// NewRTS returns an RTS frame with receiver and transmitter addresses.
func NewRTS(ra, ta Addr) *RTS {
	f := &RTS{}
	f.Type, f.Subtype = FrameTypeControl, SubtypeRTS
	f.Addr1, f.TargetAddr = ra, ta
	return f
}

func (f *RTS) PDUType() PDUType { return TypeRTS }
func (f *RTS) Matches(tag PDUType) bool { return TypeRTS.Matches(tag) }
func (f *RTS) HeaderSize() int { return ctrlTALen }
func (f *RTS) Size() int { return f.HeaderSize() }
func (f *RTS) Serialize() []byte { return serializeFrame(f) }
func (f *RTS) Payload() Frame { return nil }

func (f *RTS) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.writeTA(w, SubtypeRTS); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *RTS) Clone() Frame {
	out := *f
	return &out
}

func (f *RTS) parse(r *wire.Reader) error { return f.readTA(r) }

// CTS is the clear-to-send control frame. It carries only the receiver
// address.
type CTS struct {
	Header
}

func NewCTS(ra Addr) *CTS {
	f := &CTS{}
	f.Type, f.Subtype = FrameTypeControl, SubtypeCTS
	f.Addr1 = ra
	return f
}

func (f *CTS) PDUType() PDUType { return TypeCTS }
func (f *CTS) Matches(tag PDUType) bool { return TypeCTS.Matches(tag) }
func (f *CTS) HeaderSize() int { return headerLen }
func (f *CTS) Size() int { return f.HeaderSize() }
func (f *CTS) Serialize() []byte { return serializeFrame(f) }
func (f *CTS) Payload() Frame { return nil }

func (f *CTS) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.Header.write(w, FrameTypeControl, SubtypeCTS); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *CTS) Clone() Frame {
	out := *f
	return &out
}

func (f *CTS) parse(r *wire.Reader) error { return f.Header.read(r) }

// ACK is the acknowledgement control frame.
type ACK struct {
	Header
}

func NewACK(ra Addr) *ACK {
	f := &ACK{}
	f.Type, f.Subtype = FrameTypeControl, SubtypeACK
	f.Addr1 = ra
	return f
}

func (f *ACK) PDUType() PDUType { return TypeACK }
func (f *ACK) Matches(tag PDUType) bool { return TypeACK.Matches(tag) }
func (f *ACK) HeaderSize() int { return headerLen }
func (f *ACK) Size() int { return f.HeaderSize() }
func (f *ACK) Serialize() []byte { return serializeFrame(f) }
func (f *ACK) Payload() Frame { return nil }

func (f *ACK) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.Header.write(w, FrameTypeControl, SubtypeACK); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *ACK) Clone() Frame {
	out := *f
	return &out
}

func (f *ACK) parse(r *wire.Reader) error { return f.Header.read(r) }

// PSPoll is the power-save poll control frame. The duration/ID field
// carries the association ID.
type PSPoll struct {
	controlTA
}

func NewPSPoll(ra, ta Addr) *PSPoll {
	f := &PSPoll{}
	f.Type, f.Subtype = FrameTypeControl, SubtypePSPoll
	f.Addr1, f.TargetAddr = ra, ta
	return f
}

func (f *PSPoll) PDUType() PDUType { return TypePSPoll }
func (f *PSPoll) Matches(tag PDUType) bool { return TypePSPoll.Matches(tag) }
func (f *PSPoll) HeaderSize() int { return ctrlTALen }
func (f *PSPoll) Size() int { return f.HeaderSize() }
func (f *PSPoll) Serialize() []byte { return serializeFrame(f) }
func (f *PSPoll) Payload() Frame { return nil }

func (f *PSPoll) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.writeTA(w, SubtypePSPoll); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *PSPoll) Clone() Frame {
	out := *f
	return &out
}

func (f *PSPoll) parse(r *wire.Reader) error { return f.readTA(r) }

// CFEnd announces the end of the contention-free period.
type CFEnd struct {
	controlTA
}

func NewCFEnd(ra, ta Addr) *CFEnd {
	f := &CFEnd{}
	f.Type, f.Subtype = FrameTypeControl, SubtypeCFEnd
	f.Addr1, f.TargetAddr = ra, ta
	return f
}

func (f *CFEnd) PDUType() PDUType { return TypeCFEnd }
func (f *CFEnd) Matches(tag PDUType) bool { return TypeCFEnd.Matches(tag) }
func (f *CFEnd) HeaderSize() int { return ctrlTALen }
func (f *CFEnd) Size() int { return f.HeaderSize() }
func (f *CFEnd) Serialize() []byte { return serializeFrame(f) }
func (f *CFEnd) Payload() Frame { return nil }

func (f *CFEnd) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.writeTA(w, SubtypeCFEnd); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *CFEnd) Clone() Frame {
	out := *f
	return &out
}

func (f *CFEnd) parse(r *wire.Reader) error { return f.readTA(r) }

// CFEndAck combines CF-End with an acknowledgement.
type CFEndAck struct {
	controlTA
}

func NewCFEndAck(ra, ta Addr) *CFEndAck {
	f := &CFEndAck{}
	f.Type, f.Subtype = FrameTypeControl, SubtypeCFEndAck
	f.Addr1, f.TargetAddr = ra, ta
	return f
}

func (f *CFEndAck) PDUType() PDUType { return TypeCFEndAck }
func (f *CFEndAck) Matches(tag PDUType) bool { return TypeCFEndAck.Matches(tag) }
func (f *CFEndAck) HeaderSize() int { return ctrlTALen }
func (f *CFEndAck) Size() int { return f.HeaderSize() }
func (f *CFEndAck) Serialize() []byte { return serializeFrame(f) }
func (f *CFEndAck) Payload() Frame { return nil }

func (f *CFEndAck) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.writeTA(w, SubtypeCFEndAck); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *CFEndAck) Clone() Frame {
	out := *f
	return &out
}

func (f *CFEndAck) parse(r *wire.Reader) error { return f.readTA(r) }

// barControl packs the 4-bit TID into the BAR control word; the other
// twelve bits are reserved.
func packBarControl(tid uint8) uint16 {
	return uint16(tid&0x0f) << 4
}

func barControlTID(v uint16) uint8 {
	return uint8(v>>4) & 0x0f
}

// packStartSequence packs the fragment number into the low four bits
// and the sequence number into the upper twelve.
func packStartSequence(frag uint8, seq uint16) uint16 {
	return uint16(frag&0x0f) | (seq&0x0fff)<<4
}

// BlockAckReq solicits a block acknowledgement for the given TID.
type BlockAckReq struct {
	controlTA
	BarControl uint16
	StartSeq   uint16
}

func NewBlockAckReq(ra, ta Addr) *BlockAckReq {
	f := &BlockAckReq{}
	f.Type, f.Subtype = FrameTypeControl, SubtypeBlockAckReq
	f.Addr1, f.TargetAddr = ra, ta
	return f
}

// TID returns the traffic identifier from the BAR control word.
func (f *BlockAckReq) TID() uint8 { return barControlTID(f.BarControl) }

// SetTID stores the traffic identifier in the BAR control word.
func (f *BlockAckReq) SetTID(tid uint8) { f.BarControl = packBarControl(tid) }

// FragNumber returns the fragment number of the starting sequence.
func (f *BlockAckReq) FragNumber() uint8 { return uint8(f.StartSeq) & 0x0f }

// StartSeqNumber returns the starting sequence number.
func (f *BlockAckReq) StartSeqNumber() uint16 { return f.StartSeq >> 4 }

// SetStartSequence stores the starting fragment and sequence numbers.
func (f *BlockAckReq) SetStartSequence(frag uint8, seq uint16) {
	f.StartSeq = packStartSequence(frag, seq)
}

func (f *BlockAckReq) PDUType() PDUType { return TypeBlockAckReq }
func (f *BlockAckReq) Matches(tag PDUType) bool { return TypeBlockAckReq.Matches(tag) }
func (f *BlockAckReq) HeaderSize() int { return ctrlTALen + 2 + 2 }
func (f *BlockAckReq) Size() int { return f.HeaderSize() }
func (f *BlockAckReq) Serialize() []byte { return serializeFrame(f) }
func (f *BlockAckReq) Payload() Frame { return nil }

func (f *BlockAckReq) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.writeTA(w, SubtypeBlockAckReq); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(f.BarControl); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(f.StartSeq); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *BlockAckReq) Clone() Frame {
	out := *f
	return &out
}

func (f *BlockAckReq) parse(r *wire.Reader) error {
	if err := f.readTA(r); err != nil {
		return err
	}
	var err error
	if f.BarControl, err = r.Uint16(); err != nil {
		return err
	}
	if f.StartSeq, err = r.Uint16(); err != nil {
		return err
	}
	return nil
}

// BlockAck acknowledges a block of MPDUs with a 128-bit bitmap.
type BlockAck struct {
	controlTA
	BarControl uint16
	StartSeq   uint16
	Bitmap     [16]byte
}

func NewBlockAck(ra, ta Addr) *BlockAck {
	f := &BlockAck{}
	f.Type, f.Subtype = FrameTypeControl, SubtypeBlockAck
	f.Addr1, f.TargetAddr = ra, ta
	return f
}

func (f *BlockAck) TID() uint8 { return barControlTID(f.BarControl) }

func (f *BlockAck) SetTID(tid uint8) { f.BarControl = packBarControl(tid) }

func (f *BlockAck) FragNumber() uint8 { return uint8(f.StartSeq) & 0x0f }

func (f *BlockAck) StartSeqNumber() uint16 { return f.StartSeq >> 4 }

func (f *BlockAck) SetStartSequence(frag uint8, seq uint16) {
	f.StartSeq = packStartSequence(frag, seq)
}

func (f *BlockAck) PDUType() PDUType { return TypeBlockAck }
func (f *BlockAck) Matches(tag PDUType) bool { return TypeBlockAck.Matches(tag) }
func (f *BlockAck) HeaderSize() int { return ctrlTALen + 2 + 2 + 16 }
func (f *BlockAck) Size() int { return f.HeaderSize() }
func (f *BlockAck) Serialize() []byte { return serializeFrame(f) }
func (f *BlockAck) Payload() Frame { return nil }

func (f *BlockAck) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := f.writeTA(w, SubtypeBlockAck); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(f.BarControl); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(f.StartSeq); err != nil {
		return w.Offset(), err
	}
	if err := w.Bytes(f.Bitmap[:]); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (f *BlockAck) Clone() Frame {
	out := *f
	return &out
}

func (f *BlockAck) parse(r *wire.Reader) error {
	if err := f.readTA(r); err != nil {
		return err
	}
	var err error
	if f.BarControl, err = r.Uint16(); err != nil {
		return err
	}
	if f.StartSeq, err = r.Uint16(); err != nil {
		return err
	}
	bm, err := r.Bytes(16)
	if err != nil {
		return err
	}
	copy(f.Bitmap[:], bm)
	return nil
}
