package dot11

import (
	"github.com/wlantools/dot11/wire"
)

// Data is an 802.11 data frame. Addr4 is present on the wire only when
// both ToDS and FromDS are set. The frame owns at most one child
// payload, opaque to this layer.
type Data struct {
	Header
	Addr2 Addr
	Addr3 Addr
	SeqControl
	Addr4 Addr

	payload Frame
}

// NewData returns a data frame with the given first three addresses
// and optional child payload.
func NewData(addr1, addr2, addr3 Addr, payload Frame) *Data {
	d := &Data{}
	d.Type, d.Subtype = FrameTypeData, SubtypeData
	d.Addr1, d.Addr2, d.Addr3 = addr1, addr2, addr3
	d.payload = payload
	return d
}

// SetPayload hands the child PDU to the frame. The frame owns it from
// here on.
func (d *Data) SetPayload(p Frame) { d.payload = p }

func (d *Data) Payload() Frame { return d.payload }

// DstAddr returns the destination address per the ToDS/FromDS layout.
func (d *Data) DstAddr() Addr {
	if d.ToDS {
		return d.Addr3
	}
	return d.Addr1
}

// SrcAddr returns the source address per the ToDS/FromDS layout.
func (d *Data) SrcAddr() Addr {
	switch {
	case d.ToDS && d.FromDS:
		return d.Addr4
	case d.FromDS:
		return d.Addr3
	default:
		return d.Addr2
	}
}

// extHeaderSize is the data extended header: addr2, addr3, sequence
// control, and addr4 only when the frame crosses the DS both ways.
func (d *Data) extHeaderSize() int {
	n := 6 + 6 + 2
	if d.ToDS && d.FromDS {
		n += 6
	}
	return n
}

func (d *Data) PDUType() PDUType { return TypeData }
func (d *Data) Matches(tag PDUType) bool { return TypeData.Matches(tag) }
func (d *Data) HeaderSize() int { return headerLen + d.extHeaderSize() }
func (d *Data) Size() int { return d.HeaderSize() + payloadSize(d.payload) }
func (d *Data) Serialize() []byte { return serializeFrame(d) }

func (d *Data) writeExtHeader(w *wire.Writer) error {
	if err := w.Hw6([6]byte(d.Addr2)); err != nil {
		return err
	}
	if err := w.Hw6([6]byte(d.Addr3)); err != nil {
		return err
	}
	if err := w.Uint16(d.SeqControl.Pack()); err != nil {
		return err
	}
	if d.ToDS && d.FromDS {
		return w.Hw6([6]byte(d.Addr4))
	}
	return nil
}

func (d *Data) readExtHeader(r *wire.Reader) error {
	hw, err := r.Hw6()
	if err != nil {
		return err
	}
	d.Addr2 = Addr(hw)
	if hw, err = r.Hw6(); err != nil {
		return err
	}
	d.Addr3 = Addr(hw)
	sc, err := r.Uint16()
	if err != nil {
		return err
	}
	d.SeqControl = UnpackSeqControl(sc)
	if d.ToDS && d.FromDS {
		if hw, err = r.Hw6(); err != nil {
			return err
		}
		d.Addr4 = Addr(hw)
	}
	return nil
}

func (d *Data) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := d.Header.write(w, FrameTypeData, SubtypeData); err != nil {
		return w.Offset(), err
	}
	if err := d.writeExtHeader(w); err != nil {
		return w.Offset(), err
	}
	n := w.Offset()
	if d.payload != nil {
		pn, err := d.payload.SerializeTo(b[n:])
		if err != nil {
			return n + pn, err
		}
		n += pn
	}
	return n, nil
}

func (d *Data) Clone() Frame {
	out := *d
	out.payload = clonePayload(d.payload)
	return &out
}

func (d *Data) parse(r *wire.Reader) error {
	if err := d.Header.read(r); err != nil {
		return err
	}
	if err := d.readExtHeader(r); err != nil {
		return err
	}
	if r.Remaining() > 0 {
		d.payload = RawPayload(r.Rest())
	}
	return nil
}

// QoSData is a data frame with the two-byte QoS control field. The
// field follows the sequence control, after addr4 when that address is
// present.
type QoSData struct {
	Data
	QoSControl uint16
}

// NewQoSData returns a QoS data frame with the given first three
// addresses and optional child payload.
func NewQoSData(addr1, addr2, addr3 Addr, payload Frame) *QoSData {
	q := &QoSData{}
	q.Type, q.Subtype = FrameTypeData, SubtypeQoSData
	q.Addr1, q.Addr2, q.Addr3 = addr1, addr2, addr3
	q.payload = payload
	return q
}

func (q *QoSData) PDUType() PDUType { return TypeQoSData }
func (q *QoSData) Matches(tag PDUType) bool { return TypeQoSData.Matches(tag) }
func (q *QoSData) HeaderSize() int { return headerLen + q.extHeaderSize() + 2 }
func (q *QoSData) Size() int { return q.HeaderSize() + payloadSize(q.payload) }
func (q *QoSData) Serialize() []byte { return serializeFrame(q) }

func (q *QoSData) SerializeTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	if err := q.Header.write(w, FrameTypeData, SubtypeQoSData); err != nil {
		return w.Offset(), err
	}
	if err := q.writeExtHeader(w); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(q.QoSControl); err != nil {
		return w.Offset(), err
	}
	n := w.Offset()
	if q.payload != nil {
		pn, err := q.payload.SerializeTo(b[n:])
		if err != nil {
			return n + pn, err
		}
		n += pn
	}
	return n, nil
}

func (q *QoSData) Clone() Frame {
	out := *q
	out.payload = clonePayload(q.payload)
	return &out
}

func (q *QoSData) parse(r *wire.Reader) error {
	if err := q.Header.read(r); err != nil {
		return err
	}
	if err := q.readExtHeader(r); err != nil {
		return err
	}
	var err error
	if q.QoSControl, err = r.Uint16(); err != nil {
		return err
	}
	if r.Remaining() > 0 {
		q.payload = RawPayload(r.Rest())
	}
	return nil
}
