package dot11

import (
	"github.com/wlantools/dot11/ie"
	"github.com/wlantools/dot11/wire"
)

// mgmtHeaderLen is the management MAC header: the common header plus
// addr2, addr3 and the sequence control field.
const mgmtHeaderLen = headerLen + 6 + 6 + 2

// ManagementFrame holds the fields shared by every management variant:
// the extended header (addr2, addr3, sequence control) and the tagged
// option chain. Addr1 is the destination, addr2 the source and addr3
// the BSSID.
type ManagementFrame struct {
	Header
	Addr2 Addr
	Addr3 Addr
	SeqControl
	Options ie.Options
}

// DA returns the destination address.
func (m *ManagementFrame) DA() Addr { return m.Addr1 }

// SA returns the source address.
func (m *ManagementFrame) SA() Addr { return m.Addr2 }

// BSSID returns the BSS identifier.
func (m *ManagementFrame) BSSID() Addr { return m.Addr3 }

func (m *ManagementFrame) baseSize() int {
	return mgmtHeaderLen + m.Options.SerializedSize()
}

func (m *ManagementFrame) writeBase(w *wire.Writer, subtype uint8) error {
	if err := m.Header.write(w, FrameTypeManagement, subtype); err != nil {
		return err
	}
	if err := w.Hw6([6]byte(m.Addr2)); err != nil {
		return err
	}
	if err := w.Hw6([6]byte(m.Addr3)); err != nil {
		return err
	}
	return w.Uint16(m.SeqControl.Pack())
}

func (m *ManagementFrame) readBase(r *wire.Reader) error {
	if err := m.Header.read(r); err != nil {
		return err
	}
	hw, err := r.Hw6()
	if err != nil {
		return err
	}
	m.Addr2 = Addr(hw)
	if hw, err = r.Hw6(); err != nil {
		return err
	}
	m.Addr3 = Addr(hw)
	sc, err := r.Uint16()
	if err != nil {
		return err
	}
	m.SeqControl = UnpackSeqControl(sc)
	return nil
}

// readOptions consumes the rest of the buffer as the IE chain.
func (m *ManagementFrame) readOptions(r *wire.Reader) error {
	return m.Options.Parse(r.Rest())
}

func (m *ManagementFrame) cloneBase() ManagementFrame {
	out := *m
	out.Options = m.Options.Clone()
	return out
}

// Beacon is the management frame an AP emits periodically to announce
// its network.
type Beacon struct {
	ManagementFrame
	Timestamp  uint64
	Interval   uint16
	Capability Capability
}

// NewBeacon returns a beacon with the given destination, source and
// BSSID addresses.
func NewBeacon(da, sa, bssid Addr) *Beacon {
	b := &Beacon{}
	b.Type, b.Subtype = FrameTypeManagement, SubtypeBeacon
	b.Addr1, b.Addr2, b.Addr3 = da, sa, bssid
	return b
}

func (b *Beacon) PDUType() PDUType { return TypeBeacon }
func (b *Beacon) Matches(tag PDUType) bool { return TypeBeacon.Matches(tag) }
func (b *Beacon) HeaderSize() int { return b.baseSize() + 8 + 2 + 2 }
func (b *Beacon) Size() int { return b.HeaderSize() }
func (b *Beacon) Serialize() []byte { return serializeFrame(b) }
func (b *Beacon) Payload() Frame { return nil }

func (b *Beacon) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := b.writeBase(w, SubtypeBeacon); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint64(b.Timestamp); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(b.Interval); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(b.Capability.Pack()); err != nil {
		return w.Offset(), err
	}
	if err := b.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (b *Beacon) Clone() Frame {
	out := *b
	out.ManagementFrame = b.cloneBase()
	return &out
}

func (b *Beacon) parse(r *wire.Reader) error {
	if err := b.readBase(r); err != nil {
		return err
	}
	var err error
	if b.Timestamp, err = r.Uint64(); err != nil {
		return err
	}
	if b.Interval, err = r.Uint16(); err != nil {
		return err
	}
	caps, err := r.Uint16()
	if err != nil {
		return err
	}
	b.Capability = UnpackCapability(caps)
	return b.readOptions(r)
}

// ProbeReq solicits probe responses from APs in range. Its body is
// nothing but information elements.
type ProbeReq struct {
	ManagementFrame
}

func NewProbeReq(da, sa, bssid Addr) *ProbeReq {
	p := &ProbeReq{}
	p.Type, p.Subtype = FrameTypeManagement, SubtypeProbeReq
	p.Addr1, p.Addr2, p.Addr3 = da, sa, bssid
	return p
}

func (p *ProbeReq) PDUType() PDUType { return TypeProbeReq }
func (p *ProbeReq) Matches(tag PDUType) bool { return TypeProbeReq.Matches(tag) }
func (p *ProbeReq) HeaderSize() int { return p.baseSize() }
func (p *ProbeReq) Size() int { return p.HeaderSize() }
func (p *ProbeReq) Serialize() []byte { return serializeFrame(p) }
func (p *ProbeReq) Payload() Frame { return nil }

func (p *ProbeReq) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := p.writeBase(w, SubtypeProbeReq); err != nil {
		return w.Offset(), err
	}
	if err := p.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (p *ProbeReq) Clone() Frame {
	out := &ProbeReq{ManagementFrame: p.cloneBase()}
	return out
}

func (p *ProbeReq) parse(r *wire.Reader) error {
	if err := p.readBase(r); err != nil {
		return err
	}
	return p.readOptions(r)
}

// ProbeResp answers a probe request; its fixed block mirrors a beacon.
type ProbeResp struct {
	ManagementFrame
	Timestamp  uint64
	Interval   uint16
	Capability Capability
}

func NewProbeResp(da, sa, bssid Addr) *ProbeResp {
	p := &ProbeResp{}
	p.Type, p.Subtype = FrameTypeManagement, SubtypeProbeResp
	p.Addr1, p.Addr2, p.Addr3 = da, sa, bssid
	return p
}

func (p *ProbeResp) PDUType() PDUType { return TypeProbeResp }
func (p *ProbeResp) Matches(tag PDUType) bool { return TypeProbeResp.Matches(tag) }
func (p *ProbeResp) HeaderSize() int { return p.baseSize() + 8 + 2 + 2 }
func (p *ProbeResp) Size() int { return p.HeaderSize() }
func (p *ProbeResp) Serialize() []byte { return serializeFrame(p) }
func (p *ProbeResp) Payload() Frame { return nil }

func (p *ProbeResp) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := p.writeBase(w, SubtypeProbeResp); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint64(p.Timestamp); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(p.Interval); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(p.Capability.Pack()); err != nil {
		return w.Offset(), err
	}
	if err := p.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (p *ProbeResp) Clone() Frame {
	out := *p
	out.ManagementFrame = p.cloneBase()
	return &out
}

func (p *ProbeResp) parse(r *wire.Reader) error {
	if err := p.readBase(r); err != nil {
		return err
	}
	var err error
	if p.Timestamp, err = r.Uint64(); err != nil {
		return err
	}
	if p.Interval, err = r.Uint16(); err != nil {
		return err
	}
	caps, err := r.Uint16()
	if err != nil {
		return err
	}
	p.Capability = UnpackCapability(caps)
	return p.readOptions(r)
}

// AssocReq asks an AP for association.
type AssocReq struct {
	ManagementFrame
	Capability     Capability
	ListenInterval uint16
}

func NewAssocReq(da, sa, bssid Addr) *AssocReq {
	a := &AssocReq{}
	a.Type, a.Subtype = FrameTypeManagement, SubtypeAssocReq
	a.Addr1, a.Addr2, a.Addr3 = da, sa, bssid
	return a
}

func (a *AssocReq) PDUType() PDUType { return TypeAssocReq }
func (a *AssocReq) Matches(tag PDUType) bool { return TypeAssocReq.Matches(tag) }
func (a *AssocReq) HeaderSize() int { return a.baseSize() + 2 + 2 }
func (a *AssocReq) Size() int { return a.HeaderSize() }
func (a *AssocReq) Serialize() []byte { return serializeFrame(a) }
func (a *AssocReq) Payload() Frame { return nil }

func (a *AssocReq) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := a.writeBase(w, SubtypeAssocReq); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.Capability.Pack()); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.ListenInterval); err != nil {
		return w.Offset(), err
	}
	if err := a.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (a *AssocReq) Clone() Frame {
	out := *a
	out.ManagementFrame = a.cloneBase()
	return &out
}

func (a *AssocReq) parse(r *wire.Reader) error {
	if err := a.readBase(r); err != nil {
		return err
	}
	caps, err := r.Uint16()
	if err != nil {
		return err
	}
	a.Capability = UnpackCapability(caps)
	if a.ListenInterval, err = r.Uint16(); err != nil {
		return err
	}
	return a.readOptions(r)
}

// AssocResp carries the AP's answer to an association request.
type AssocResp struct {
	ManagementFrame
	Capability Capability
	StatusCode uint16
	AID        uint16
}

func NewAssocResp(da, sa, bssid Addr) *AssocResp {
	a := &AssocResp{}
	a.Type, a.Subtype = FrameTypeManagement, SubtypeAssocResp
	a.Addr1, a.Addr2, a.Addr3 = da, sa, bssid
	return a
}

func (a *AssocResp) PDUType() PDUType { return TypeAssocResp }
func (a *AssocResp) Matches(tag PDUType) bool { return TypeAssocResp.Matches(tag) }
func (a *AssocResp) HeaderSize() int { return a.baseSize() + 2 + 2 + 2 }
func (a *AssocResp) Size() int { return a.HeaderSize() }
func (a *AssocResp) Serialize() []byte { return serializeFrame(a) }
func (a *AssocResp) Payload() Frame { return nil }

func (a *AssocResp) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := a.writeBase(w, SubtypeAssocResp); err != nil {
		return w.Offset(), err
	}
	if err := a.writeFixed(w); err != nil {
		return w.Offset(), err
	}
	if err := a.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (a *AssocResp) writeFixed(w *wire.Writer) error {
	if err := w.Uint16(a.Capability.Pack()); err != nil {
		return err
	}
	if err := w.Uint16(a.StatusCode); err != nil {
		return err
	}
	return w.Uint16(a.AID)
}

func (a *AssocResp) Clone() Frame {
	out := *a
	out.ManagementFrame = a.cloneBase()
	return &out
}

func (a *AssocResp) parse(r *wire.Reader) error {
	if err := a.readBase(r); err != nil {
		return err
	}
	caps, err := r.Uint16()
	if err != nil {
		return err
	}
	a.Capability = UnpackCapability(caps)
	if a.StatusCode, err = r.Uint16(); err != nil {
		return err
	}
	if a.AID, err = r.Uint16(); err != nil {
		return err
	}
	return a.readOptions(r)
}

// ReAssocReq asks the new AP for reassociation, naming the AP the
// station is leaving.
type ReAssocReq struct {
	ManagementFrame
	Capability     Capability
	ListenInterval uint16
	CurrentAP      Addr
}

func NewReAssocReq(da, sa, bssid Addr) *ReAssocReq {
	a := &ReAssocReq{}
	a.Type, a.Subtype = FrameTypeManagement, SubtypeReAssocReq
	a.Addr1, a.Addr2, a.Addr3 = da, sa, bssid
	return a
}

func (a *ReAssocReq) PDUType() PDUType { return TypeReAssocReq }
func (a *ReAssocReq) Matches(tag PDUType) bool { return TypeReAssocReq.Matches(tag) }
func (a *ReAssocReq) HeaderSize() int { return a.baseSize() + 2 + 2 + 6 }
func (a *ReAssocReq) Size() int { return a.HeaderSize() }
func (a *ReAssocReq) Serialize() []byte { return serializeFrame(a) }
func (a *ReAssocReq) Payload() Frame { return nil }

func (a *ReAssocReq) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := a.writeBase(w, SubtypeReAssocReq); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.Capability.Pack()); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.ListenInterval); err != nil {
		return w.Offset(), err
	}
	if err := w.Hw6([6]byte(a.CurrentAP)); err != nil {
		return w.Offset(), err
	}
	if err := a.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (a *ReAssocReq) Clone() Frame {
	out := *a
	out.ManagementFrame = a.cloneBase()
	return &out
}

func (a *ReAssocReq) parse(r *wire.Reader) error {
	if err := a.readBase(r); err != nil {
		return err
	}
	caps, err := r.Uint16()
	if err != nil {
		return err
	}
	a.Capability = UnpackCapability(caps)
	if a.ListenInterval, err = r.Uint16(); err != nil {
		return err
	}
	hw, err := r.Hw6()
	if err != nil {
		return err
	}
	a.CurrentAP = Addr(hw)
	return a.readOptions(r)
}

// ReAssocResp carries the AP's answer to a reassociation request.
type ReAssocResp struct {
	ManagementFrame
	Capability Capability
	StatusCode uint16
	AID        uint16
}

func NewReAssocResp(da, sa, bssid Addr) *ReAssocResp {
	a := &ReAssocResp{}
	a.Type, a.Subtype = FrameTypeManagement, SubtypeReAssocResp
	a.Addr1, a.Addr2, a.Addr3 = da, sa, bssid
	return a
}

func (a *ReAssocResp) PDUType() PDUType { return TypeReAssocResp }
func (a *ReAssocResp) Matches(tag PDUType) bool { return TypeReAssocResp.Matches(tag) }
func (a *ReAssocResp) HeaderSize() int { return a.baseSize() + 2 + 2 + 2 }
func (a *ReAssocResp) Size() int { return a.HeaderSize() }
func (a *ReAssocResp) Serialize() []byte { return serializeFrame(a) }
func (a *ReAssocResp) Payload() Frame { return nil }

func (a *ReAssocResp) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := a.writeBase(w, SubtypeReAssocResp); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.Capability.Pack()); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.StatusCode); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.AID); err != nil {
		return w.Offset(), err
	}
	if err := a.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (a *ReAssocResp) Clone() Frame {
	out := *a
	out.ManagementFrame = a.cloneBase()
	return &out
}

func (a *ReAssocResp) parse(r *wire.Reader) error {
	if err := a.readBase(r); err != nil {
		return err
	}
	caps, err := r.Uint16()
	if err != nil {
		return err
	}
	a.Capability = UnpackCapability(caps)
	if a.StatusCode, err = r.Uint16(); err != nil {
		return err
	}
	if a.AID, err = r.Uint16(); err != nil {
		return err
	}
	return a.readOptions(r)
}

// Authentication algorithm numbers.
const (
	AuthAlgOpenSystem uint16 = 0
	AuthAlgSharedKey  uint16 = 1
)

// Auth carries one step of the authentication exchange.
type Auth struct {
	ManagementFrame
	Algorithm  uint16
	AuthSeq    uint16
	StatusCode uint16
}

func NewAuth(da, sa, bssid Addr) *Auth {
	a := &Auth{}
	a.Type, a.Subtype = FrameTypeManagement, SubtypeAuth
	a.Addr1, a.Addr2, a.Addr3 = da, sa, bssid
	return a
}

func (a *Auth) PDUType() PDUType { return TypeAuth }
func (a *Auth) Matches(tag PDUType) bool { return TypeAuth.Matches(tag) }
func (a *Auth) HeaderSize() int { return a.baseSize() + 2 + 2 + 2 }
func (a *Auth) Size() int { return a.HeaderSize() }
func (a *Auth) Serialize() []byte { return serializeFrame(a) }
func (a *Auth) Payload() Frame { return nil }

func (a *Auth) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := a.writeBase(w, SubtypeAuth); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.Algorithm); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.AuthSeq); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(a.StatusCode); err != nil {
		return w.Offset(), err
	}
	if err := a.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (a *Auth) Clone() Frame {
	out := *a
	out.ManagementFrame = a.cloneBase()
	return &out
}

func (a *Auth) parse(r *wire.Reader) error {
	if err := a.readBase(r); err != nil {
		return err
	}
	var err error
	if a.Algorithm, err = r.Uint16(); err != nil {
		return err
	}
	if a.AuthSeq, err = r.Uint16(); err != nil {
		return err
	}
	if a.StatusCode, err = r.Uint16(); err != nil {
		return err
	}
	return a.readOptions(r)
}

// Deauth tears authentication down.
type Deauth struct {
	ManagementFrame
	ReasonCode uint16
}

func NewDeauth(da, sa, bssid Addr) *Deauth {
	d := &Deauth{}
	d.Type, d.Subtype = FrameTypeManagement, SubtypeDeauth
	d.Addr1, d.Addr2, d.Addr3 = da, sa, bssid
	return d
}

func (d *Deauth) PDUType() PDUType { return TypeDeauth }
func (d *Deauth) Matches(tag PDUType) bool { return TypeDeauth.Matches(tag) }
func (d *Deauth) HeaderSize() int { return d.baseSize() + 2 }
func (d *Deauth) Size() int { return d.HeaderSize() }
func (d *Deauth) Serialize() []byte { return serializeFrame(d) }
func (d *Deauth) Payload() Frame { return nil }

func (d *Deauth) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := d.writeBase(w, SubtypeDeauth); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(d.ReasonCode); err != nil {
		return w.Offset(), err
	}
	if err := d.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (d *Deauth) Clone() Frame {
	out := *d
	out.ManagementFrame = d.cloneBase()
	return &out
}

func (d *Deauth) parse(r *wire.Reader) error {
	if err := d.readBase(r); err != nil {
		return err
	}
	var err error
	if d.ReasonCode, err = r.Uint16(); err != nil {
		return err
	}
	return d.readOptions(r)
}

// Disassoc tears the association down while authentication stands.
type Disassoc struct {
	ManagementFrame
	ReasonCode uint16
}

func NewDisassoc(da, sa, bssid Addr) *Disassoc {
	d := &Disassoc{}
	d.Type, d.Subtype = FrameTypeManagement, SubtypeDisassoc
	d.Addr1, d.Addr2, d.Addr3 = da, sa, bssid
	return d
}

func (d *Disassoc) PDUType() PDUType { return TypeDisassoc }
func (d *Disassoc) Matches(tag PDUType) bool { return TypeDisassoc.Matches(tag) }
func (d *Disassoc) HeaderSize() int { return d.baseSize() + 2 }
func (d *Disassoc) Size() int { return d.HeaderSize() }
func (d *Disassoc) Serialize() []byte { return serializeFrame(d) }
func (d *Disassoc) Payload() Frame { return nil }

func (d *Disassoc) SerializeTo(buf []byte) (int, error) {
	w := wire.NewWriter(buf)
	if err := d.writeBase(w, SubtypeDisassoc); err != nil {
		return w.Offset(), err
	}
	if err := w.Uint16(d.ReasonCode); err != nil {
		return w.Offset(), err
	}
	if err := d.Options.Append(w); err != nil {
		return w.Offset(), err
	}
	return w.Offset(), nil
}

func (d *Disassoc) Clone() Frame {
	out := *d
	out.ManagementFrame = d.cloneBase()
	return &out
}

func (d *Disassoc) parse(r *wire.Reader) error {
	if err := d.readBase(r); err != nil {
		return err
	}
	var err error
	if d.ReasonCode, err = r.Uint16(); err != nil {
		return err
	}
	return d.readOptions(r)
}
