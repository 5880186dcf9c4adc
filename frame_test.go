package dot11

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlantools/dot11/ie"
)

var (
	testDA    = MustParseAddr("aa:bb:cc:dd:ee:ff")
	testSA    = MustParseAddr("11:22:33:44:55:66")
	testBSSID = MustParseAddr("00:01:02:03:04:05")
)

// roundTrip serializes f, parses the bytes back and checks the size
// invariant along the way.
func roundTrip(t *testing.T, f Frame) Frame {
	t.Helper()
	b := f.Serialize()
	require.Equal(t, f.Size(), len(b), "serialized length vs Size")
	require.Equal(t, f.HeaderSize()+payloadSize(f.Payload()), len(b), "size composition")

	parsed, err := Parse(b)
	require.NoError(t, err)
	require.Equal(t, f.PDUType(), parsed.PDUType())
	assert.Equal(t, f, parsed)
	return parsed
}

func TestBeaconRoundTrip(t *testing.T) {
	b := NewBeacon(Broadcast, testSA, testBSSID)
	b.DurationID = 0x013a
	b.SeqControl = SeqControl{FragNumber: 2, SeqNumber: 0x5b1}
	b.Timestamp = 0x0102030405060708
	b.Interval = 100
	b.Capability.ESS = true
	b.Capability.Privacy = true
	require.NoError(t, b.SetSSID("lab"))
	require.NoError(t, b.SetSupportedRates([]float64{1, 2, 5.5, 11}))
	require.NoError(t, b.SetDSParameterSet(11))
	roundTrip(t, b)
}

func TestBeaconWireHeader(t *testing.T) {
	b := NewBeacon(Broadcast, testBSSID, testBSSID)
	b.Interval = 100
	require.NoError(t, b.SetSSID("test"))
	require.NoError(t, b.SetSupportedRates([]float64{1, 2}))
	require.NoError(t, b.SetDSParameterSet(6))

	out := b.Serialize()
	want := []byte{0x80, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	assert.Equal(t, want, out[:10])

	// SSID element right after the fixed parameters.
	assert.Equal(t, []byte{0, 4, 't', 'e', 's', 't'}, out[36:42])
	// Basic rates 1 and 2 Mbps.
	assert.Equal(t, []byte{1, 2, 0x82, 0x84}, out[42:46])
	// DS parameter set.
	assert.Equal(t, []byte{3, 1, 6}, out[46:49])
}

func TestProbeReqRoundTrip(t *testing.T) {
	p := NewProbeReq(Broadcast, testSA, Broadcast)
	require.NoError(t, p.SetSSID("")) // wildcard
	require.NoError(t, p.SetSupportedRates([]float64{1, 2, 5.5, 11}))
	require.NoError(t, p.SetRequestInformation([]uint8{ie.TagSSID, ie.TagSupportedRates}))
	roundTrip(t, p)
}

func TestProbeRespRoundTrip(t *testing.T) {
	p := NewProbeResp(testDA, testSA, testBSSID)
	p.Timestamp = 42
	p.Interval = 200
	p.Capability.ESS = true
	require.NoError(t, p.SetSSID("lab"))
	require.NoError(t, p.SetCountry("US", []CountryTriplet{{FirstChannel: 1, NumChannels: 11, MaxPower: 30}}))
	roundTrip(t, p)
}

func TestAssocRoundTrips(t *testing.T) {
	req := NewAssocReq(testDA, testSA, testBSSID)
	req.Capability.ESS = true
	req.ListenInterval = 10
	require.NoError(t, req.SetSSID("lab"))
	roundTrip(t, req)

	resp := NewAssocResp(testDA, testSA, testBSSID)
	resp.StatusCode = 0
	resp.AID = 0xc001
	require.NoError(t, resp.SetSupportedRates([]float64{6, 9, 12}))
	roundTrip(t, resp)

	reReq := NewReAssocReq(testDA, testSA, testBSSID)
	reReq.ListenInterval = 5
	reReq.CurrentAP = testBSSID
	roundTrip(t, reReq)

	reResp := NewReAssocResp(testDA, testSA, testBSSID)
	reResp.StatusCode = 17
	reResp.AID = 1
	roundTrip(t, reResp)
}

func TestAuthDeauthDisassocRoundTrips(t *testing.T) {
	a := NewAuth(testDA, testSA, testBSSID)
	a.Algorithm = AuthAlgSharedKey
	a.AuthSeq = 2
	a.StatusCode = 0
	require.NoError(t, a.SetChallengeText([]byte("challenge me")))
	roundTrip(t, a)

	d := NewDeauth(testDA, testSA, testBSSID)
	d.ReasonCode = ReasonStaLeavingBSS
	roundTrip(t, d)

	dis := NewDisassoc(testDA, testSA, testBSSID)
	dis.ReasonCode = ReasonInactivity
	roundTrip(t, dis)
}

func TestControlRoundTrips(t *testing.T) {
	roundTrip(t, NewRTS(testDA, testSA))
	roundTrip(t, NewCTS(testDA))
	roundTrip(t, NewACK(testDA))
	roundTrip(t, NewPSPoll(testDA, testSA))
	roundTrip(t, NewCFEnd(testDA, testSA))
	roundTrip(t, NewCFEndAck(testDA, testSA))

	bar := NewBlockAckReq(testDA, testSA)
	bar.SetTID(5)
	bar.SetStartSequence(0, 0x123)
	roundTrip(t, bar)

	ba := NewBlockAck(testDA, testSA)
	ba.SetTID(7)
	ba.SetStartSequence(3, 0xfff)
	ba.Bitmap[0] = 0x01
	ba.Bitmap[15] = 0x80
	roundTrip(t, ba)
}

func TestCTSAndACKSize(t *testing.T) {
	assert.Equal(t, 10, NewCTS(testDA).HeaderSize())
	assert.Equal(t, 10, NewACK(testDA).HeaderSize())
	assert.Equal(t, 16, NewRTS(testDA, testSA).HeaderSize())
}

func TestBlockAckReqEncoding(t *testing.T) {
	bar := NewBlockAckReq(testDA, testSA)
	bar.SetTID(5)
	bar.SetStartSequence(0, 0x123)

	out := bar.Serialize()
	// TA frames: 2+2+6+6 = 16 header bytes, then BAR control and the
	// starting sequence.
	assert.Equal(t, []byte{0x50, 0x00}, out[16:18])
	assert.Equal(t, []byte{0x30, 0x12}, out[18:20])

	assert.Equal(t, uint8(5), bar.TID())
	assert.Equal(t, uint8(0), bar.FragNumber())
	assert.Equal(t, uint16(0x123), bar.StartSeqNumber())
}

func TestDataRoundTrip(t *testing.T) {
	d := NewData(testDA, testSA, testBSSID, RawPayload([]byte{0xde, 0xad, 0xbe, 0xef}))
	d.SeqControl.SeqNumber = 77
	parsed := roundTrip(t, d)

	pl := parsed.Payload()
	require.NotNil(t, pl)
	assert.Equal(t, RawPayload([]byte{0xde, 0xad, 0xbe, 0xef}), pl)
}

func TestQoSDataRoundTrip(t *testing.T) {
	q := NewQoSData(testDA, testSA, testBSSID, RawPayload([]byte{1, 2, 3}))
	q.QoSControl = 0x0005
	roundTrip(t, q)

	// With both DS flags the frame grows by addr4 and keeps the QoS
	// control after it.
	q.ToDS, q.FromDS = true, true
	q.Addr4 = testSA
	roundTrip(t, q)
}

func TestDataAddr4Size(t *testing.T) {
	d := NewData(testDA, testSA, testBSSID, nil)
	base := d.HeaderSize()
	assert.Equal(t, 24, base)

	d.ToDS = true
	assert.Equal(t, base, d.HeaderSize())
	d.ToDS, d.FromDS = false, true
	assert.Equal(t, base, d.HeaderSize())

	d.ToDS, d.FromDS = true, true
	assert.Equal(t, base+6, d.HeaderSize())
}

func TestDataAddressing(t *testing.T) {
	d := NewData(testDA, testSA, testBSSID, nil)
	assert.Equal(t, testDA, d.DstAddr())
	assert.Equal(t, testSA, d.SrcAddr())

	// From the DS: addr1=DA, addr2=BSSID, addr3=SA.
	d = NewData(testDA, testBSSID, testSA, nil)
	d.FromDS = true
	assert.Equal(t, testDA, d.DstAddr())
	assert.Equal(t, testSA, d.SrcAddr())

	// To the DS: addr1=BSSID, addr2=SA, addr3=DA.
	d = NewData(testBSSID, testSA, testDA, nil)
	d.ToDS = true
	assert.Equal(t, testDA, d.DstAddr())
	assert.Equal(t, testSA, d.SrcAddr())

	// WDS: addr4 is the source.
	d = NewData(testDA, testBSSID, testDA, nil)
	d.ToDS, d.FromDS = true, true
	d.Addr4 = testSA
	assert.Equal(t, testSA, d.SrcAddr())
}

func TestParseDispatch(t *testing.T) {
	beacon := NewBeacon(Broadcast, testSA, testBSSID).Serialize()
	assert.Equal(t, []byte{0x80, 0x00}, beacon[:2])
	f, err := Parse(beacon)
	require.NoError(t, err)
	assert.Equal(t, TypeBeacon, f.PDUType())

	probe := NewProbeReq(Broadcast, testSA, Broadcast).Serialize()
	assert.Equal(t, []byte{0x40, 0x00}, probe[:2])
	f, err = Parse(probe)
	require.NoError(t, err)
	assert.Equal(t, TypeProbeReq, f.PDUType())

	ba := NewBlockAck(testDA, testSA).Serialize()
	assert.Equal(t, []byte{0x94, 0x00}, ba[:2])
	f, err = Parse(ba)
	require.NoError(t, err)
	assert.Equal(t, TypeBlockAck, f.PDUType())

	cts := NewCTS(testDA).Serialize()
	assert.Equal(t, []byte{0xc4, 0x00}, cts[:2])
	f, err = Parse(cts)
	require.NoError(t, err)
	assert.Equal(t, TypeCTS, f.PDUType())
}

func TestParseUnknownSubtypeGeneric(t *testing.T) {
	// ATIM (management subtype 9) has no dedicated variant.
	b := NewBeacon(testDA, testSA, testBSSID).Serialize()
	b[0] = 0x90 // type 0, subtype 9

	f, err := Parse(b)
	require.NoError(t, err)
	g, ok := f.(*Generic)
	require.True(t, ok)
	assert.Equal(t, TypeManagement, g.PDUType())
	assert.True(t, g.Matches(TypeDot11))
	assert.Equal(t, len(b), g.Size())

	// The opaque body round-trips bit-exact.
	assert.Equal(t, b, g.Serialize())
}

func TestParseReservedTypeFails(t *testing.T) {
	b := make([]byte, 10)
	b[0] = 0x0c // type 3
	_, err := Parse(b)
	require.Error(t, err)
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse([]byte{0x80})
	require.Error(t, err)

	// Beacon cut inside the fixed parameters.
	b := NewBeacon(testDA, testSA, testBSSID).Serialize()
	_, err = Parse(b[:30])
	require.Error(t, err)

	// Option chain with a lying length byte.
	full := func() []byte {
		bc := NewBeacon(testDA, testSA, testBSSID)
		require.NoError(t, bc.SetSSID("name"))
		return bc.Serialize()
	}()
	full[37] = 200 // SSID length now points past the buffer
	_, err = Parse(full)
	require.Error(t, err)
}

func TestCanonicalSubtypeForced(t *testing.T) {
	b := NewBeacon(testDA, testSA, testBSSID)
	// Whatever garbage sits in the control word, serialization stamps
	// the variant's identity but keeps the flags.
	b.FrameControl.Type = FrameTypeData
	b.FrameControl.Subtype = 3
	b.FrameControl.Retry = true

	out := b.Serialize()
	fc := UnpackFrameControl(uint16(out[0]) | uint16(out[1])<<8)
	assert.Equal(t, FrameTypeManagement, fc.Type)
	assert.Equal(t, SubtypeBeacon, fc.Subtype)
	assert.True(t, fc.Retry)
}

func TestSerializeToShortBuffer(t *testing.T) {
	b := NewBeacon(testDA, testSA, testBSSID)
	_, err := b.SerializeTo(make([]byte, b.Size()-1))
	require.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	b := NewBeacon(testDA, testSA, testBSSID)
	require.NoError(t, b.SetSSID("one"))

	c := b.Clone().(*Beacon)
	require.NoError(t, c.SetSSID("two"))
	c.Addr1 = testSA

	assert.Equal(t, "one", b.SSID())
	assert.NotEqual(t, b.Addr1, c.Addr1)

	d := NewData(testDA, testSA, testBSSID, RawPayload([]byte{1, 2}))
	cd := d.Clone().(*Data)
	cd.Payload().(RawPayload)[0] = 9
	assert.Equal(t, RawPayload([]byte{1, 2}), d.Payload())
}

func TestMatchesHierarchy(t *testing.T) {
	b := NewBeacon(testDA, testSA, testBSSID)
	assert.True(t, b.Matches(TypeBeacon))
	assert.True(t, b.Matches(TypeManagement))
	assert.True(t, b.Matches(TypeDot11))
	assert.False(t, b.Matches(TypeControl))
	assert.False(t, b.Matches(TypeProbeReq))

	q := NewQoSData(testDA, testSA, testBSSID, nil)
	assert.True(t, q.Matches(TypeQoSData))
	assert.True(t, q.Matches(TypeData))
	assert.True(t, q.Matches(TypeDot11))

	r := NewReAssocResp(testDA, testSA, testBSSID)
	assert.True(t, r.Matches(TypeReAssocResp))
	assert.False(t, r.Matches(TypeAssocResp))
}

type recordingSender struct {
	ifIndex int
	sent    [][]byte
}

func (s *recordingSender) Send(ifIndex int, b []byte) error {
	s.ifIndex = ifIndex
	s.sent = append(s.sent, b)
	return nil
}

func TestSendDelegates(t *testing.T) {
	s := &recordingSender{}
	b := NewBeacon(Broadcast, testSA, testBSSID)
	require.NoError(t, Send(b, s, 7))
	require.Len(t, s.sent, 1)
	assert.Equal(t, 7, s.ifIndex)
	assert.Equal(t, b.Serialize(), s.sent[0])
}
