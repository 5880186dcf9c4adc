package dot11

import (
	"math"

	"github.com/wlantools/dot11/ie"
	"github.com/wlantools/dot11/wire"
)

// Reason codes for Deauth and Disassoc frames (802.11-2007, 7.3.1.7).
const (
	ReasonUnspecified           uint16 = 1
	ReasonPrevAuthNotValid      uint16 = 2
	ReasonStaLeavingIBSS        uint16 = 3
	ReasonInactivity            uint16 = 4
	ReasonCantHandleSta         uint16 = 5
	ReasonClass2FromNoAuth      uint16 = 6
	ReasonClass3FromNoAssoc     uint16 = 7
	ReasonStaLeavingBSS         uint16 = 8
	ReasonStaNotAuthenticated   uint16 = 9
	ReasonPowerCapNotValid      uint16 = 10
	ReasonSupportedChanNotValid uint16 = 11
	ReasonInvalidIE             uint16 = 13
	ReasonMICFailure            uint16 = 14
	ReasonHandshakeTimeout      uint16 = 15
	ReasonGroupKeyTimeout       uint16 = 16
	ReasonIEMismatch            uint16 = 17
	ReasonInvalidGroupCipher    uint16 = 18
	ReasonInvalidPairwiseCipher uint16 = 19
	ReasonInvalidAKMP           uint16 = 20
	ReasonUnsupportedRSNVersion uint16 = 21
	ReasonInvalidRSNCaps        uint16 = 22
	Reason8021XAuthFailed       uint16 = 23
	ReasonCipherSuiteRejected   uint16 = 24
)

// CountryTriplet describes one channel range in the country element.
type CountryTriplet struct {
	FirstChannel uint8
	NumChannels  uint8
	MaxPower     uint8
}

// ChannelMapEntry is one (channel, map) pair of the IBSS DFS element.
type ChannelMapEntry struct {
	Channel uint8
	Map     uint8
}

// The Set* helpers below build the exact wire layout of one information
// element each and install it in the frame's option chain, replacing an
// earlier element with the same tag if present.

// SetSSID installs the SSID element. An empty SSID is legal and means
// wildcard.
func (m *ManagementFrame) SetSSID(ssid string) error {
	return m.Options.Set(ie.TagSSID, []byte(ssid))
}

// SSID returns the frame's SSID, or the empty string when the element
// is absent.
func (m *ManagementFrame) SSID() string {
	v, _ := m.Options.Find(ie.TagSSID)
	return string(v)
}

// encodeRate turns Mbps into the 500 kbps units of the rates elements,
// with the basic-rate bit set.
func encodeRate(mbps float64) byte {
	return byte(math.Round(mbps*2)) | 0x80
}

// DecodeRates turns rates-element bytes back into Mbps values,
// stripping the basic-rate bit.
func DecodeRates(b []byte) []float64 {
	out := make([]float64, 0, len(b))
	for _, v := range b {
		out = append(out, float64(v&0x7f)/2)
	}
	return out
}

// SetSupportedRates installs the supported-rates element. All given
// rates are marked basic. A list longer than eight spills into the
// extended supported rates element, as the standard requires.
func (m *ManagementFrame) SetSupportedRates(mbps []float64) error {
	encoded := make([]byte, 0, len(mbps))
	for _, r := range mbps {
		encoded = append(encoded, encodeRate(r))
	}
	if len(encoded) <= 8 {
		return m.Options.Set(ie.TagSupportedRates, encoded)
	}
	if err := m.Options.Set(ie.TagSupportedRates, encoded[:8]); err != nil {
		return err
	}
	return m.Options.Set(ie.TagExtendedSupportedRates, encoded[8:])
}

// SupportedRates returns the rates advertised in the supported and
// extended supported rates elements, in Mbps.
func (m *ManagementFrame) SupportedRates() []float64 {
	var out []float64
	if v, ok := m.Options.Find(ie.TagSupportedRates); ok {
		out = append(out, DecodeRates(v)...)
	}
	if v, ok := m.Options.Find(ie.TagExtendedSupportedRates); ok {
		out = append(out, DecodeRates(v)...)
	}
	return out
}

// SetFHParameterSet installs the frequency-hopping parameter set.
func (m *ManagementFrame) SetFHParameterSet(dwellTime uint16, hopSet, hopPattern, hopIndex uint8) error {
	b := make([]byte, 5)
	w := wire.NewWriter(b)
	w.Uint16(dwellTime)
	w.Uint8(hopSet)
	w.Uint8(hopPattern)
	w.Uint8(hopIndex)
	return m.Options.Set(ie.TagFHSet, b)
}

// SetDSParameterSet installs the DS parameter set: the current channel.
func (m *ManagementFrame) SetDSParameterSet(currentChannel uint8) error {
	return m.Options.Set(ie.TagDSSet, []byte{currentChannel})
}

// DSChannel returns the channel from the DS parameter set.
func (m *ManagementFrame) DSChannel() (uint8, bool) {
	v, ok := m.Options.Find(ie.TagDSSet)
	if !ok || len(v) != 1 {
		return 0, false
	}
	return v[0], true
}

// SetCFParameterSet installs the CF parameter set.
func (m *ManagementFrame) SetCFParameterSet(cfpCount, cfpPeriod uint8, cfpMaxDuration, cfpDurRemaining uint16) error {
	b := make([]byte, 6)
	w := wire.NewWriter(b)
	w.Uint8(cfpCount)
	w.Uint8(cfpPeriod)
	w.Uint16(cfpMaxDuration)
	w.Uint16(cfpDurRemaining)
	return m.Options.Set(ie.TagCFSet, b)
}

// SetTIM installs the traffic indication map element.
func (m *ManagementFrame) SetTIM(dtimCount, dtimPeriod, bitmapControl uint8, partialVirtualBitmap []byte) error {
	b := make([]byte, 0, 3+len(partialVirtualBitmap))
	b = append(b, dtimCount, dtimPeriod, bitmapControl)
	b = append(b, partialVirtualBitmap...)
	return m.Options.Set(ie.TagTIM, b)
}

// SetIBSSParameterSet installs the IBSS parameter set: the ATIM window.
func (m *ManagementFrame) SetIBSSParameterSet(atimWindow uint16) error {
	b := make([]byte, 2)
	wire.NewWriter(b).Uint16(atimWindow)
	return m.Options.Set(ie.TagIBSSSet, b)
}

// SetCountry installs the country element. The country string is
// padded to the three bytes the element requires.
func (m *ManagementFrame) SetCountry(country string, triplets []CountryTriplet) error {
	b := make([]byte, 0, 3+3*len(triplets))
	code := []byte(country)
	for len(code) < 3 {
		code = append(code, ' ')
	}
	b = append(b, code[:3]...)
	for _, t := range triplets {
		b = append(b, t.FirstChannel, t.NumChannels, t.MaxPower)
	}
	return m.Options.Set(ie.TagCountry, b)
}

// SetHoppingPatternParams installs the FH hopping-pattern parameters.
func (m *ManagementFrame) SetHoppingPatternParams(primeRadix, numberChannels uint8) error {
	return m.Options.Set(ie.TagHoppingPatternParams, []byte{primeRadix, numberChannels})
}

// SetHoppingPatternTable installs the FH hopping-pattern table.
func (m *ManagementFrame) SetHoppingPatternTable(flag, numberOfSets, modulus, offset uint8, randomTable []byte) error {
	b := make([]byte, 0, 4+len(randomTable))
	b = append(b, flag, numberOfSets, modulus, offset)
	b = append(b, randomTable...)
	return m.Options.Set(ie.TagHoppingPatternTable, b)
}

// SetRequestInformation installs the request element: the tag numbers
// being solicited, one byte each.
func (m *ManagementFrame) SetRequestInformation(elements []uint8) error {
	return m.Options.Set(ie.TagRequest, elements)
}

// SetBSSLoad installs the BSS load element.
func (m *ManagementFrame) SetBSSLoad(stationCount uint16, channelUtilization uint8, availableCapacity uint16) error {
	b := make([]byte, 5)
	w := wire.NewWriter(b)
	w.Uint16(stationCount)
	w.Uint8(channelUtilization)
	w.Uint16(availableCapacity)
	return m.Options.Set(ie.TagBSSLoad, b)
}

// SetEDCAParameterSet installs the EDCA parameter set: the four access
// category records written verbatim, little-endian.
func (m *ManagementFrame) SetEDCAParameterSet(acBE, acBK, acVI, acVO uint32) error {
	b := make([]byte, 16)
	w := wire.NewWriter(b)
	w.Uint32(acBE)
	w.Uint32(acBK)
	w.Uint32(acVI)
	w.Uint32(acVO)
	return m.Options.Set(ie.TagEDCA, b)
}

// SetChallengeText installs the challenge text element used by
// shared-key authentication.
func (m *ManagementFrame) SetChallengeText(text []byte) error {
	return m.Options.Set(ie.TagChallengeText, text)
}

// SetPowerConstraint installs the power constraint element.
func (m *ManagementFrame) SetPowerConstraint(localPowerConstraint uint8) error {
	return m.Options.Set(ie.TagPowerConstraint, []byte{localPowerConstraint})
}

// SetPowerCapability installs the power capability element.
func (m *ManagementFrame) SetPowerCapability(minTxPower, maxTxPower uint8) error {
	return m.Options.Set(ie.TagPowerCapability, []byte{minTxPower, maxTxPower})
}

// SetTPCReport installs the TPC report element.
func (m *ManagementFrame) SetTPCReport(transmitPower, linkMargin uint8) error {
	return m.Options.Set(ie.TagTPCReport, []byte{transmitPower, linkMargin})
}

// SetChannelSwitch installs the channel switch announcement element.
func (m *ManagementFrame) SetChannelSwitch(switchMode, newChannel, switchCount uint8) error {
	return m.Options.Set(ie.TagChannelSwitch, []byte{switchMode, newChannel, switchCount})
}

// SetQuiet installs the quiet element.
func (m *ManagementFrame) SetQuiet(quietCount, quietPeriod uint8, quietDuration, quietOffset uint16) error {
	b := make([]byte, 6)
	w := wire.NewWriter(b)
	w.Uint8(quietCount)
	w.Uint8(quietPeriod)
	w.Uint16(quietDuration)
	w.Uint16(quietOffset)
	return m.Options.Set(ie.TagQuiet, b)
}

// SetIBSSDFS installs the IBSS DFS element.
func (m *ManagementFrame) SetIBSSDFS(owner Addr, recoveryInterval uint8, channelMap []ChannelMapEntry) error {
	b := make([]byte, 0, 7+2*len(channelMap))
	b = append(b, owner[:]...)
	b = append(b, recoveryInterval)
	for _, e := range channelMap {
		b = append(b, e.Channel, e.Map)
	}
	return m.Options.Set(ie.TagIBSSDFS, b)
}

// SetERPInformation installs the ERP information element.
func (m *ManagementFrame) SetERPInformation(flags uint8) error {
	return m.Options.Set(ie.TagERPInformation, []byte{flags})
}

// SetQoSCapability installs the QoS capability element.
func (m *ManagementFrame) SetQoSCapability(qosInfo uint8) error {
	return m.Options.Set(ie.TagQoSCapability, []byte{qosInfo})
}

// SetRSNInformation installs the RSN element.
func (m *ManagementFrame) SetRSNInformation(info ie.RSNInfo) error {
	return m.Options.Set(ie.TagRSN, info.Encode())
}

// RSNInformation decodes the frame's RSN element. The second return is
// false when the element is absent.
func (m *ManagementFrame) RSNInformation() (ie.RSNInfo, bool, error) {
	v, ok := m.Options.Find(ie.TagRSN)
	if !ok {
		return ie.RSNInfo{}, false, nil
	}
	info, err := ie.DecodeRSN(v)
	if err != nil {
		return ie.RSNInfo{}, true, err
	}
	return info, true, nil
}
