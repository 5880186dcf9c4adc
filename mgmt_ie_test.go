package dot11

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wlantools/dot11/ie"
)

func newTestMgmt() *ProbeResp {
	return NewProbeResp(testDA, testSA, testBSSID)
}

func TestRateEncoding(t *testing.T) {
	m := newTestMgmt()
	require.NoError(t, m.SetSupportedRates([]float64{1.0, 2.0, 5.5, 11.0, 6.0}))

	v, ok := m.Options.Find(ie.TagSupportedRates)
	require.True(t, ok)
	assert.Equal(t, []byte{0x82, 0x84, 0x8b, 0x96, 0x8c}, v)

	assert.Equal(t, []float64{1.0, 2.0, 5.5, 11.0, 6.0}, m.SupportedRates())
}

func TestRateSplitOverEight(t *testing.T) {
	rates := []float64{1, 2, 5.5, 11, 6, 9, 12, 18, 24, 36, 48, 54}
	m := newTestMgmt()
	require.NoError(t, m.SetSupportedRates(rates))

	basic, ok := m.Options.Find(ie.TagSupportedRates)
	require.True(t, ok)
	assert.Len(t, basic, 8)

	ext, ok := m.Options.Find(ie.TagExtendedSupportedRates)
	require.True(t, ok)
	assert.Len(t, ext, 4)
	assert.Equal(t, []byte{0x80 | 48, 0x80 | 72, 0x80 | 96, 0x80 | 108}, ext)

	assert.Equal(t, rates, m.SupportedRates())
}

func TestSSIDHelpers(t *testing.T) {
	m := newTestMgmt()
	assert.Equal(t, "", m.SSID())

	require.NoError(t, m.SetSSID("corp-net"))
	assert.Equal(t, "corp-net", m.SSID())

	// Setting again replaces, not duplicates.
	require.NoError(t, m.SetSSID("other"))
	assert.Equal(t, "other", m.SSID())
	assert.Equal(t, 1, m.Options.Count())
}

func TestFixedLayoutElements(t *testing.T) {
	m := newTestMgmt()

	require.NoError(t, m.SetFHParameterSet(0x1234, 1, 2, 3))
	v, _ := m.Options.Find(ie.TagFHSet)
	assert.Equal(t, []byte{0x34, 0x12, 1, 2, 3}, v)

	require.NoError(t, m.SetCFParameterSet(1, 2, 0x0304, 0x0506))
	v, _ = m.Options.Find(ie.TagCFSet)
	assert.Equal(t, []byte{1, 2, 0x04, 0x03, 0x06, 0x05}, v)

	require.NoError(t, m.SetIBSSParameterSet(0x0102))
	v, _ = m.Options.Find(ie.TagIBSSSet)
	assert.Equal(t, []byte{0x02, 0x01}, v)

	require.NoError(t, m.SetTIM(1, 3, 0, []byte{0xaa, 0x55}))
	v, _ = m.Options.Find(ie.TagTIM)
	assert.Equal(t, []byte{1, 3, 0, 0xaa, 0x55}, v)

	require.NoError(t, m.SetQuiet(1, 2, 0x0304, 0x0506))
	v, _ = m.Options.Find(ie.TagQuiet)
	assert.Equal(t, []byte{1, 2, 0x04, 0x03, 0x06, 0x05}, v)

	require.NoError(t, m.SetBSSLoad(0x0102, 50, 0x0304))
	v, _ = m.Options.Find(ie.TagBSSLoad)
	assert.Equal(t, []byte{0x02, 0x01, 50, 0x04, 0x03}, v)

	require.NoError(t, m.SetEDCAParameterSet(0x01020304, 0x05060708, 0x090a0b0c, 0x0d0e0f10))
	v, _ = m.Options.Find(ie.TagEDCA)
	assert.Equal(t, []byte{
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05,
		0x0c, 0x0b, 0x0a, 0x09,
		0x10, 0x0f, 0x0e, 0x0d,
	}, v)
}

func TestSingleByteElements(t *testing.T) {
	m := newTestMgmt()

	require.NoError(t, m.SetDSParameterSet(6))
	ch, ok := m.DSChannel()
	require.True(t, ok)
	assert.Equal(t, uint8(6), ch)

	require.NoError(t, m.SetPowerConstraint(3))
	v, _ := m.Options.Find(ie.TagPowerConstraint)
	assert.Equal(t, []byte{3}, v)

	require.NoError(t, m.SetERPInformation(0x04))
	v, _ = m.Options.Find(ie.TagERPInformation)
	assert.Equal(t, []byte{0x04}, v)

	require.NoError(t, m.SetQoSCapability(0x80))
	v, _ = m.Options.Find(ie.TagQoSCapability)
	assert.Equal(t, []byte{0x80}, v)

	require.NoError(t, m.SetPowerCapability(7, 21))
	v, _ = m.Options.Find(ie.TagPowerCapability)
	assert.Equal(t, []byte{7, 21}, v)

	require.NoError(t, m.SetTPCReport(17, 3))
	v, _ = m.Options.Find(ie.TagTPCReport)
	assert.Equal(t, []byte{17, 3}, v)

	require.NoError(t, m.SetChannelSwitch(1, 40, 5))
	v, _ = m.Options.Find(ie.TagChannelSwitch)
	assert.Equal(t, []byte{1, 40, 5}, v)
}

func TestCountryElement(t *testing.T) {
	m := newTestMgmt()
	require.NoError(t, m.SetCountry("US", []CountryTriplet{
		{FirstChannel: 1, NumChannels: 11, MaxPower: 30},
		{FirstChannel: 36, NumChannels: 4, MaxPower: 23},
	}))
	v, _ := m.Options.Find(ie.TagCountry)
	assert.Equal(t, []byte{'U', 'S', ' ', 1, 11, 30, 36, 4, 23}, v)
}

func TestIBSSDFSElement(t *testing.T) {
	m := newTestMgmt()
	owner := MustParseAddr("02:00:00:00:00:01")
	require.NoError(t, m.SetIBSSDFS(owner, 9, []ChannelMapEntry{{Channel: 52, Map: 0}, {Channel: 56, Map: 1}}))
	v, _ := m.Options.Find(ie.TagIBSSDFS)
	assert.Equal(t, []byte{0x02, 0, 0, 0, 0, 0x01, 9, 52, 0, 56, 1}, v)
}

func TestHoppingPatternElements(t *testing.T) {
	m := newTestMgmt()
	require.NoError(t, m.SetHoppingPatternParams(3, 79))
	v, _ := m.Options.Find(ie.TagHoppingPatternParams)
	assert.Equal(t, []byte{3, 79}, v)

	require.NoError(t, m.SetHoppingPatternTable(1, 2, 3, 4, []byte{9, 8, 7}))
	v, _ = m.Options.Find(ie.TagHoppingPatternTable)
	assert.Equal(t, []byte{1, 2, 3, 4, 9, 8, 7}, v)
}

func TestRSNHelpers(t *testing.T) {
	m := newTestMgmt()

	_, present, err := m.RSNInformation()
	require.NoError(t, err)
	assert.False(t, present)

	require.NoError(t, m.SetRSNInformation(ie.WPA2PSK()))
	info, present, err := m.RSNInformation()
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, ie.WPA2PSK(), info)

	// A corrupt element surfaces the decode error.
	require.NoError(t, m.Options.Set(ie.TagRSN, []byte{1, 0, 0}))
	_, present, err = m.RSNInformation()
	assert.True(t, present)
	require.Error(t, err)
}

func TestRequestAndChallenge(t *testing.T) {
	m := newTestMgmt()
	require.NoError(t, m.SetRequestInformation([]uint8{ie.TagSSID, ie.TagDSSet}))
	v, _ := m.Options.Find(ie.TagRequest)
	assert.Equal(t, []byte{0, 3}, v)

	require.NoError(t, m.SetChallengeText([]byte{0xde, 0xad}))
	v, _ = m.Options.Find(ie.TagChallengeText)
	assert.Equal(t, []byte{0xde, 0xad}, v)
}
