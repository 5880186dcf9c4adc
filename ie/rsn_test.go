package ie

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWPA2PSKEncoding(t *testing.T) {
	want := []byte{
		0x01, 0x00, // version 1
		0x00, 0x0f, 0xac, 0x04, // group: CCMP
		0x01, 0x00, // one pairwise suite
		0x00, 0x0f, 0xac, 0x04, // CCMP
		0x01, 0x00, // one AKM suite
		0x00, 0x0f, 0xac, 0x02, // PSK
		0x00, 0x00, // capabilities
	}
	assert.Equal(t, want, WPA2PSK().Encode())
}

func TestRSNRoundTrip(t *testing.T) {
	info := RSNInfo{
		Version:        1,
		GroupSuite:     CipherTKIP,
		PairwiseSuites: []Suite{CipherTKIP, CipherCCMP},
		AKMSuites:      []Suite{AKM8021X},
		Capabilities:   0x000c,
	}
	decoded, err := DecodeRSN(info.Encode())
	require.NoError(t, err)
	assert.Equal(t, info, decoded)
}

func TestDecodeRSNTruncated(t *testing.T) {
	full := WPA2PSK().Encode()
	for _, cut := range []int{1, 3, 7, 9, 13, 15, 19} {
		_, err := DecodeRSN(full[:cut])
		require.Error(t, err, "cut at %d", cut)
		assert.Equal(t, ErrInvalidRSN, errors.Cause(err))
	}
}

func TestDecodeRSNCountPastEnd(t *testing.T) {
	b := []byte{
		0x01, 0x00,
		0x00, 0x0f, 0xac, 0x04,
		0x09, 0x00, // claims nine pairwise suites
		0x00, 0x0f, 0xac, 0x04,
	}
	_, err := DecodeRSN(b)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidRSN, errors.Cause(err))
}
