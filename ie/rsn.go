package ie

import (
	"github.com/pkg/errors"

	"github.com/wlantools/dot11/wire"
)

// ErrInvalidRSN is returned when an RSN element payload is malformed.
var ErrInvalidRSN = errors.New("invalid RSN information")

// Suite is a cipher or AKM suite selector in wire order: three OUI
// bytes followed by a type byte.
type Suite [4]byte

// Cipher suite selectors (IEEE OUI 00-0F-AC).
var (
	CipherWEP40  = Suite{0x00, 0x0f, 0xac, 0x01}
	CipherTKIP   = Suite{0x00, 0x0f, 0xac, 0x02}
	CipherCCMP   = Suite{0x00, 0x0f, 0xac, 0x04}
	CipherWEP104 = Suite{0x00, 0x0f, 0xac, 0x05}
)

// AKM suite selectors.
var (
	AKM8021X = Suite{0x00, 0x0f, 0xac, 0x01}
	AKMPSK   = Suite{0x00, 0x0f, 0xac, 0x02}
)

// RSNInfo is the decoded payload of the RSN element (tag 48).
type RSNInfo struct {
	Version        uint16
	GroupSuite     Suite
	PairwiseSuites []Suite
	AKMSuites      []Suite
	Capabilities   uint16
}

// WPA2PSK returns the RSN information advertised by a WPA2-PSK network:
// CCMP group and pairwise ciphers with PSK key management.
func WPA2PSK() RSNInfo {
	return RSNInfo{
		Version:        1,
		GroupSuite:     CipherCCMP,
		PairwiseSuites: []Suite{CipherCCMP},
		AKMSuites:      []Suite{AKMPSK},
	}
}

// Encode serializes the RSN payload: version, group suite, pairwise
// count and list, AKM count and list, capabilities.
func (r RSNInfo) Encode() []byte {
	n := 2 + 4 + 2 + 4*len(r.PairwiseSuites) + 2 + 4*len(r.AKMSuites) + 2
	b := make([]byte, n)
	w := wire.NewWriter(b)
	w.Uint16(r.Version)
	w.Bytes(r.GroupSuite[:])
	w.Uint16(uint16(len(r.PairwiseSuites)))
	for _, s := range r.PairwiseSuites {
		w.Bytes(s[:])
	}
	w.Uint16(uint16(len(r.AKMSuites)))
	for _, s := range r.AKMSuites {
		w.Bytes(s[:])
	}
	w.Uint16(r.Capabilities)
	return b
}

// DecodeRSN parses an RSN element payload.
func DecodeRSN(b []byte) (RSNInfo, error) {
	var info RSNInfo
	r := wire.NewReader(b)

	v, err := r.Uint16()
	if err != nil {
		return info, errors.Wrap(ErrInvalidRSN, "version")
	}
	info.Version = v

	group, err := readSuite(r)
	if err != nil {
		return info, errors.Wrap(ErrInvalidRSN, "group suite")
	}
	info.GroupSuite = group

	info.PairwiseSuites, err = readSuiteList(r)
	if err != nil {
		return info, errors.Wrap(ErrInvalidRSN, "pairwise suites")
	}
	info.AKMSuites, err = readSuiteList(r)
	if err != nil {
		return info, errors.Wrap(ErrInvalidRSN, "AKM suites")
	}

	caps, err := r.Uint16()
	if err != nil {
		return info, errors.Wrap(ErrInvalidRSN, "capabilities")
	}
	info.Capabilities = caps
	return info, nil
}

func readSuiteList(r *wire.Reader) ([]Suite, error) {
	count, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	out := make([]Suite, 0, count)
	for i := 0; i < int(count); i++ {
		s, err := readSuite(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func readSuite(r *wire.Reader) (Suite, error) {
	var s Suite
	b, err := r.Bytes(4)
	if err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}
