package dot11

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Addr is a 6-byte IEEE 802 MAC address.
type Addr [6]byte

// Broadcast is the all-ones broadcast address.
var Broadcast = Addr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// ParseAddr parses a textual MAC address. Both ':' and '-' separators
// are accepted, as is the bare 12-digit hex form.
func ParseAddr(s string) (Addr, error) {
	var a Addr
	hexStr := strings.NewReplacer(":", "", "-", "").Replace(s)
	out, err := hex.DecodeString(hexStr)
	if err != nil {
		return a, errors.Wrapf(err, "bad address %q", s)
	}
	if len(out) != len(a) {
		return a, errors.Errorf("bad address %q: want 6 bytes, got %d", s, len(out))
	}
	copy(a[:], out)
	return a, nil
}

// MustParseAddr is ParseAddr for addresses known to be well formed.
// It panics on error.
func MustParseAddr(s string) Addr {
	a, err := ParseAddr(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Addr) String() string {
	const hexDigit = "0123456789abcdef"
	buf := make([]byte, 0, 17)
	for i, b := range a {
		if i > 0 {
			buf = append(buf, ':')
		}
		buf = append(buf, hexDigit[b>>4], hexDigit[b&0xf])
	}
	return string(buf)
}

// Bytes returns the address as a fresh byte slice.
func (a Addr) Bytes() []byte {
	out := make([]byte, len(a))
	copy(out, a[:])
	return out
}

// IsBroadcast reports whether the address is the broadcast address.
func (a Addr) IsBroadcast() bool {
	return a == Broadcast
}
