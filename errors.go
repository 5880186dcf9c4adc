package dot11

import (
	"github.com/pkg/errors"

	"github.com/wlantools/dot11/ie"
	"github.com/wlantools/dot11/wire"
)

// Error kinds surfaced by the codec. Parse errors are local and
// reported to the caller; nothing is silently defaulted. Use
// errors.Cause to test for a kind.
var (
	// ErrTruncated means a buffer was shorter than the frame requires.
	ErrTruncated = wire.ErrTruncated

	// ErrInvalidLength means a declared element length is inconsistent.
	ErrInvalidLength = ie.ErrInvalidLength

	// ErrOptionTooLong means an option value exceeds 255 bytes.
	ErrOptionTooLong = ie.ErrOptionTooLong

	// ErrInvalidRSN means an RSN element payload is malformed.
	ErrInvalidRSN = ie.ErrInvalidRSN

	// ErrUnknownSubtype means the frame control word carries a frame
	// type outside the 802.11 type space.
	ErrUnknownSubtype = errors.New("unknown frame type/subtype")

	// ErrNoSuchInterface means an interface name did not resolve.
	ErrNoSuchInterface = errors.New("no such interface")

	// ErrSendFailed means the injection transport rejected a frame.
	// The transport's own error is attached as context.
	ErrSendFailed = errors.New("send failed")
)
