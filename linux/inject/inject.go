// Package inject provides PacketSender implementations for handing
// serialized 802.11 frames to a monitor-mode interface: a raw
// AF_PACKET socket and a libpcap handle. Neither touches the frame
// bytes; radiotap decoration and FCS are the driver's business.
package inject

import (
	"net"

	"github.com/pkg/errors"

	"github.com/wlantools/dot11"
)

// InterfaceIndex resolves an interface name to its kernel index.
func InterfaceIndex(name string) (int, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return 0, errors.Wrapf(dot11.ErrNoSuchInterface, "%s: %v", name, err)
	}
	return ifi.Index, nil
}
