// +build linux

package inject

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/wlantools/dot11"
)

func htons(v uint16) uint16 {
	return v<<8 | v>>8
}

// Socket is a raw AF_PACKET socket that injects frames on an interface
// chosen per send. It implements dot11.PacketSender.
type Socket struct {
	fd   int
	wmu  sync.Mutex
	cmu  sync.Mutex
	done bool

	logger dot11.Logger
}

// NewSocket opens a raw packet socket. Opening requires CAP_NET_RAW.
func NewSocket() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ALL)))
	if err != nil {
		return nil, errors.Wrap(err, "can't create packet socket")
	}

	s := &Socket{
		fd:     fd,
		logger: dot11.GetLogger().ChildLogger(map[string]interface{}{"sender": "afpacket"}),
	}
	s.logger.Debugf("packet socket open, fd %v", fd)
	return s, nil
}

// Send writes the frame to the interface with the given index.
func (s *Socket) Send(ifIndex int, b []byte) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.done {
		return errors.Wrap(dot11.ErrSendFailed, "socket closed")
	}

	sa := unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  ifIndex,
		Halen:    6,
	}
	if err := unix.Sendto(s.fd, b, 0, &sa); err != nil {
		return errors.Wrapf(dot11.ErrSendFailed, "sendto ifindex %d, %d bytes: %v", ifIndex, len(b), err)
	}
	return nil
}

// Close releases the socket. Further sends fail.
func (s *Socket) Close() error {
	s.cmu.Lock()
	defer s.cmu.Unlock()

	s.wmu.Lock()
	defer s.wmu.Unlock()
	if s.done {
		return nil
	}
	s.done = true
	return unix.Close(s.fd)
}
