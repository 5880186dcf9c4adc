package inject

import (
	"sync"

	"github.com/google/gopacket/pcap"
	"github.com/pkg/errors"

	"github.com/wlantools/dot11"
)

// PcapSender injects frames through a libpcap handle bound to one
// interface at open time. It implements dot11.PacketSender; the index
// argument of Send is checked against the bound interface when known.
type PcapSender struct {
	handle  *pcap.Handle
	ifIndex int
	mu      sync.Mutex

	logger dot11.Logger
}

// NewPcapSender opens iface for injection.
func NewPcapSender(iface string) (*PcapSender, error) {
	idx, err := InterfaceIndex(iface)
	if err != nil {
		return nil, err
	}
	handle, err := pcap.OpenLive(iface, 65536, false, pcap.BlockForever)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", iface)
	}
	p := &PcapSender{
		handle:  handle,
		ifIndex: idx,
		logger:  dot11.GetLogger().ChildLogger(map[string]interface{}{"sender": "pcap", "iface": iface}),
	}
	p.logger.Debug("pcap handle open")
	return p, nil
}

// Send writes the frame to the bound interface. A mismatched index is
// rejected rather than silently sent elsewhere.
func (p *PcapSender) Send(ifIndex int, b []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == nil {
		return errors.Wrap(dot11.ErrSendFailed, "pcap handle closed")
	}
	if ifIndex != p.ifIndex {
		return errors.Wrapf(dot11.ErrNoSuchInterface, "handle bound to index %d, send asked for %d", p.ifIndex, ifIndex)
	}
	if err := p.handle.WritePacketData(b); err != nil {
		return errors.Wrapf(dot11.ErrSendFailed, "inject %d bytes: %v", len(b), err)
	}
	return nil
}

// Close releases the handle. Further sends fail.
func (p *PcapSender) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle != nil {
		p.handle.Close()
		p.handle = nil
	}
	return nil
}
