// Package ie implements the tagged information-element chain carried in
// the body of 802.11 management frames. Each element is a one-byte tag,
// a one-byte length and up to 255 value bytes. Elements keep insertion
// order on the wire and duplicates are legal.
package ie

import (
	"github.com/pkg/errors"

	"github.com/wlantools/dot11/wire"
)

// Tag numbers from IEEE 802.11-2007, 7.3.2.
const (
	TagSSID                   uint8 = 0
	TagSupportedRates         uint8 = 1
	TagFHSet                  uint8 = 2
	TagDSSet                  uint8 = 3
	TagCFSet                  uint8 = 4
	TagTIM                    uint8 = 5
	TagIBSSSet                uint8 = 6
	TagCountry                uint8 = 7
	TagHoppingPatternParams   uint8 = 8
	TagHoppingPatternTable    uint8 = 9
	TagRequest                uint8 = 10
	TagBSSLoad                uint8 = 11
	TagEDCA                   uint8 = 12
	TagTSPEC                  uint8 = 13
	TagTCLAS                  uint8 = 14
	TagSchedule               uint8 = 15
	TagChallengeText          uint8 = 16
	TagPowerConstraint        uint8 = 32
	TagPowerCapability        uint8 = 33
	TagTPCRequest             uint8 = 34
	TagTPCReport              uint8 = 35
	TagSupportedChannels      uint8 = 36
	TagChannelSwitch          uint8 = 37
	TagMeasurementRequest     uint8 = 38
	TagMeasurementReport      uint8 = 39
	TagQuiet                  uint8 = 40
	TagIBSSDFS                uint8 = 41
	TagERPInformation         uint8 = 42
	TagTSDelay                uint8 = 43
	TagTCLASProcessing        uint8 = 44
	TagQoSCapability          uint8 = 46
	TagRSN                    uint8 = 48
	TagExtendedSupportedRates uint8 = 50
)

// ErrOptionTooLong is returned when a value does not fit the one-byte
// length field.
var ErrOptionTooLong = errors.New("option value exceeds 255 bytes")

// ErrInvalidLength is returned when a declared element length is
// inconsistent with its content.
var ErrInvalidLength = errors.New("invalid option length")

// Option is a single tagged element. Value is owned by the option.
type Option struct {
	ID    uint8
	Value []byte
}

// Clone returns a deep copy of the option.
func (o Option) Clone() Option {
	v := make([]byte, len(o.Value))
	copy(v, o.Value)
	return Option{ID: o.ID, Value: v}
}

// Options is an ordered tagged-element chain.
type Options struct {
	list []Option
}

// Add appends an element. The value is copied. Values longer than 255
// bytes are rejected with ErrOptionTooLong.
func (o *Options) Add(id uint8, value []byte) error {
	if len(value) > 255 {
		return errors.Wrapf(ErrOptionTooLong, "tag %d, %d bytes", id, len(value))
	}
	v := make([]byte, len(value))
	copy(v, value)
	o.list = append(o.list, Option{ID: id, Value: v})
	return nil
}

// Set replaces the first element with the given tag, or appends one if
// none exists yet.
func (o *Options) Set(id uint8, value []byte) error {
	if len(value) > 255 {
		return errors.Wrapf(ErrOptionTooLong, "tag %d, %d bytes", id, len(value))
	}
	v := make([]byte, len(value))
	copy(v, value)
	for i := range o.list {
		if o.list[i].ID == id {
			o.list[i].Value = v
			return nil
		}
	}
	o.list = append(o.list, Option{ID: id, Value: v})
	return nil
}

// Find returns the value of the first element with the given tag.
func (o *Options) Find(id uint8) ([]byte, bool) {
	for i := range o.list {
		if o.list[i].ID == id {
			return o.list[i].Value, true
		}
	}
	return nil, false
}

// Count returns the number of elements in the chain.
func (o *Options) Count() int {
	return len(o.list)
}

// All returns the elements in insertion order. The slice is shared; do
// not mutate it.
func (o *Options) All() []Option {
	return o.list
}

// SerializedSize returns the wire size of the chain: two header bytes
// plus the value length for each element.
func (o *Options) SerializedSize() int {
	n := 0
	for i := range o.list {
		n += 2 + len(o.list[i].Value)
	}
	return n
}

// WriteTo serializes the chain into b in insertion order and returns
// the number of bytes written.
func (o *Options) WriteTo(b []byte) (int, error) {
	w := wire.NewWriter(b)
	err := o.Append(w)
	return w.Offset(), err
}

// Append serializes the chain onto an in-progress writer.
func (o *Options) Append(w *wire.Writer) error {
	for i := range o.list {
		opt := &o.list[i]
		if err := w.Uint8(opt.ID); err != nil {
			return err
		}
		if err := w.Uint8(uint8(len(opt.Value))); err != nil {
			return err
		}
		if err := w.Bytes(opt.Value); err != nil {
			return err
		}
	}
	return nil
}

// Parse consumes b as a tag|length|value chain until the buffer is
// exhausted. A declared length running past the end of the buffer is an
// error; nothing is silently dropped.
func (o *Options) Parse(b []byte) error {
	r := wire.NewReader(b)
	var parsed []Option
	for r.Remaining() > 0 {
		id, err := r.Uint8()
		if err != nil {
			return err
		}
		length, err := r.Uint8()
		if err != nil {
			return errors.Wrapf(err, "tag %d", id)
		}
		value, err := r.Bytes(int(length))
		if err != nil {
			return errors.Wrapf(err, "tag %d, declared length %d", id, length)
		}
		parsed = append(parsed, Option{ID: id, Value: value})
	}
	o.list = parsed
	return nil
}

// Clone returns a deep copy of the chain.
func (o *Options) Clone() Options {
	if o.list == nil {
		return Options{}
	}
	out := make([]Option, len(o.list))
	for i := range o.list {
		out[i] = o.list[i].Clone()
	}
	return Options{list: out}
}
