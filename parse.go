package dot11

import (
	"github.com/pkg/errors"

	"github.com/wlantools/dot11/wire"
)

// Parse decodes a raw 802.11 frame, dispatching on the type and
// subtype of the frame control word. Subtypes without a dedicated
// variant come back as *Generic with the matching category tag; a
// reserved frame type fails with ErrUnknownSubtype.
func Parse(b []byte) (Frame, error) {
	peek := wire.NewReader(b)
	fcw, err := peek.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "frame control")
	}
	fc := UnpackFrameControl(fcw)

	switch fc.Type {
	case FrameTypeManagement:
		return parseManagement(fc.Subtype, b)
	case FrameTypeControl:
		return parseControl(fc.Subtype, b)
	case FrameTypeData:
		return parseData(fc.Subtype, b)
	default:
		return nil, errors.Wrapf(ErrUnknownSubtype, "frame type %d", fc.Type)
	}
}

type parser interface {
	Frame
	parse(*wire.Reader) error
}

func parseInto(f parser, b []byte) (Frame, error) {
	if err := f.parse(wire.NewReader(b)); err != nil {
		return nil, errors.Wrapf(err, "%s", f.PDUType())
	}
	return f, nil
}

func parseGeneric(tag PDUType, b []byte) (Frame, error) {
	r := wire.NewReader(b)
	g := &Generic{tag: tag}
	if err := g.Header.read(r); err != nil {
		return nil, errors.Wrapf(err, "%s", tag)
	}
	g.Body = r.Rest()
	return g, nil
}

func parseManagement(subtype uint8, b []byte) (Frame, error) {
	switch subtype {
	case SubtypeAssocReq:
		return parseInto(&AssocReq{}, b)
	case SubtypeAssocResp:
		return parseInto(&AssocResp{}, b)
	case SubtypeReAssocReq:
		return parseInto(&ReAssocReq{}, b)
	case SubtypeReAssocResp:
		return parseInto(&ReAssocResp{}, b)
	case SubtypeProbeReq:
		return parseInto(&ProbeReq{}, b)
	case SubtypeProbeResp:
		return parseInto(&ProbeResp{}, b)
	case SubtypeBeacon:
		return parseInto(&Beacon{}, b)
	case SubtypeDisassoc:
		return parseInto(&Disassoc{}, b)
	case SubtypeAuth:
		return parseInto(&Auth{}, b)
	case SubtypeDeauth:
		return parseInto(&Deauth{}, b)
	default:
		// ATIM and the reserved subtypes keep an opaque body.
		return parseGeneric(TypeManagement, b)
	}
}

func parseControl(subtype uint8, b []byte) (Frame, error) {
	switch subtype {
	case SubtypeBlockAckReq:
		return parseInto(&BlockAckReq{}, b)
	case SubtypeBlockAck:
		return parseInto(&BlockAck{}, b)
	case SubtypePSPoll:
		return parseInto(&PSPoll{}, b)
	case SubtypeRTS:
		return parseInto(&RTS{}, b)
	case SubtypeCTS:
		return parseInto(&CTS{}, b)
	case SubtypeACK:
		return parseInto(&ACK{}, b)
	case SubtypeCFEnd:
		return parseInto(&CFEnd{}, b)
	case SubtypeCFEndAck:
		return parseInto(&CFEndAck{}, b)
	default:
		return parseGeneric(TypeControl, b)
	}
}

func parseData(subtype uint8, b []byte) (Frame, error) {
	// The CF and null members of each family share the family's wire
	// shape: subtypes 0-7 are plain data, 8-15 carry QoS control.
	if subtype >= 8 {
		return parseInto(&QoSData{}, b)
	}
	return parseInto(&Data{}, b)
}
