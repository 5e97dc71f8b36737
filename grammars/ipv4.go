package grammars

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/netip"

	pcomb "github.com/SimonDaKappa/go-pcomb"
)

var ErrUnsupportedIPVersion = errors.New("not an IPv4 header")

// IPv4 header field names, as tagged in the parse result.
const (
	VersionField        = "Version"
	IHLField            = "IHL"
	DSCPField           = "DSCP"
	ECNField            = "ECN"
	TotalLengthField    = "Total Length"
	IdentificationField = "Identification"
	FlagsField          = "Flags"
	FragmentOffsetField = "Fragment Offset"
	TTLField            = "TTL"
	ProtocolField       = "Protocol"
	ChecksumField       = "Header Checksum"
	SourceIPField       = "Source IP"
	DestinationIPField  = "Destination IP"
)

// IPv4HeaderLayout parses the fixed 20 byte part of an IPv4 header
// (RFC 791) into a []any of pcomb.Fields, one per header field in wire
// order.
var IPv4HeaderLayout = pcomb.SequenceOf(
	pcomb.Uint(4).Map(pcomb.Tag(VersionField)),
	pcomb.Uint(4).Map(pcomb.Tag(IHLField)),
	pcomb.Uint(6).Map(pcomb.Tag(DSCPField)),
	pcomb.Uint(2).Map(pcomb.Tag(ECNField)),
	pcomb.Uint(16).Map(pcomb.Tag(TotalLengthField)),
	pcomb.Uint(16).Map(pcomb.Tag(IdentificationField)),
	pcomb.Uint(3).Map(pcomb.Tag(FlagsField)),
	pcomb.Uint(13).Map(pcomb.Tag(FragmentOffsetField)),
	pcomb.Uint(8).Map(pcomb.Tag(TTLField)),
	pcomb.Uint(8).Map(pcomb.Tag(ProtocolField)),
	pcomb.Uint(16).Map(pcomb.Tag(ChecksumField)),
	pcomb.Uint(32).Map(pcomb.Tag(SourceIPField)),
	pcomb.Uint(32).Map(pcomb.Tag(DestinationIPField)),
).Named("ipv4Header")

// IPv4Header is the decoded fixed part of an IPv4 header.
type IPv4Header struct {
	Version        uint8  `pcomb:"Version,required"`
	IHL            uint8  `pcomb:"IHL,required"`
	DSCP           uint8  `pcomb:"DSCP"`
	ECN            uint8  `pcomb:"ECN"`
	TotalLength    uint16 `pcomb:"Total Length"`
	Identification uint16 `pcomb:"Identification"`
	Flags          uint8  `pcomb:"Flags"`
	FragmentOffset uint16 `pcomb:"Fragment Offset"`
	TTL            uint8  `pcomb:"TTL"`
	Protocol       uint8  `pcomb:"Protocol"`
	Checksum       uint16 `pcomb:"Header Checksum"`
	SourceIP       uint32 `pcomb:"Source IP,required"`
	DestinationIP  uint32 `pcomb:"Destination IP,required"`
}

// Source returns the source address.
func (h IPv4Header) Source() netip.Addr {
	return uint32Addr(h.SourceIP)
}

// Destination returns the destination address.
func (h IPv4Header) Destination() netip.Addr {
	return uint32Addr(h.DestinationIP)
}

// DontFragment reports whether the DF flag is set.
func (h IPv4Header) DontFragment() bool {
	return h.Flags&0b010 != 0
}

// MoreFragments reports whether the MF flag is set.
func (h IPv4Header) MoreFragments() bool {
	return h.Flags&0b001 != 0
}

func uint32Addr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}

// ParseIPv4Header decodes the fixed part of the IPv4 header at the start of
// packet.
func ParseIPv4Header(packet []byte) (IPv4Header, error) {
	var h IPv4Header
	if err := pcomb.ParseInto(IPv4HeaderLayout, pcomb.Binary(packet), &h); err != nil {
		return IPv4Header{}, fmt.Errorf("ipv4 header: %w", err)
	}
	if h.Version != 4 {
		return IPv4Header{}, fmt.Errorf("%w: version %d", ErrUnsupportedIPVersion, h.Version)
	}
	return h, nil
}
