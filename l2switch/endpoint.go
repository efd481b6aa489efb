// Package l2switch defines the XDR records exchanged with an L2 switch
// about its learned endpoints: the endpoint key, the port it is bound to
// and its traffic counters.
package l2switch

import (
	"fmt"
	"net"

	xdr "github.com/tempusfrangit/l2switch-xdr"
)

// Types lists the record types exported by this schema.
var Types = []string{"EndpointIdentity", "EndpointValue", "EndpointStatistics"}

// Encoded record sizes in bytes
const (
	EndpointIdentitySize   = 12
	EndpointValueSize      = 4
	EndpointStatisticsSize = 8
)

// EndpointIdentity is the lookup key of an endpoint: a VLAN plus a 48-bit
// MAC address carried as two 32-bit words.
type EndpointIdentity struct {
	VLAN  uint32 `json:"vlan" yaml:"vlan"`
	MACHi uint32 `json:"mac_hi" yaml:"mac_hi"`
	MACLo uint32 `json:"mac_lo" yaml:"mac_lo"`
}

// NewEndpointIdentity builds the key for mac on vlan. The top 16 bits of the
// address go in the low half of MACHi, the remaining 32 bits in MACLo.
func NewEndpointIdentity(vlan uint32, mac net.HardwareAddr) (EndpointIdentity, error) {
	if len(mac) != 6 {
		return EndpointIdentity{}, fmt.Errorf("invalid MAC address length %d", len(mac))
	}
	return EndpointIdentity{
		VLAN:  vlan,
		MACHi: uint32(mac[0])<<8 | uint32(mac[1]),
		MACLo: uint32(mac[2])<<24 | uint32(mac[3])<<16 | uint32(mac[4])<<8 | uint32(mac[5]),
	}, nil
}

// MAC joins MACHi and MACLo back into a hardware address. Bits of MACHi
// above the low 16 are dropped.
func (e *EndpointIdentity) MAC() net.HardwareAddr {
	return net.HardwareAddr{
		byte(e.MACHi >> 8), byte(e.MACHi),
		byte(e.MACLo >> 24), byte(e.MACLo >> 16), byte(e.MACLo >> 8), byte(e.MACLo),
	}
}

func (e *EndpointIdentity) Encode(enc *xdr.Encoder) error {
	if err := enc.EncodeUint32(e.VLAN); err != nil {
		return err
	}
	if err := enc.EncodeUint32(e.MACHi); err != nil {
		return err
	}
	return enc.EncodeUint32(e.MACLo)
}

func (e *EndpointIdentity) Decode(dec *xdr.Decoder) error {
	vlan, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	macHi, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	macLo, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	*e = EndpointIdentity{VLAN: vlan, MACHi: macHi, MACLo: macLo}
	return nil
}

func (e *EndpointIdentity) Size() int {
	return EndpointIdentitySize
}

func (e *EndpointIdentity) String() string {
	return xdr.FormatRecord("EndpointIdentity",
		xdr.F("vlan", e.VLAN),
		xdr.F("mac_hi", e.MACHi),
		xdr.F("mac_lo", e.MACLo),
	)
}

func (e *EndpointIdentity) Equal(other xdr.Record) bool {
	o, ok := other.(*EndpointIdentity)
	return ok && (o == e || o != nil && e != nil && *o == *e)
}

// Marshal returns the 12-byte encoding of e
func (e *EndpointIdentity) Marshal() ([]byte, error) {
	return xdr.Marshal(e)
}

// DecodeEndpointIdentity decodes exactly one EndpointIdentity from data
func DecodeEndpointIdentity(data []byte) (*EndpointIdentity, error) {
	e := &EndpointIdentity{}
	if err := xdr.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}

// EndpointValue is the switch port an endpoint is bound to.
type EndpointValue struct {
	Port uint32 `json:"port" yaml:"port"`
}

func (v *EndpointValue) Encode(enc *xdr.Encoder) error {
	return enc.EncodeUint32(v.Port)
}

func (v *EndpointValue) Decode(dec *xdr.Decoder) error {
	port, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	v.Port = port
	return nil
}

func (v *EndpointValue) Size() int {
	return EndpointValueSize
}

func (v *EndpointValue) String() string {
	return xdr.FormatRecord("EndpointValue", xdr.F("port", v.Port))
}

func (v *EndpointValue) Equal(other xdr.Record) bool {
	o, ok := other.(*EndpointValue)
	return ok && (o == v || o != nil && v != nil && *o == *v)
}

// Marshal returns the 4-byte encoding of v
func (v *EndpointValue) Marshal() ([]byte, error) {
	return xdr.Marshal(v)
}

// DecodeEndpointValue decodes exactly one EndpointValue from data
func DecodeEndpointValue(data []byte) (*EndpointValue, error) {
	v := &EndpointValue{}
	if err := xdr.Unmarshal(data, v); err != nil {
		return nil, err
	}
	return v, nil
}

// EndpointStatistics holds the cumulative traffic counters of an endpoint.
// Wraparound is up to the producer.
type EndpointStatistics struct {
	Packets uint32 `json:"packets" yaml:"packets"`
	Bytes   uint32 `json:"bytes" yaml:"bytes"`
}

func (s *EndpointStatistics) Encode(enc *xdr.Encoder) error {
	if err := enc.EncodeUint32(s.Packets); err != nil {
		return err
	}
	return enc.EncodeUint32(s.Bytes)
}

func (s *EndpointStatistics) Decode(dec *xdr.Decoder) error {
	packets, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	bytes, err := dec.DecodeUint32()
	if err != nil {
		return err
	}
	*s = EndpointStatistics{Packets: packets, Bytes: bytes}
	return nil
}

func (s *EndpointStatistics) Size() int {
	return EndpointStatisticsSize
}

func (s *EndpointStatistics) String() string {
	return xdr.FormatRecord("EndpointStatistics",
		xdr.F("packets", s.Packets),
		xdr.F("bytes", s.Bytes),
	)
}

func (s *EndpointStatistics) Equal(other xdr.Record) bool {
	o, ok := other.(*EndpointStatistics)
	return ok && (o == s || o != nil && s != nil && *o == *s)
}

// Marshal returns the 8-byte encoding of s
func (s *EndpointStatistics) Marshal() ([]byte, error) {
	return xdr.Marshal(s)
}

// DecodeEndpointStatistics decodes exactly one EndpointStatistics from data
func DecodeEndpointStatistics(data []byte) (*EndpointStatistics, error) {
	s := &EndpointStatistics{}
	if err := xdr.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Ensure all records implement the Record interface
var _ xdr.Record = (*EndpointIdentity)(nil)
var _ xdr.Record = (*EndpointValue)(nil)
var _ xdr.Record = (*EndpointStatistics)(nil)
