package l2switch

import (
	"fmt"
	"strconv"

	xdr "github.com/tempusfrangit/l2switch-xdr"
)

// NewRecord returns a zero value of the record type called name.
func NewRecord(name string) (xdr.Record, bool) {
	switch name {
	case "EndpointIdentity":
		return &EndpointIdentity{}, true
	case "EndpointValue":
		return &EndpointValue{}, true
	case "EndpointStatistics":
		return &EndpointStatistics{}, true
	}
	return nil, false
}

// FieldNames returns the schema field names of r in declaration order.
func FieldNames(r xdr.Record) []string {
	switch r.(type) {
	case *EndpointIdentity:
		return []string{"vlan", "mac_hi", "mac_lo"}
	case *EndpointValue:
		return []string{"port"}
	case *EndpointStatistics:
		return []string{"packets", "bytes"}
	}
	return nil
}

// SetField assigns the field called name from its textual form. Values may
// be decimal or carry a 0x, 0o or 0b prefix.
func SetField(r xdr.Record, name, value string) error {
	v, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return fmt.Errorf("field %s: %w", name, err)
	}
	field := fieldPtr(r, name)
	if field == nil {
		return fmt.Errorf("%T has no field %q", r, name)
	}
	*field = uint32(v)
	return nil
}

func fieldPtr(r xdr.Record, name string) *uint32 {
	switch r := r.(type) {
	case *EndpointIdentity:
		switch name {
		case "vlan":
			return &r.VLAN
		case "mac_hi":
			return &r.MACHi
		case "mac_lo":
			return &r.MACLo
		}
	case *EndpointValue:
		if name == "port" {
			return &r.Port
		}
	case *EndpointStatistics:
		switch name {
		case "packets":
			return &r.Packets
		case "bytes":
			return &r.Bytes
		}
	}
	return nil
}
