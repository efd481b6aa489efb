package l2switch

import (
	xdr "github.com/tempusfrangit/l2switch-xdr"
)

// UpdateKind selects the arm of an EndpointUpdate.
type UpdateKind int32

const (
	UpdateAdd    UpdateKind = 1
	UpdateDelete UpdateKind = 2
	UpdateStats  UpdateKind = 3
	UpdateFlush  UpdateKind = 4
)

// UpdateKinds is the registry of UpdateKind members.
var UpdateKinds = xdr.NewEnum("UpdateKind", map[UpdateKind]string{
	UpdateAdd:    "UPDATE_ADD",
	UpdateDelete: "UPDATE_DELETE",
	UpdateStats:  "UPDATE_STATS",
	UpdateFlush:  "UPDATE_FLUSH",
})

func (k UpdateKind) String() string {
	return UpdateKinds.Name(k)
}

// EndpointUpdate is the union of changes a switch reports for its
// endpoint table. UPDATE_FLUSH carries no payload.
var EndpointUpdate = xdr.NewUnion("EndpointUpdate", UpdateKinds.Type()).
	Register(func() xdr.UnionMember[UpdateKind] { return &AddEndpoint{} }).
	Register(func() xdr.UnionMember[UpdateKind] { return &DeleteEndpoint{} }).
	Register(func() xdr.UnionMember[UpdateKind] { return &ReportStats{} }).
	RegisterVoid("FlushEndpoints", UpdateFlush)

// Update is any EndpointUpdate member.
type Update = xdr.UnionMember[UpdateKind]

// FlushEndpoints returns the UPDATE_FLUSH member
func FlushEndpoints() Update {
	return xdr.NewVoid("FlushEndpoints", UpdateFlush)
}

// EncodeUpdate returns the wire form of u: its kind followed by its payload
func EncodeUpdate(u Update) ([]byte, error) {
	return EndpointUpdate.Marshal(u)
}

// DecodeUpdate decodes exactly one EndpointUpdate from data
func DecodeUpdate(data []byte) (Update, error) {
	return EndpointUpdate.Unmarshal(data)
}

// AddEndpoint binds an endpoint to a port.
type AddEndpoint struct {
	Identity EndpointIdentity `json:"key" yaml:"key"`
	Value    EndpointValue    `json:"value" yaml:"value"`
}

func (a *AddEndpoint) Discriminant() UpdateKind { return UpdateAdd }

func (a *AddEndpoint) Encode(enc *xdr.Encoder) error {
	if err := a.Identity.Encode(enc); err != nil {
		return err
	}
	return a.Value.Encode(enc)
}

func (a *AddEndpoint) Decode(dec *xdr.Decoder) error {
	if err := a.Identity.Decode(dec); err != nil {
		return err
	}
	return a.Value.Decode(dec)
}

func (a *AddEndpoint) Size() int {
	return EndpointIdentitySize + EndpointValueSize
}

func (a *AddEndpoint) String() string {
	return xdr.FormatMember("AddEndpoint", xdr.FormatRecord("endpoint_entry",
		xdr.F("key", &a.Identity),
		xdr.F("value", &a.Value),
	))
}

func (a *AddEndpoint) Equal(other xdr.Record) bool {
	o, ok := other.(*AddEndpoint)
	return ok && (o == a || o != nil && a != nil && *o == *a)
}

// DeleteEndpoint removes an endpoint.
type DeleteEndpoint struct {
	Identity EndpointIdentity `json:"key" yaml:"key"`
}

func (d *DeleteEndpoint) Discriminant() UpdateKind { return UpdateDelete }

func (d *DeleteEndpoint) Encode(enc *xdr.Encoder) error {
	return d.Identity.Encode(enc)
}

func (d *DeleteEndpoint) Decode(dec *xdr.Decoder) error {
	return d.Identity.Decode(dec)
}

func (d *DeleteEndpoint) Size() int {
	return EndpointIdentitySize
}

func (d *DeleteEndpoint) String() string {
	return xdr.FormatMember("DeleteEndpoint", &d.Identity)
}

func (d *DeleteEndpoint) Equal(other xdr.Record) bool {
	o, ok := other.(*DeleteEndpoint)
	return ok && (o == d || o != nil && d != nil && *o == *d)
}

// ReportStats carries the counters of one endpoint.
type ReportStats struct {
	Identity EndpointIdentity   `json:"key" yaml:"key"`
	Stats    EndpointStatistics `json:"stats" yaml:"stats"`
}

func (r *ReportStats) Discriminant() UpdateKind { return UpdateStats }

func (r *ReportStats) Encode(enc *xdr.Encoder) error {
	if err := r.Identity.Encode(enc); err != nil {
		return err
	}
	return r.Stats.Encode(enc)
}

func (r *ReportStats) Decode(dec *xdr.Decoder) error {
	if err := r.Identity.Decode(dec); err != nil {
		return err
	}
	return r.Stats.Decode(dec)
}

func (r *ReportStats) Size() int {
	return EndpointIdentitySize + EndpointStatisticsSize
}

func (r *ReportStats) String() string {
	return xdr.FormatMember("ReportStats", xdr.FormatRecord("endpoint_report",
		xdr.F("key", &r.Identity),
		xdr.F("stats", &r.Stats),
	))
}

func (r *ReportStats) Equal(other xdr.Record) bool {
	o, ok := other.(*ReportStats)
	return ok && (o == r || o != nil && r != nil && *o == *r)
}

var _ Update = (*AddEndpoint)(nil)
var _ Update = (*DeleteEndpoint)(nil)
var _ Update = (*ReportStats)(nil)
