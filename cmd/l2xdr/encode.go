package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	xdr "github.com/tempusfrangit/l2switch-xdr"
	"github.com/tempusfrangit/l2switch-xdr/l2switch"
)

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <type> field=value...",
		Short: "Encode a record and print it as hex",
		Long: `Encode a record from field=value pairs and print its XDR form as hex.

Every field of the record must be given. Values are decimal or use a
0x, 0o or 0b prefix. For EndpointUpdate, pass kind=<UPDATE_*> plus the
fields of the records carried by that arm.

Examples:
  l2xdr encode EndpointIdentity vlan=100 mac_hi=0x0a0b0c0d mac_lo=0x0e0f1011
  l2xdr encode EndpointUpdate kind=UPDATE_ADD vlan=1 mac_hi=2 mac_lo=3 port=7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			var data []byte
			if args[0] == updateTypeName {
				u, err := buildUpdate(fields)
				if err != nil {
					return err
				}
				data, err = l2switch.EncodeUpdate(u)
				if err != nil {
					return err
				}
			} else {
				r, ok := l2switch.NewRecord(args[0])
				if !ok {
					return fmt.Errorf("unknown type %q", args[0])
				}
				if err := assign(fields, r); err != nil {
					return err
				}
				data, err = xdr.Marshal(r)
				if err != nil {
					return err
				}
			}

			slog.Debug("encoded", "type", args[0], "bytes", len(data))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return err
		},
	}
}

// parseAssignments splits name=value arguments into a map.
func parseAssignments(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		if _, dup := fields[name]; dup {
			return nil, fmt.Errorf("field %s given twice", name)
		}
		fields[name] = value
	}
	return fields, nil
}

// assign sets every field of the given records from fields. Each record
// field must be present and every entry in fields must be used.
func assign(fields map[string]string, records ...xdr.Record) error {
	used := 0
	for _, r := range records {
		for _, name := range l2switch.FieldNames(r) {
			value, ok := fields[name]
			if !ok {
				return fmt.Errorf("missing field %s", name)
			}
			if err := l2switch.SetField(r, name, value); err != nil {
				return err
			}
			used++
		}
	}
	if used != len(fields) {
		for name := range fields {
			if !hasField(name, records) {
				return fmt.Errorf("unknown field %s", name)
			}
		}
	}
	return nil
}

func hasField(name string, records []xdr.Record) bool {
	for _, r := range records {
		for _, f := range l2switch.FieldNames(r) {
			if f == name {
				return true
			}
		}
	}
	return false
}

// buildUpdate builds the EndpointUpdate arm selected by the kind field.
func buildUpdate(fields map[string]string) (l2switch.Update, error) {
	kindName, ok := fields["kind"]
	if !ok {
		return nil, fmt.Errorf("missing field kind")
	}
	delete(fields, "kind")

	kind, ok := l2switch.UpdateKinds.Lookup(kindName)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", kindName)
	}

	switch kind {
	case l2switch.UpdateAdd:
		u := &l2switch.AddEndpoint{}
		return u, assign(fields, &u.Identity, &u.Value)
	case l2switch.UpdateDelete:
		u := &l2switch.DeleteEndpoint{}
		return u, assign(fields, &u.Identity)
	case l2switch.UpdateStats:
		u := &l2switch.ReportStats{}
		return u, assign(fields, &u.Identity, &u.Stats)
	default:
		return l2switch.FlushEndpoints(), assign(fields)
	}
}
