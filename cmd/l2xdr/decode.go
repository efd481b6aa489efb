package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	xdr "github.com/tempusfrangit/l2switch-xdr"
	"github.com/tempusfrangit/l2switch-xdr/l2switch"
)

type decodeOptions struct {
	output string
	prefix bool
	stream string
}

func newDecodeCmd() *cobra.Command {
	var opts decodeOptions

	cmd := &cobra.Command{
		Use:   "decode <type> [hex...]",
		Short: "Decode a hex-encoded record",
		Long: `Decode the XDR form of a record and print it.

The hex input may be split across several arguments and may contain
spaces. By default the input must hold exactly one value; --prefix
accepts and reports trailing bytes instead. --stream reads consecutive
binary values from a file ("-" for stdin) instead of hex arguments.

Examples:
  l2xdr decode EndpointIdentity 00000064 0a0b0c0d 0e0f1011
  l2xdr decode --output json EndpointUpdate 00000002 00000001 00000002 00000003
  l2xdr decode --stream counters.bin EndpointStatistics
  l2xdr decode --stream updates.bin --output yaml EndpointUpdate`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newPrinter(cmd.OutOrStdout(), opts.output)
			if err != nil {
				return err
			}
			if opts.stream != "" {
				if len(args) > 1 {
					return fmt.Errorf("--stream does not take hex arguments")
				}
				return decodeStream(cmd, p, args[0], opts.stream)
			}

			data, err := hex.DecodeString(strings.Join(strings.Fields(strings.Join(args[1:], "")), ""))
			if err != nil {
				return fmt.Errorf("invalid hex input: %w", err)
			}
			v, err := decodeValue(args[0], data, opts.prefix)
			if err != nil {
				return err
			}
			return p.Print(v)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "Output format (text|json|yaml)")
	cmd.Flags().BoolVar(&opts.prefix, "prefix", false, "Ignore bytes after the decoded value")
	cmd.Flags().StringVar(&opts.stream, "stream", "", "Read binary values from a file, - for stdin")

	return cmd
}

// decodeValue decodes one value of the named type from data.
func decodeValue(typeName string, data []byte, prefix bool) (any, error) {
	var (
		v   xdr.Codec
		out func() any
	)
	if typeName == updateTypeName {
		c := &updateCodec{}
		v, out = c, func() any { return c.m }
	} else {
		r, ok := l2switch.NewRecord(typeName)
		if !ok {
			return nil, fmt.Errorf("unknown type %q", typeName)
		}
		v, out = r, func() any { return r }
	}

	if !prefix {
		if err := xdr.Unmarshal(data, v); err != nil {
			return nil, err
		}
		return out(), nil
	}

	n, err := xdr.UnmarshalPrefix(data, v)
	if err != nil {
		return nil, err
	}
	if n < len(data) {
		slog.Warn("ignoring trailing bytes", "type", typeName, "consumed", n, "trailing", len(data)-n)
	}
	return out(), nil
}

// updateCodec decodes an EndpointUpdate through the Codec interface.
type updateCodec struct {
	m l2switch.Update
}

func (c *updateCodec) Encode(enc *xdr.Encoder) error {
	return l2switch.EndpointUpdate.Encode(enc, c.m)
}

func (c *updateCodec) Decode(dec *xdr.Decoder) error {
	m, err := l2switch.EndpointUpdate.Decode(dec)
	if err != nil {
		return err
	}
	c.m = m
	return nil
}

// decodeStream prints consecutive values of the named type read from path.
// Records are read by size, EndpointUpdate members tag first.
func decodeStream(cmd *cobra.Command, p *printer, typeName, path string) error {
	var next func(*xdr.Reader) (any, error)
	if typeName == updateTypeName {
		next = func(r *xdr.Reader) (any, error) {
			return l2switch.EndpointUpdate.ReadMember(r)
		}
	} else {
		if _, ok := l2switch.NewRecord(typeName); !ok {
			return fmt.Errorf("unknown type %q", typeName)
		}
		next = func(r *xdr.Reader) (any, error) {
			rec, _ := l2switch.NewRecord(typeName)
			return rec, r.ReadRecord(rec)
		}
	}

	var in io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	r := xdr.NewReader(in)
	count := 0
	for {
		v, err := next(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("record %d: %w", count, err)
		}
		if err := p.Print(v); err != nil {
			return err
		}
		count++
	}
	slog.Info("stream decoded", "type", typeName, "records", count)
	return nil
}
