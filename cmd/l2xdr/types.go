package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tempusfrangit/l2switch-xdr/l2switch"
)

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the schema types and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range l2switch.Types {
				r, _ := l2switch.NewRecord(name)
				if _, err := fmt.Fprintf(out, "%s (%d bytes): %s\n", name, r.Size(),
					strings.Join(l2switch.FieldNames(r), ", ")); err != nil {
					return err
				}
			}

			var kinds []string
			for _, k := range l2switch.UpdateKinds.Members() {
				kinds = append(kinds, fmt.Sprintf("%s=%d", k, int32(k)))
			}
			_, err := fmt.Fprintf(out, "%s (union): %s\n", updateTypeName, strings.Join(kinds, ", "))
			return err
		},
	}
}
