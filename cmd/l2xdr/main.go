// Command l2xdr encodes and decodes L2-switch endpoint records.
//
// Usage:
//
//	l2xdr encode EndpointIdentity vlan=100 mac_hi=0x0a0b0c0d mac_lo=0x0e0f1011
//	l2xdr decode EndpointIdentity 000000640a0b0c0d0e0f1011
//	l2xdr decode --output yaml EndpointUpdate 00000004
//	l2xdr decode --stream stats.bin EndpointStatistics
//	l2xdr types
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
