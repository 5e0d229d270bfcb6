// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"strconv"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	formatter "github.com/onsi/ginkgo/v2/formatter"

	"github.com/lpvault/lpvault/consts"
)

// ToID hashes [bytes] into an ID. Derived identifiers (share assets,
// custody pairs) all come through here so they stay stable across
// restarts.
func ToID(bytes []byte) ids.ID {
	return ids.ID(hashing.ComputeHash256Array(bytes))
}

// Outf prints [format] to stdout with {{color}}...{{/}} markup
// rendered as ANSI escapes.
func Outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}

// GetHost returns the host component of [uri].
func GetHost(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	host, _, err := net.SplitHostPort(purl.Host)
	return host, err
}

// GetPort returns the port component of [uri].
func GetPort(uri string) (string, error) {
	purl, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	return purl.Port(), err
}

// FormatBalance renders a raw native amount with [consts.Decimals]
// fractional digits.
func FormatBalance(bal uint64) string {
	return fmt.Sprintf("%.9f", float64(bal)/math.Pow10(consts.Decimals))
}

// ParseBalance converts a decimal native amount back to raw units.
func ParseBalance(bal string) (uint64, error) {
	f, err := strconv.ParseFloat(bal, 64)
	if err != nil {
		return 0, err
	}
	return uint64(f * math.Pow10(consts.Decimals)), nil
}
