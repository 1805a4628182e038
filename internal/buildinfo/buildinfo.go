// Package buildinfo reports values injected at link time, e.g.
//
//	go build -ldflags "-X github.com/pratish444/QuoteVault/internal/buildinfo.Version=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = ""
	Date    = ""
	Commit  = ""
)

func value(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes the version, date and commit lines to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", value(Version))
	fmt.Fprintf(w, "Build date: %s\n", value(Date))
	fmt.Fprintf(w, "Build commit: %s\n", value(Commit))
}
