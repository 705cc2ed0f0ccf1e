package main

import "github.com/dustin/go-humanize"

// formatBytes renders a byte count in binary units (MiB, GiB).
func formatBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}
