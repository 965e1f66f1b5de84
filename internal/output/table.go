package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/ncampost/compute-manager/internal/machine"
)

// TableFormatter formats instances as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatInstance formats a single instance as a table row.
func (f *TableFormatter) FormatInstance(info *machine.Info) (string, error) {
	return f.FormatInstanceList([]machine.Info{*info})
}

// FormatInstanceList formats a list of instances as a table.
func (f *TableFormatter) FormatInstanceList(infos []machine.Info) (string, error) {
	if len(infos) == 0 {
		return "No instances found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tMACHINE TYPE\tSTATUS\tINTERNAL IP\tEXTERNAL IP\tAGE")
	}

	for _, info := range infos {
		internalIP := info.InternalIP
		if internalIP == "" {
			internalIP = "-"
		}
		externalIP := info.ExternalIP
		if externalIP == "" {
			externalIP = "-"
		}

		age := "-"
		if !info.Created.IsZero() {
			age = formatAge(time.Since(info.Created))
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			info.Name, info.MachineType, info.Status, internalIP, externalIP, age)
	}

	_ = w.Flush()
	return buf.String(), nil
}

// formatAge formats a duration as a human-readable age string.
// Examples: "5s", "2m", "3h", "4d", "2w", "1y"
func formatAge(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}

	weeks := days / 7
	if weeks < 8 {
		return fmt.Sprintf("%dw", weeks)
	}

	years := days / 365
	if years > 0 {
		return fmt.Sprintf("%dy", years)
	}

	return fmt.Sprintf("%dd", days)
}
