package request

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteJSON renders the result as indented JSON.
func WriteJSON(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteTable renders the result as a two-column table for human use.
func WriteTable(w io.Writer, res Result) error {
	table := tablewriter.NewWriter(w)
	table.Append([]string{"Field", "Value"})
	table.Append([]string{"changed", strconv.FormatBool(res.Changed)})
	table.Append([]string{"username", res.Username})
	table.Append([]string{"password", res.Password})
	table.Append([]string{"realm", res.Realm})
	table.Append([]string{"principal", res.Principal})
	table.Append([]string{"force", strconv.FormatBool(res.Force)})
	table.Append([]string{"forwardable", res.Forwardable})
	if res.Failed {
		table.Append([]string{"failed", "true"})
		table.Append([]string{"msg", res.Msg})
	}
	table.Render()
	return nil
}

// Write renders the result in the named format ("json" or "table").
func Write(w io.Writer, res Result, format string) error {
	switch format {
	case "json":
		return WriteJSON(w, res)
	case "table":
		return WriteTable(w, res)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
