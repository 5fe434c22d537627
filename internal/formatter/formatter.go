// package formatter provides functions to export the address book to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/agenda/internal/models"
	"github.com/desertthunder/agenda/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats in the order shown to users.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

var headers = []string{"User", "Display Name", "CEP", "Street", "Neighborhood", "City", "State", "ID"}

// ParseFormat resolves a format name, accepting "md" and "text" as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (use csv, markdown, txt or json)", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// DefaultFilename returns the file an export is written to when no path is given.
func (f Format) DefaultFilename() string {
	return "agenda." + f.Extension()
}

func row(a models.Address) []string {
	return []string{a.Username, a.DisplayName, a.CEP, a.Street, a.Neighborhood, a.City, a.State, a.ID}
}

// Export renders addresses in the given format.
func Export(format Format, addresses []models.Address) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(addresses)
	case FormatMarkdown:
		return ExportToMarkdown(addresses)
	case FormatText:
		return ExportToText(addresses)
	case FormatJSON:
		return ExportToJSON(addresses)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportToCSV converts addresses to CSV with columns: User, Display Name, CEP, Street, Neighborhood, City, State, ID
func ExportToCSV(addresses []models.Address) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range addresses {
		if err := writer.Write(row(a)); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts addresses to a Markdown table
func ExportToMarkdown(addresses []models.Address) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Address Book\n\n")
	buf.WriteString(fmt.Sprintf("**Addresses**: %d\n\n", len(addresses)))

	if len(addresses) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	buf.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, a := range addresses {
		cells := row(a)
		for i, c := range cells {
			cells[i] = escapeCell(c)
		}
		buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// ExportToText converts addresses to plain text format
func ExportToText(addresses []models.Address) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Addresses: %d\n\n", len(addresses)))

	for i, a := range addresses {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, a.DisplayName, a.Username))
		buf.WriteString(fmt.Sprintf("   %s\n", joinNonEmpty(", ", a.Street, a.Complement, a.Neighborhood)))
		buf.WriteString(fmt.Sprintf("   %s - %s\n", joinNonEmpty("/", a.City, a.State), a.CEP))
		buf.WriteString(fmt.Sprintf("   ID: %s\n", a.ID))
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes addresses as the indented JSON array stored in the address book slot
func ExportToJSON(addresses []models.Address) ([]byte, error) {
	if addresses == nil {
		addresses = []models.Address{}
	}
	data, err := json.MarshalIndent(addresses, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// WriteExport renders addresses and writes them to path, creating parent directories.
//
// Defaults to [Format.DefaultFilename] when path is empty. Returns the path written.
func WriteExport(format Format, addresses []models.Address, path string) (string, error) {
	if path == "" {
		path = format.DefaultFilename()
	}

	data, err := Export(format, addresses)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
