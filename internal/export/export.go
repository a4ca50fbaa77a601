// Package export serializes a radical table to CSV, TSV, JSON or YAML.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/raphaelgruber/kangxi-radicals/internal/models"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// NotAvailable marks an unresolved ideograph or an empty variant list.
const NotAvailable = "N/A"

// utf8BOM prefixes CSV output.
const utf8BOM = "\uFEFF"

// Header lists the column names, in order.
var Header = []string{
	"kangxi_number",
	"kangxi_char",
	"kangxi_code",
	"intermediary_char",
	"intermediary_code",
	"supplement_chars",
	"supplement_codes",
}

// ParseFormat accepts a format name or a file extension ("yml" is YAML).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatCSV, FormatTSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv, tsv, json or yaml)", s)
	}
}

// Row is the flat, serializable form of one table entry.
type Row struct {
	KangxiNumber     int    `json:"kangxi_number" yaml:"kangxi_number"`
	KangxiChar       string `json:"kangxi_char" yaml:"kangxi_char"`
	KangxiCode       string `json:"kangxi_code" yaml:"kangxi_code"`
	IntermediaryChar string `json:"intermediary_char" yaml:"intermediary_char"`
	IntermediaryCode string `json:"intermediary_code" yaml:"intermediary_code"`
	SupplementChars  string `json:"supplement_chars" yaml:"supplement_chars"`
	SupplementCodes  string `json:"supplement_codes" yaml:"supplement_codes"`
}

// NewRow flattens an entry. Unresolved ideographs and empty variant lists become N/A;
// variant characters are concatenated and their codes joined with commas, in file order.
func NewRow(e models.KangxiRadicalEntry) Row {
	row := Row{
		KangxiNumber:     e.Number,
		KangxiChar:       e.KangxiChar.Char(),
		KangxiCode:       e.KangxiChar.String(),
		IntermediaryChar: NotAvailable,
		IntermediaryCode: NotAvailable,
		SupplementChars:  models.Chars(e.Variants),
		SupplementCodes:  NotAvailable,
	}
	if e.Intermediary != nil {
		row.IntermediaryChar = e.Intermediary.Char()
		row.IntermediaryCode = e.Intermediary.String()
	}
	if len(e.Variants) > 0 {
		row.SupplementCodes = models.FormatCodepoints(e.Variants, ",")
	}
	return row
}

// Rows flattens a whole table.
func Rows(table models.Table) []Row {
	rows := make([]Row, len(table))
	for i, e := range table {
		rows[i] = NewRow(e)
	}
	return rows
}

func (r Row) fields() []string {
	return []string{
		strconv.Itoa(r.KangxiNumber),
		r.KangxiChar,
		r.KangxiCode,
		r.IntermediaryChar,
		r.IntermediaryCode,
		r.SupplementChars,
		r.SupplementCodes,
	}
}

// Encode writes table to w in the given format.
func Encode(w io.Writer, table models.Table, format Format) error {
	rows := Rows(table)
	switch format {
	case FormatCSV:
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
		return encodeDelimited(w, rows, ',')
	case FormatTSV:
		return encodeDelimited(w, rows, '\t')
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(rows)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func encodeDelimited(w io.Writer, rows []Row, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
