// Package lineformat implements the quoted-CSV row codec used by the
// Payback export format. Fields follow RFC-4180-style quoting: a field
// containing a comma, double quote or newline is quoted, and an embedded
// quote is escaped by doubling it.
//
// The codec is a plain character scan instead of encoding/csv because a
// row is only one part of a line-oriented grammar (envelope markers,
// [SECTION] headers, comments) that csv.Reader cannot express.
package lineformat

import (
	"strings"
)

// TokenizeLine splits one line into its fields.
func TokenizeLine(line string) []string {
	fields := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]

		switch {
		case c == '"':
			if inQuotes {
				// A doubled quote inside a quoted field is a literal quote
				if i+1 < len(line) && line[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				inQuotes = true
			}

		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()

		default:
			field.WriteByte(c)
		}
	}

	fields = append(fields, field.String())
	return fields
}

// DetokenizeFields joins fields into one line, quoting where needed.
func DetokenizeFields(fields []string) string {
	var line strings.Builder

	for i, field := range fields {
		if i > 0 {
			line.WriteByte(',')
		}

		if strings.ContainsAny(field, ",\"\n") {
			line.WriteByte('"')
			line.WriteString(strings.ReplaceAll(field, `"`, `""`))
			line.WriteByte('"')
		} else {
			line.WriteString(field)
		}
	}

	return line.String()
}
