package schema

import (
	"fmt"
	"sort"

	"github.com/vmsantos/fechamento/internal/sales"
)

// MissingColumnsError signals that a file's header row, after alias
// matching, does not cover every required canonical field. It is not fatal
// to a run: the caller skips the file and records a warning.
type MissingColumnsError struct {
	File    string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing columns %v", e.File, e.Missing)
}

// Normalize maps a file's header row to canonical field names.
//
// The returned map covers only the headers that matched some alias; headers
// with no alias are dropped silently. For each canonical field the first
// alias in the table's list that appears in the header row wins, so a file
// carrying both "loja" and "store_id" binds store_id to the "loja" column.
//
// If any required field ends up unmatched, Normalize returns a
// *MissingColumnsError naming the file and the missing fields in sorted
// order.
func (t AliasTable) Normalize(file string, headers []string) (map[string]string, error) {
	// Lookup from normalized spelling to the original header as it appears
	// in the file. The first occurrence wins when a file repeats a header.
	byNormalized := make(map[string]string, len(headers))
	for _, h := range headers {
		key := normalizeHeader(h)
		if _, ok := byNormalized[key]; !ok {
			byNormalized[key] = h
		}
	}

	mapping := make(map[string]string)
	matched := make(map[string]bool)
	for field, aliases := range t {
		for _, alias := range aliases {
			if original, ok := byNormalized[normalizeHeader(alias)]; ok {
				mapping[original] = field
				matched[field] = true
				break
			}
		}
	}

	var missing []string
	for _, field := range sales.RequiredFields {
		if !matched[field] {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{File: file, Missing: missing}
	}
	return mapping, nil
}
