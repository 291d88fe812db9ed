// Package normalize resolves the ad hoc column naming of raw stat
// exports to the logical field names the rest of the pipeline uses.
// Export format variants rename columns freely (w/wins, rs/runs_scored,
// TeamID/team_id); every lookup here is case-insensitive and driven by a
// declared alias list, resolved once per table load.
package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wonny/almanac/internal/contracts"
)

// AliasMap maps a logical field name to the ordered list of acceptable
// raw column names. Earlier aliases win.
type AliasMap map[string][]string

// Normalizer turns raw tables into entity records under one alias map
type Normalizer struct {
	aliases AliasMap
	idField string
}

// New creates a normalizer. idField is the logical field holding the
// stable entity identifier; rows without it are rejected.
func New(aliases AliasMap, idField string) *Normalizer {
	return &Normalizer{aliases: aliases, idField: idField}
}

// Resolve finds the concrete column for a logical field, case-insensitively.
// Returns false when no alias matches.
func (n *Normalizer) Resolve(columns []string, logical string) (string, bool) {
	lowered := make(map[string]string, len(columns))
	for _, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, exists := lowered[key]; !exists {
			lowered[key] = col
		}
	}
	for _, alias := range n.aliases[logical] {
		if col, ok := lowered[strings.ToLower(alias)]; ok {
			return col, true
		}
	}
	return "", false
}

// Normalize converts a raw table into entity records. Each logical field
// that resolves against the table's columns is copied under its logical
// name; unresolvable optional fields are simply absent from the record.
func (n *Normalizer) Normalize(t *Table) ([]contracts.EntityRecord, error) {
	resolved := make(map[string]string) // logical -> concrete column
	for logical := range n.aliases {
		if col, ok := n.Resolve(t.Columns, logical); ok {
			resolved[logical] = col
		}
	}

	idCol, ok := resolved[n.idField]
	if !ok {
		return nil, &contracts.MissingFieldError{Field: n.idField}
	}

	records := make([]contracts.EntityRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		rawID := strings.TrimSpace(row[idCol])
		if rawID == "" {
			return nil, fmt.Errorf("row %d: %w", i, &contracts.MissingFieldError{Field: n.idField})
		}
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, &contracts.InvalidValueError{Field: n.idField, Value: rawID})
		}

		fields := make(map[string]string, len(resolved))
		for logical, col := range resolved {
			if v, exists := row[col]; exists {
				fields[logical] = v
			}
		}

		records = append(records, contracts.EntityRecord{
			EntityID: id,
			Name:     displayName(fields, id),
			Fields:   fields,
		})
	}

	return records, nil
}

// displayName builds a label the way the standings exports do:
// abbr + nickname, then city + nickname, then whatever single part
// exists, then a Team <id> fallback.
func displayName(fields map[string]string, id int) string {
	if name := strings.TrimSpace(fields["name"]); name != "" {
		return name
	}
	abbr := strings.TrimSpace(fields["abbr"])
	nick := strings.TrimSpace(fields["nickname"])
	city := strings.TrimSpace(fields["city"])
	switch {
	case abbr != "" && nick != "":
		return abbr + " " + nick
	case city != "" && nick != "":
		return city + " " + nick
	case abbr != "":
		return abbr
	case nick != "":
		return nick
	}
	return fmt.Sprintf("Team %d", id)
}
