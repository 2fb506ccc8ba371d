// Package entity computes typed entities (MACs, IPs, identifiers) out of a
// row set's log payloads, using the patterns configured in the entity
// catalog.
package entity

import (
	"fmt"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/entitycatalog"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
)

// scanColumns lists the row fields entity extraction is allowed to read.
// Infrastructure/metadata columns (pod identifiers, node names) are
// deliberately excluded — this is a correctness invariant, not an
// optimization: an IP that only appears in a "pod_ip" column must never be
// reported as an extracted ip_address.
var scanColumns = []string{"_source.log"}

// OccurrenceMap is type → ordered unique values, plus which row indices (in
// the source row set) each value occurs in.
type OccurrenceMap struct {
	order  map[string][]string            // type -> values in first-seen order
	byType map[string]map[string]map[int]struct{}
}

func newOccurrenceMap() *OccurrenceMap {
	return &OccurrenceMap{
		order:  make(map[string][]string),
		byType: make(map[string]map[string]map[int]struct{}),
	}
}

func (m *OccurrenceMap) add(typeName, value string, rowIdx int) {
	if m.byType[typeName] == nil {
		m.byType[typeName] = make(map[string]map[int]struct{})
	}
	if m.byType[typeName][value] == nil {
		m.byType[typeName][value] = make(map[int]struct{})
		m.order[typeName] = append(m.order[typeName], value)
	}
	m.byType[typeName][value][rowIdx] = struct{}{}
}

// Values returns the unique values for typeName in first-seen order.
func (m *OccurrenceMap) Values(typeName string) []string {
	out := make([]string, len(m.order[typeName]))
	copy(out, m.order[typeName])
	return out
}

// Types returns every type name that produced at least one value.
func (m *OccurrenceMap) Types() []string {
	out := make([]string, 0, len(m.order))
	for t := range m.order {
		out = append(out, t)
	}
	return out
}

// RowIndices returns the row indices (within the row set extraction ran
// over) where (typeName, value) occurred.
func (m *OccurrenceMap) RowIndices(typeName, value string) []int {
	set := m.byType[typeName][value]
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	return out
}

// Count returns how many distinct values typeName produced.
func (m *OccurrenceMap) Count(typeName string) int {
	return len(m.order[typeName])
}

// Extract scans rs for every requested type's patterns over scanColumns,
// returning the occurrence map plus the names of any requested types that
// are not registered in the catalog (so the caller can surface a warning
// without failing the whole extraction).
func Extract(cat *entitycatalog.Catalog, rs logstore.RowSet, typeNames []string) (*OccurrenceMap, []string, error) {
	if len(typeNames) == 0 {
		return nil, nil, fmt.Errorf("entity: entity_types must not be empty")
	}

	occ := newOccurrenceMap()
	var unknown []string

	for _, typeName := range typeNames {
		t, ok := cat.Get(typeName)
		if !ok {
			unknown = append(unknown, typeName)
			continue
		}

		rows := rs.Rows()
		for rowIdx, row := range rows {
			for _, col := range scanColumns {
				text, ok := row.Fields[col]
				if !ok || text == "" {
					continue
				}
				for _, pattern := range t.Patterns {
					matches := pattern.FindAllStringSubmatch(text, -1)
					for _, m := range matches {
						value := m[0]
						if pattern.NumSubexp() > 0 && len(m) > 1 {
							value = m[1]
						}
						occ.add(typeName, value, rowIdx)
					}
				}
			}
		}
	}

	return occ, unknown, nil
}

// ExampleValues returns up to n example values for typeName, in first-seen
// order, for rendering in a tool's trace message.
func ExampleValues(occ *OccurrenceMap, typeName string, n int) []string {
	vals := occ.Values(typeName)
	if len(vals) <= n {
		return vals
	}
	return vals[:n]
}
