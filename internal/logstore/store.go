package logstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Store is the thin facade over CSV-backed log data the rest of the engine
// is built on. A Store is loaded once per process (or per query, for a
// repl session that reloads) and then only ever read from.
type Store struct {
	rows []Row
}

// Load reads a CSV file into a Store. The CSV's header row determines field
// names; every column becomes a Fields entry, and the columns "_source.log",
// "timestamp" and "severity" additionally populate the typed Row fields when
// present. A row whose severity column is absent or unrecognized gets
// Severity = Unparsed rather than failing the whole load — one bad row
// should not sink an otherwise-usable dataset.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("logstore: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader reads CSV rows from r; split out from Load so tests can build a
// Store from an in-memory string without touching the filesystem.
func LoadReader(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows rather than failing the whole load

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return &Store{}, nil
		}
		return nil, fmt.Errorf("logstore: read header: %w", err)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("logstore: read record: %w", err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				fields[col] = record[i]
			}
		}

		row := Row{Fields: fields, Severity: Unparsed}
		if v, ok := fields["_source.log"]; ok {
			row.Log = v
		}
		if v, ok := fields["timestamp"]; ok {
			row.Timestamp = v
		}
		if v, ok := fields["severity"]; ok {
			if sev, err := ParseSeverity(v); err == nil {
				row.Severity = sev
			}
		}
		rows = append(rows, row)
	}

	return &Store{rows: rows}, nil
}

// LoadAll returns the full ingested dataset. Called at most once per query
// by the orchestrator, which caches the result as loaded_rows.
func (s *Store) LoadAll() RowSet {
	return NewRowSet(s.rows)
}

// Count returns the number of rows in rs.
func Count(rs RowSet) int {
	return rs.Len()
}

// rowFieldString renders every field of a row as a single string for
// whole-row substring scanning, in a stable column order so results are
// deterministic across runs.
func rowFieldString(row Row) string {
	keys := make([]string, 0, len(row.Fields))
	for k := range row.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(row.Fields[k])
		sb.WriteByte(' ')
	}
	return sb.String()
}

// MatchesSubstring reports whether needle occurs as a literal, case-sensitive
// substring of row. If columns is empty, the whole row (every field) is
// scanned; otherwise only the named columns are. Exported so callers that
// need a per-row test without building an intermediate RowSet — notably
// normalize.FuzzySearch's order-preserving union — can reuse the exact same
// matching semantics as SearchSubstring.
func MatchesSubstring(row Row, needle string, columns []string) bool {
	var haystack string
	if len(columns) == 0 {
		haystack = rowFieldString(row)
	} else {
		var sb strings.Builder
		for _, col := range columns {
			sb.WriteString(row.Fields[col])
			sb.WriteByte(' ')
		}
		haystack = sb.String()
	}
	return strings.Contains(haystack, needle)
}

// SearchSubstring retains rows containing needle as a literal, case-sensitive
// substring. If columns is empty, the search scans a concatenation of every
// field; otherwise only the named columns are scanned. An empty needle is a
// caller error, not silently treated as match-everything.
func SearchSubstring(rs RowSet, needle string, columns []string) (RowSet, error) {
	if needle == "" {
		return RowSet{}, fmt.Errorf("logstore: search_substring: needle must not be empty")
	}

	var out []Row
	for _, row := range rs.Rows() {
		if MatchesSubstring(row, needle, columns) {
			out = append(out, row)
		}
	}
	return NewRowSet(out), nil
}

// FilterTime retains rows whose timestamp lexicographically falls within
// [start, end]; either bound may be empty to mean unbounded on that side.
// Rows with an empty timestamp are excluded rather than included by
// default, since an unordered row cannot be shown to satisfy a time bound.
// A non-empty timestamp is compared as a plain string; it is not checked
// for being valid ISO-8601, so a malformed one is kept or dropped by that
// string comparison alone.
func FilterTime(rs RowSet, start, end string) RowSet {
	var out []Row
	for _, row := range rs.Rows() {
		if row.Timestamp == "" {
			continue
		}
		if start != "" && row.Timestamp < start {
			continue
		}
		if end != "" && row.Timestamp > end {
			continue
		}
		out = append(out, row)
	}
	return NewRowSet(out)
}

// FilterSeverity retains rows whose severity ordinal is one of levels. An
// empty level set is a caller error — it would otherwise silently match
// nothing, masking a typo in the Decision's parameters.
func FilterSeverity(rs RowSet, levels []Severity) (RowSet, error) {
	if len(levels) == 0 {
		return RowSet{}, fmt.Errorf("logstore: filter_severity: severities must not be empty")
	}
	want := make(map[Severity]bool, len(levels))
	for _, l := range levels {
		want[l] = true
	}

	var out []Row
	for _, row := range rs.Rows() {
		if want[row.Severity] {
			out = append(out, row)
		}
	}
	return NewRowSet(out), nil
}

// FilterField retains rows whose named field exactly equals value. A row
// missing the field is excluded, not an error — a field absent from every
// row simply yields an empty result.
func FilterField(rs RowSet, field, value string) RowSet {
	var out []Row
	for _, row := range rs.Rows() {
		if v, ok := row.Fields[field]; ok && v == value {
			out = append(out, row)
		}
	}
	return NewRowSet(out)
}
