package normalize

import (
	"strings"
	"testing"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
)

func TestNormalizeAlwaysContainsOriginalTerm(t *testing.T) {
	for _, term := range []string{"error", "registration", "something-unconfigured"} {
		variants := Normalize(term)
		found := false
		for _, v := range variants {
			if v == term {
				found = true
			}
		}
		if !found {
			t.Fatalf("normalize(%q) = %v, missing original term", term, variants)
		}
	}
}

func TestFuzzySearchSupersetsLiteralSearch(t *testing.T) {
	csvText := `timestamp,severity,_source.log
t1,INFO,"reg failed for cpe"
t2,INFO,"registration complete"
t3,INFO,"unrelated line"
`
	store, err := logstore.LoadReader(strings.NewReader(csvText))
	if err != nil {
		t.Fatal(err)
	}
	rs := store.LoadAll()

	literal, err := logstore.SearchSubstring(rs, "registration", nil)
	if err != nil {
		t.Fatal(err)
	}
	fuzzy, err := FuzzySearch(rs, "registration")
	if err != nil {
		t.Fatalf("FuzzySearch: %v", err)
	}
	if fuzzy.Len() < literal.Len() {
		t.Fatalf("fuzzy_search (%d) must be a superset of search_logs (%d)", fuzzy.Len(), literal.Len())
	}
	if fuzzy.Len() != 2 {
		t.Fatalf("want 2 rows (reg + registration), got %d", fuzzy.Len())
	}
}

func TestFuzzySearchEmptyTermIsError(t *testing.T) {
	store, _ := logstore.LoadReader(strings.NewReader("timestamp,severity,_source.log\n"))
	if _, err := FuzzySearch(store.LoadAll(), ""); err == nil {
		t.Fatal("want error for empty term")
	}
}
