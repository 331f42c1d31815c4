package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type named struct {
	ID   string
	Name string
}

type link struct {
	ID       string
	Platform string
	URL      string
}

func namesOf(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func entriesFor(names ...string) []Entry {
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, Entry{Key: n})
	}
	return out
}

func TestComputeKeepsUnchangedEntities(t *testing.T) {
	persisted := []named{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	diff := Compute(persisted, entriesFor("B", "C"),
		func(n named) string { return n.Name }, nil)

	assert.Equal(t, []string{"C"}, namesOf(diff.ToAdd))
	if assert.Len(t, diff.ToRemove, 1) {
		assert.Equal(t, "A", diff.ToRemove[0].Name)
	}
	assert.Empty(t, diff.ToUpdate, "an entity whose key survives must never be re-created")
}

func TestComputeIsIdempotent(t *testing.T) {
	persisted := []named{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	diff := Compute(persisted, entriesFor("A", "B"),
		func(n named) string { return n.Name }, nil)

	assert.False(t, diff.Changed())
	assert.Equal(t, "no changes", diff.Summary())
}

func TestComputeEmptySubmissionRemovesAll(t *testing.T) {
	persisted := []named{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	diff := Compute(persisted, nil,
		func(n named) string { return n.Name }, nil)

	assert.Empty(t, diff.ToAdd)
	assert.Len(t, diff.ToRemove, 2)
}

func TestComputeUpdatesOnlyOnValueChange(t *testing.T) {
	persisted := []link{
		{ID: "1", Platform: "instagram", URL: "https://instagram.com/old"},
		{ID: "2", Platform: "behance", URL: "https://behance.net/studio"},
	}
	submitted := []Entry{
		{Key: "instagram", Value: "https://instagram.com/new"},
		{Key: "behance", Value: "https://behance.net/studio"},
	}
	diff := Compute(persisted, submitted,
		func(l link) string { return l.Platform },
		func(l link) string { return l.URL })

	assert.Empty(t, diff.ToAdd)
	assert.Empty(t, diff.ToRemove)
	if assert.Len(t, diff.ToUpdate, 1) {
		assert.Equal(t, "instagram", diff.ToUpdate[0].Existing.Platform)
		assert.Equal(t, "https://instagram.com/new", diff.ToUpdate[0].Value)
	}
}

func TestComputeNilValueOfDisablesUpdates(t *testing.T) {
	persisted := []link{{ID: "1", Platform: "x", URL: "a"}}
	diff := Compute(persisted, []Entry{{Key: "x", Value: "b"}},
		func(l link) string { return l.Platform }, nil)

	assert.False(t, diff.Changed())
}

func TestSummaryCounts(t *testing.T) {
	diff := Diff[named]{
		ToAdd:    entriesFor("C", "D"),
		ToRemove: []named{{Name: "A"}},
	}
	assert.Equal(t, "2 added, 1 removed, 0 updated", diff.Summary())
}

func TestNormalizeNames(t *testing.T) {
	clean := func(s string) string { return strings.ReplaceAll(s, "<b>", "") }

	got := NormalizeNames([]string{"  Weddings ", "Weddings", "", "   ", "<b>Events"}, clean)
	assert.Equal(t, []string{"Weddings", "Events"}, got)
}

func TestNormalizeNamesKeepsFirstDuplicate(t *testing.T) {
	got := NormalizeNames([]string{"Portraits", " Portraits ", "Travel"}, nil)
	assert.Equal(t, []string{"Portraits", "Travel"}, got)
}

func TestNormalizeEntriesKeepsLastValue(t *testing.T) {
	got := NormalizeEntries([]Entry{
		{Key: "instagram", Value: "https://old"},
		{Key: " facebook ", Value: "https://fb"},
		{Key: "instagram", Value: "https://new"},
	}, nil)

	assert.Equal(t, []Entry{
		{Key: "instagram", Value: "https://new"},
		{Key: "facebook", Value: "https://fb"},
	}, got)
}

func TestNormalizeEntriesDropsEmptyKeys(t *testing.T) {
	got := NormalizeEntries([]Entry{{Key: "   ", Value: "https://x"}}, nil)
	assert.Empty(t, got)
}
