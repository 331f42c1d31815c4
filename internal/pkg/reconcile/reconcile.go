// Package reconcile computes the minimal add/remove/update set that makes a
// persisted named-entity collection match a submitted label list exactly.
package reconcile

import (
	"fmt"
	"strings"
)

// Entry is one submitted item: a unique Key plus an optional mutable Value
// (the social-link URL). Plain name lists leave Value empty.
type Entry struct {
	Key   string
	Value string
}

// Update pairs an existing entity with the new value its mutable field
// should take.
type Update[T any] struct {
	Existing T
	Value    string
}

// Diff is the result of Compute. Applying ToAdd, ToRemove and ToUpdate as
// three batch operations converges the collection onto the submitted set.
type Diff[T any] struct {
	ToAdd    []Entry
	ToRemove []T
	ToUpdate []Update[T]
}

// Changed reports whether applying the diff would modify anything.
func (d Diff[T]) Changed() bool {
	return len(d.ToAdd) > 0 || len(d.ToRemove) > 0 || len(d.ToUpdate) > 0
}

// Summary renders the operator-facing change report.
func (d Diff[T]) Summary() string {
	if !d.Changed() {
		return "no changes"
	}
	return fmt.Sprintf("%d added, %d removed, %d updated",
		len(d.ToAdd), len(d.ToRemove), len(d.ToUpdate))
}

// NormalizeNames cleans a plain label list: trim, apply clean (HTML strip),
// drop entries that end up empty, and de-duplicate by exact equality,
// keeping the first occurrence.
func NormalizeNames(labels []string, clean func(string) string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		name := normalizeOne(label, clean)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// NormalizeEntries cleans structured entries and de-duplicates by key,
// keeping the LAST occurrence's value fields.
func NormalizeEntries(entries []Entry, clean func(string) string) []Entry {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		key := normalizeOne(e.Key, clean)
		if key == "" {
			continue
		}
		value := normalizeOne(e.Value, clean)
		if i, ok := index[key]; ok {
			out[i].Value = value
			continue
		}
		index[key] = len(out)
		out = append(out, Entry{Key: key, Value: value})
	}
	return out
}

// Compute diffs the persisted entities against normalized submitted entries.
// keyOf identifies an entity; valueOf reads its mutable field, or is nil for
// collections without one (then ToUpdate stays empty). Entities whose key is
// unchanged are never removed and re-added, and an entity only lands in
// ToUpdate when its persisted value actually differs.
func Compute[T any](persisted []T, submitted []Entry, keyOf func(T) string, valueOf func(T) string) Diff[T] {
	existing := make(map[string]T, len(persisted))
	for _, p := range persisted {
		existing[keyOf(p)] = p
	}

	var diff Diff[T]
	wanted := make(map[string]struct{}, len(submitted))
	for _, e := range submitted {
		wanted[e.Key] = struct{}{}
		current, ok := existing[e.Key]
		if !ok {
			diff.ToAdd = append(diff.ToAdd, e)
			continue
		}
		if valueOf != nil && valueOf(current) != e.Value {
			diff.ToUpdate = append(diff.ToUpdate, Update[T]{Existing: current, Value: e.Value})
		}
	}

	for _, p := range persisted {
		if _, ok := wanted[keyOf(p)]; !ok {
			diff.ToRemove = append(diff.ToRemove, p)
		}
	}
	return diff
}

func normalizeOne(raw string, clean func(string) string) string {
	s := strings.TrimSpace(raw)
	if clean != nil {
		s = strings.TrimSpace(clean(s))
	}
	return s
}
