package service

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/yourname/timetracker/internal"
	"github.com/yourname/timetracker/internal/clock"
)

// RawEntry is the tolerant ingestion shape for a time entry. Imported and
// hand-entered data disagrees on types: Duration and Earned may arrive as
// numbers, numeric strings, or not at all, and the category may be referenced
// by name (Category) or by identifier (CategoryID).
type RawEntry struct {
	ID         string      `json:"id"`
	Date       string      `json:"date"`
	Start      string      `json:"start"`
	End        string      `json:"end"`
	Duration   interface{} `json:"duration"`
	Earned     interface{} `json:"earned"`
	Category   string      `json:"category"`
	CategoryID string      `json:"categoryId"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Raw converts a canonical entry back to the ingestion shape. Normalizing
// the result yields the same entry again.
func Raw(e internal.TimeEntry) RawEntry {
	return RawEntry{
		ID:        e.ID,
		Date:      e.Date,
		Start:     e.Start,
		End:       e.End,
		Duration:  e.Duration,
		Earned:    e.Earned,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
	}
}

// toNonNegativeNumber coerces any ingested value to a non-negative float64.
// Non-numeric, missing, and negative values all collapse to 0 so that one
// malformed field never halts a statistics computation.
func toNonNegativeNumber(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if f < 0 || f != f { // negative or NaN
		return 0
	}
	return f
}

// Normalize resolves a raw entry into a canonical TimeEntry:
//   - an explicit positive duration wins; otherwise the duration is derived
//     from start/end (overnight-aware); otherwise it is 0
//   - earned is coerced to a non-negative number
//   - the category falls back to CategoryID, then to defaultCategory, and is
//     canonicalized through idx when one is supplied
//
// Normalize is pure and idempotent; it never fails.
func Normalize(raw RawEntry, defaultCategory string, idx *CategoryIndex) internal.TimeEntry {
	duration := toNonNegativeNumber(raw.Duration)
	if duration == 0 {
		duration = clock.DurationHours(raw.Start, raw.End)
	}

	category := raw.Category
	if category == "" {
		category = raw.CategoryID
	}
	if category == "" {
		category = defaultCategory
	}
	if idx != nil {
		category = idx.Resolve(category)
	}

	return internal.TimeEntry{
		ID:        raw.ID,
		Date:      raw.Date,
		Start:     raw.Start,
		End:       raw.End,
		Duration:  duration,
		Category:  category,
		Earned:    toNonNegativeNumber(raw.Earned),
		CreatedAt: raw.CreatedAt,
	}
}

// NormalizeAll normalizes a batch in input order.
func NormalizeAll(raws []RawEntry, defaultCategory string, idx *CategoryIndex) []internal.TimeEntry {
	entries := make([]internal.TimeEntry, len(raws))
	for i, r := range raws {
		entries[i] = Normalize(r, defaultCategory, idx)
	}
	return entries
}

// CategoryIndex resolves a category referenced by either id or display name
// to its canonical id. Unknown values pass through unchanged so entries with
// deleted categories still aggregate under their stored label.
type CategoryIndex struct {
	byID   map[string]internal.Category
	byName map[string]string // name -> id
}

func NewCategoryIndex(categories []internal.Category) *CategoryIndex {
	idx := &CategoryIndex{
		byID:   make(map[string]internal.Category, len(categories)),
		byName: make(map[string]string, len(categories)),
	}
	for _, c := range categories {
		idx.byID[c.ID] = c
		idx.byName[c.Name] = c.ID
	}
	return idx
}

func (idx *CategoryIndex) Resolve(value string) string {
	if _, ok := idx.byID[value]; ok {
		return value
	}
	if id, ok := idx.byName[value]; ok {
		return id
	}
	return value
}
