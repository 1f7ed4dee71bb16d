// Package stats keeps best-effort visit counters in a single JSON
// document. Loads are tolerant: a missing, empty, or mangled ledger
// reads as zero everywhere. Every recorded visit rewrites the
// whole document. Single-writer semantics; concurrent writers can lose
// an increment, which is accepted at this traffic level.
package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/natefinch/atomic"
)

// HomePath is the pseudo-path recorded for front-page visits. It
// counts toward daily and total figures but never toward a post.
const HomePath = "home"

const dateFormat = "2006-01-02"

// Ledger is the persisted statistics document.
type Ledger struct {
	Daily map[string]int `json:"daily"`
	Posts map[string]int `json:"posts"`
	Total int            `json:"total"`
}

// DayCount is one point of the daily-visits series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PostCount is one entry of the most-read ranking.
type PostCount struct {
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Report bundles the derived views the admin dashboard renders.
type Report struct {
	Total     int
	Days      []DayCount
	MaxVisits int
	Top       []PostCount
}

// Store persists a Ledger at a fixed path.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a Store over the given JSON file path. The file is
// created on the first recorded visit.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the ledger file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the ledger. Any failure (missing file, empty file,
// corrupt JSON) yields an empty ledger; it never errors.
func (s *Store) Load() Ledger {
	l := Ledger{}
	if data, err := os.ReadFile(s.path); err == nil && len(data) > 0 {
		// A corrupt document starts the counters over rather than
		// taking the site down.
		_ = json.Unmarshal(data, &l)
	}
	if l.Daily == nil {
		l.Daily = make(map[string]int)
	}
	if l.Posts == nil {
		l.Posts = make(map[string]int)
	}
	return l
}

// RecordVisit counts one page view: total and today's daily figure
// always, the per-post figure unless path is HomePath. The whole
// ledger is rewritten. Callers are expected to skip this entirely for
// metrics-exempt clients.
func (s *Store) RecordVisit(path string) error {
	l := s.Load()
	today := s.now().Format(dateFormat)

	l.Total++
	l.Daily[today]++
	if path != HomePath {
		l.Posts[path]++
	}
	return s.write(l)
}

func (s *Store) write(l Ledger) error {
	data, err := json.MarshalIndent(l, "", "    ")
	if err != nil {
		return fmt.Errorf("stats: marshal ledger: %w", err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("stats: write ledger: %w", err)
	}
	return nil
}

// Report loads the ledger and derives the dashboard views: the last
// seven calendar days and the three most-read posts.
func (s *Store) Report() Report {
	l := s.Load()
	days := s.lastDays(l, 7)
	return Report{
		Total:     l.Total,
		Days:      days,
		MaxVisits: MaxVisits(days),
		Top:       l.TopPosts(3),
	}
}

// lastDays returns exactly n entries ending today, zero-filled for
// days with no visits, oldest first.
func (s *Store) lastDays(l Ledger, n int) []DayCount {
	days := make([]DayCount, 0, n)
	now := s.now()
	for i := n - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i).Format(dateFormat)
		days = append(days, DayCount{Date: d, Count: l.Daily[d]})
	}
	return days
}

// TopPosts returns up to n posts by visit count descending. Ties keep
// a stable order by slug so the ranking does not jitter between loads.
func (l Ledger) TopPosts(n int) []PostCount {
	ranked := make([]PostCount, 0, len(l.Posts))
	for slug, count := range l.Posts {
		ranked = append(ranked, PostCount{Slug: slug, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Slug < ranked[j].Slug
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MaxVisits returns the largest count in the series, floored at 1 so
// chart scaling never divides by zero.
func MaxVisits(days []DayCount) int {
	max := 1
	for _, d := range days {
		if d.Count > max {
			max = d.Count
		}
	}
	return max
}
