// Package labels holds the per-segment label table for a labeling session:
// the automatically classified label and the reviewer's effective label,
// with modification tracking and summary statistics.
package labels

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/houndlab/orientation-backend-go/internal/models"
)

type record struct {
	auto   string
	manual string
}

// Store maps segment indices to label records. It is the only mutable
// shared structure in a session; a mutex serializes concurrent reviewer
// writes (last writer wins on the same segment).
type Store struct {
	mu      sync.Mutex
	total   int
	records map[int]*record
}

// NewStore creates a store for a session with the given total segment
// count. Percentages in the summary are always relative to this total.
func NewStore(totalSegments int) *Store {
	return &Store{
		total:   totalSegments,
		records: make(map[int]*record, totalSegments),
	}
}

// Seed records the automatic label for a segment, setting the manual label
// to the same value. Called once per segment at classification time;
// seeding an already-seeded segment is a no-op, so the auto label is
// immutable after first computation.
func (s *Store) Seed(segmentIndex int, autoLabel string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[segmentIndex]; ok {
		return
	}
	s.records[segmentIndex] = &record{auto: autoLabel, manual: autoLabel}
}

// SetManual overwrites the effective label for a segment. The automatic
// label is untouched; the modified flag is derived, not stored.
func (s *Store) SetManual(segmentIndex int, label string) error {
	if !models.IsAssignableLabel(label) {
		return fmt.Errorf("invalid label %q", label)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[segmentIndex]
	if !ok {
		return fmt.Errorf("segment %d has not been classified", segmentIndex)
	}
	rec.manual = label
	return nil
}

// Get returns the label record for one segment.
func (s *Store) Get(segmentIndex int) (models.LabelRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[segmentIndex]
	if !ok {
		return models.LabelRecord{}, false
	}
	return models.LabelRecord{
		SegmentIndex: segmentIndex,
		AutoLabel:    rec.auto,
		ManualLabel:  rec.manual,
		Modified:     rec.manual != rec.auto,
	}, true
}

// Export returns every label record ordered by segment index.
func (s *Store) Export() []models.LabelRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	indices := make([]int, 0, len(s.records))
	for idx := range s.records {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]models.LabelRecord, 0, len(indices))
	for _, idx := range indices {
		rec := s.records[idx]
		out = append(out, models.LabelRecord{
			SegmentIndex: idx,
			AutoLabel:    rec.auto,
			ManualLabel:  rec.manual,
			Modified:     rec.manual != rec.auto,
		})
	}
	return out
}

// Summary computes the label distribution over the effective (manual)
// labels, relative to the store's total segment count.
func (s *Store) Summary() models.LabelSummary {
	return Summarize(s.Export(), s.total)
}

// Summarize computes the label distribution over the effective (manual)
// labels of a record list. The four primary labels always appear, even at
// zero count; percentages are relative to totalSegments, rounded to one
// decimal.
func Summarize(records []models.LabelRecord, totalSegments int) models.LabelSummary {
	counts := make(map[string]int)
	for _, label := range models.PrimaryLabels {
		counts[label] = 0
	}
	for _, rec := range records {
		counts[rec.ManualLabel]++
	}

	summary := make(models.LabelSummary, len(counts))
	for label, count := range counts {
		percent := 0.0
		if totalSegments > 0 {
			percent = math.Round(float64(count)/float64(totalSegments)*1000) / 10
		}
		summary[label] = models.LabelCount{Count: count, Percent: percent}
	}
	return summary
}

// Len returns the number of seeded segments.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
