package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houndlab/orientation-backend-go/internal/models"
)

func seededStore(t *testing.T, autoLabels ...string) *Store {
	t.Helper()
	s := NewStore(len(autoLabels))
	for i, label := range autoLabels {
		s.Seed(i, label)
	}
	return s
}

func TestStoreSeedIsIdempotent(t *testing.T) {
	s := seededStore(t, models.LabelStraight)

	// Re-seeding never changes the recorded automatic label.
	s.Seed(0, models.LabelLeft)

	rec, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, models.LabelStraight, rec.AutoLabel)
	assert.Equal(t, models.LabelStraight, rec.ManualLabel)
	assert.False(t, rec.Modified)
}

func TestStoreSetManual(t *testing.T) {
	s := seededStore(t, models.LabelStraight, models.LabelLeft)

	require.NoError(t, s.SetManual(0, models.LabelRight))

	rec, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, models.LabelStraight, rec.AutoLabel)
	assert.Equal(t, models.LabelRight, rec.ManualLabel)
	assert.True(t, rec.Modified)

	// Setting back to the automatic value clears the modified flag.
	require.NoError(t, s.SetManual(0, models.LabelStraight))
	rec, _ = s.Get(0)
	assert.False(t, rec.Modified)
}

func TestStoreSetManualPoorLikelihood(t *testing.T) {
	s := seededStore(t, models.LabelStraight)
	assert.NoError(t, s.SetManual(0, models.LabelPoorLikelihood))
}

func TestStoreSetManualRejects(t *testing.T) {
	s := seededStore(t, models.LabelStraight)

	assert.Error(t, s.SetManual(0, "SIDEWAYS"))
	assert.Error(t, s.SetManual(0, models.LabelUndefined), "UNDEFINED is not reviewer-assignable")
	assert.Error(t, s.SetManual(7, models.LabelLeft), "unseeded segment")
}

func TestStoreExportOrdered(t *testing.T) {
	s := NewStore(3)
	s.Seed(2, models.LabelRight)
	s.Seed(0, models.LabelLeft)
	s.Seed(1, models.LabelStraight)

	records := s.Export()
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, i, rec.SegmentIndex)
	}
	assert.Equal(t, models.LabelLeft, records[0].AutoLabel)
	assert.Equal(t, models.LabelStraight, records[1].AutoLabel)
	assert.Equal(t, models.LabelRight, records[2].AutoLabel)
}

func TestSummarize(t *testing.T) {
	s := seededStore(t,
		models.LabelStraight,
		models.LabelStraight,
		models.LabelLeft,
		models.LabelRight,
	)

	summary := s.Summary()
	assert.Equal(t, models.LabelCount{Count: 2, Percent: 50.0}, summary[models.LabelStraight])
	assert.Equal(t, models.LabelCount{Count: 1, Percent: 25.0}, summary[models.LabelLeft])
	assert.Equal(t, models.LabelCount{Count: 1, Percent: 25.0}, summary[models.LabelRight])
	assert.Equal(t, models.LabelCount{Count: 0, Percent: 0.0}, summary[models.LabelElsewhere],
		"primary labels appear even at zero count")
}

func TestSummarizeFollowsManualEdits(t *testing.T) {
	s := seededStore(t, models.LabelStraight, models.LabelStraight, models.LabelStraight)
	require.NoError(t, s.SetManual(1, models.LabelLeft))

	summary := s.Summary()
	assert.Equal(t, 2, summary[models.LabelStraight].Count)
	assert.Equal(t, 1, summary[models.LabelLeft].Count)
}

func TestSummarizePercentRounding(t *testing.T) {
	// 1 of 3: 33.333...% rounds to one decimal.
	s := seededStore(t, models.LabelLeft, models.LabelStraight, models.LabelStraight)
	summary := s.Summary()
	assert.Equal(t, 33.3, summary[models.LabelLeft].Percent)
	assert.Equal(t, 66.7, summary[models.LabelStraight].Percent)
}

func TestSummarizeNonPrimaryLabels(t *testing.T) {
	// POOR_LIKELIHOOD and UNDEFINED only appear when present.
	records := []models.LabelRecord{
		{SegmentIndex: 0, AutoLabel: models.LabelPoorLikelihood, ManualLabel: models.LabelPoorLikelihood},
		{SegmentIndex: 1, AutoLabel: models.LabelStraight, ManualLabel: models.LabelStraight},
	}

	summary := Summarize(records, 2)
	assert.Equal(t, 1, summary[models.LabelPoorLikelihood].Count)
	assert.Equal(t, 50.0, summary[models.LabelPoorLikelihood].Percent)
	_, hasUndefined := summary[models.LabelUndefined]
	assert.False(t, hasUndefined)
}

func TestSummarizeEmptyTotal(t *testing.T) {
	summary := Summarize(nil, 0)
	require.Len(t, summary, len(models.PrimaryLabels))
	for _, label := range models.PrimaryLabels {
		assert.Equal(t, models.LabelCount{Count: 0, Percent: 0.0}, summary[label])
	}
}

func TestStoreLen(t *testing.T) {
	s := NewStore(5)
	assert.Equal(t, 0, s.Len())
	s.Seed(0, models.LabelStraight)
	s.Seed(1, models.LabelLeft)
	assert.Equal(t, 2, s.Len())
}
