package scanner

import (
	"testing"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 7, 17, 14, 55, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClassifier(t *testing.T, clock *manualClock, opts ...Option) *Classifier {
	t.Helper()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	c, err := NewClassifier(opts...)
	require.NoError(t, err)
	return c
}

// typeRun inserts lengths 1..n with step between each insertion and returns
// the verdicts.
func typeRun(c *Classifier, clock *manualClock, n int, step time.Duration) []Verdict {
	verdicts := make([]Verdict, 0, n)
	for length := 1; length <= n; length++ {
		if length > 1 {
			clock.Advance(step)
		}
		verdicts = append(verdicts, c.OnInsert(length))
	}
	return verdicts
}

func countCompleted(verdicts []Verdict) int {
	n := 0
	for _, v := range verdicts {
		if v == Completed {
			n++
		}
	}
	return n
}

func TestNewClassifier_Defaults(t *testing.T) {
	c, err := NewClassifier()
	require.NoError(t, err)

	assert.Equal(t, DefaultBarcodeLength, c.ExpectedLength())
	assert.Equal(t, DefaultInputDelay, c.MaxElapsed())
	assert.True(t, c.Plausible())
}

func TestNewClassifier_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "zero length", opts: []Option{WithBarcodeLength(0)}},
		{name: "negative length", opts: []Option{WithBarcodeLength(-3)}},
		{name: "negative delay", opts: []Option{WithInputDelay(-time.Millisecond)}},
		{name: "nil clock", opts: []Option{WithClock(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Nil(t, c)
		})
	}
}

func TestClassifier_CompletesWithinWindow(t *testing.T) {
	for _, length := range []int{2, 5, 8, 13} {
		clock := newManualClock()
		c := newTestClassifier(t, clock, WithBarcodeLength(length))

		verdicts := typeRun(c, clock, length+3, time.Millisecond)

		assert.Equal(t, 1, countCompleted(verdicts), "length %d", length)
		assert.Equal(t, Completed, verdicts[length-1], "length %d", length)
	}
}

func TestClassifier_TooSlow(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock)

	verdicts := typeRun(c, clock, 8, 8*time.Millisecond) // 56ms total

	assert.Zero(t, countCompleted(verdicts))
}

func TestClassifier_ElapsedEqualToWindowCompletes(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock, WithBarcodeLength(3), WithInputDelay(50*time.Millisecond))

	assert.Equal(t, Continue, c.OnInsert(1))
	clock.Advance(25 * time.Millisecond)
	assert.Equal(t, Continue, c.OnInsert(2))
	clock.Advance(25 * time.Millisecond)
	assert.Equal(t, Completed, c.OnInsert(3))
}

func TestClassifier_ZeroWindow(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock, WithBarcodeLength(3), WithInputDelay(0))

	assert.Equal(t, Continue, c.OnInsert(1))
	assert.Equal(t, Continue, c.OnInsert(2))
	assert.Equal(t, Completed, c.OnInsert(3))
}

func TestClassifier_LengthOneCompletesImmediately(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock, WithBarcodeLength(1), WithInputDelay(0))

	assert.Equal(t, Completed, c.OnInsert(1))
	assert.Equal(t, Continue, c.OnInsert(2))
}

func TestClassifier_DeletionDisqualifiesRun(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock)

	typeRun(c, clock, 5, time.Millisecond)
	c.OnDelete(4)
	assert.False(t, c.Plausible())

	for length := 5; length <= 9; length++ {
		assert.Equal(t, Continue, c.OnInsert(length), "length %d", length)
	}
}

func TestClassifier_EmptyingFieldStartsNewRun(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock)

	typeRun(c, clock, 3, time.Millisecond)
	c.OnDelete(2)
	c.OnDelete(0)
	assert.True(t, c.Plausible())

	clock.Advance(time.Second)
	verdicts := typeRun(c, clock, 8, time.Millisecond)
	assert.Equal(t, Completed, verdicts[7])
}

func TestClassifier_PasteIntoEmptiedFieldNeverCompletes(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock)

	typeRun(c, clock, 7, time.Millisecond)
	c.OnDelete(0)

	assert.Equal(t, Continue, c.OnInsert(8))
	assert.False(t, c.Plausible())
}

func TestClassifier_MultiCharacterInsertDisqualifies(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock)

	assert.Equal(t, Continue, c.OnInsert(1))
	assert.Equal(t, Continue, c.OnInsert(2))
	assert.Equal(t, Continue, c.OnInsert(5)) // paste of three characters
	assert.False(t, c.Plausible())

	assert.Equal(t, Continue, c.OnInsert(6))
	assert.Equal(t, Continue, c.OnInsert(7))
	assert.Equal(t, Continue, c.OnInsert(8))
}

func TestClassifier_PasteStraightToLengthNeverCompletes(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock)

	assert.Equal(t, Continue, c.OnInsert(8))
	assert.False(t, c.Plausible())
}

func TestClassifier_FirstCharacterRestoresPlausibility(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock, WithBarcodeLength(3))

	c.OnInsert(4)
	require.False(t, c.Plausible())

	assert.Equal(t, Continue, c.OnInsert(1))
	assert.True(t, c.Plausible())
	assert.Equal(t, Continue, c.OnInsert(2))
	assert.Equal(t, Completed, c.OnInsert(3))
}

func TestClassifier_SettersApplyToNextEvaluation(t *testing.T) {
	clock := newManualClock()
	c := newTestClassifier(t, clock)

	typeRun(c, clock, 3, time.Millisecond)
	require.NoError(t, c.SetExpectedLength(4))
	require.NoError(t, c.SetMaxElapsed(time.Second))

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, Completed, c.OnInsert(4))
}

func TestClassifier_SettersRejectInvalidValues(t *testing.T) {
	c, err := NewClassifier()
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetExpectedLength(0), common.ErrInvalidConfig)
	assert.ErrorIs(t, c.SetMaxElapsed(-time.Nanosecond), common.ErrInvalidConfig)
	assert.Equal(t, DefaultBarcodeLength, c.ExpectedLength())
	assert.Equal(t, DefaultInputDelay, c.MaxElapsed())
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "continue", Continue.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "unknown", Verdict(42).String())
}
