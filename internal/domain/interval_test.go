package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return parsed
}

func TestIntervalIsValid(t *testing.T) {
	start := mustTime(t, "2026-03-02T09:00:00Z")

	assert.True(t, NewInterval(start, start.Add(30*time.Minute)).IsValid())
	assert.False(t, NewInterval(start, start).IsValid())
	assert.False(t, NewInterval(start, start.Add(-time.Minute)).IsValid())
}

func TestIntervalOverlaps(t *testing.T) {
	base := NewInterval(mustTime(t, "2026-03-02T09:00:00Z"), mustTime(t, "2026-03-02T10:00:00Z"))

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{
			name:  "identical",
			other: base,
			want:  true,
		},
		{
			name:  "partial overlap from the left",
			other: NewInterval(mustTime(t, "2026-03-02T08:30:00Z"), mustTime(t, "2026-03-02T09:30:00Z")),
			want:  true,
		},
		{
			name:  "partial overlap from the right",
			other: NewInterval(mustTime(t, "2026-03-02T09:30:00Z"), mustTime(t, "2026-03-02T10:30:00Z")),
			want:  true,
		},
		{
			name:  "contained",
			other: NewInterval(mustTime(t, "2026-03-02T09:15:00Z"), mustTime(t, "2026-03-02T09:45:00Z")),
			want:  true,
		},
		{
			name:  "adjacent before is not an overlap",
			other: NewInterval(mustTime(t, "2026-03-02T08:00:00Z"), mustTime(t, "2026-03-02T09:00:00Z")),
			want:  false,
		},
		{
			name:  "adjacent after is not an overlap",
			other: NewInterval(mustTime(t, "2026-03-02T10:00:00Z"), mustTime(t, "2026-03-02T11:00:00Z")),
			want:  false,
		},
		{
			name:  "disjoint",
			other: NewInterval(mustTime(t, "2026-03-02T12:00:00Z"), mustTime(t, "2026-03-02T13:00:00Z")),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestIntervalContains(t *testing.T) {
	i := NewInterval(mustTime(t, "2026-03-02T09:00:00Z"), mustTime(t, "2026-03-02T10:00:00Z"))

	assert.True(t, i.Contains(i.Start), "start boundary is inside")
	assert.True(t, i.Contains(mustTime(t, "2026-03-02T09:59:59Z")))
	assert.False(t, i.Contains(i.End), "end boundary is outside")
	assert.False(t, i.Contains(mustTime(t, "2026-03-02T08:59:59Z")))
}

func TestIntervalDuration(t *testing.T) {
	i := NewInterval(mustTime(t, "2026-03-02T09:00:00Z"), mustTime(t, "2026-03-02T09:45:00Z"))
	assert.Equal(t, 45*time.Minute, i.Duration())
}
