package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func statusSequence(completed ...bool) []DayStatus {
	today := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	days := make([]DayStatus, 0, len(completed))
	for i, c := range completed {
		days = append(days, DayStatus{Date: today.AddDate(0, 0, -i), Completed: c})
	}
	return days
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name string
		days []DayStatus
		want int
	}{
		{
			name: "incomplete today is skipped without breaking the streak",
			days: statusSequence(false, true, true, false, true),
			want: 2,
		},
		{
			name: "all complete",
			days: statusSequence(true, true, true),
			want: 3,
		},
		{
			name: "single incomplete day",
			days: statusSequence(false),
			want: 0,
		},
		{
			name: "incomplete yesterday ends the streak",
			days: statusSequence(true, false, true, true),
			want: 1,
		},
		{
			name: "incomplete today and yesterday",
			days: statusSequence(false, false, true, true),
			want: 0,
		},
		{
			name: "empty sequence",
			days: nil,
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.days))
		})
	}
}
