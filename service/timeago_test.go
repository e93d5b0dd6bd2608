package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "just now"},
		{"ninety seconds", 90 * time.Second, "1 min"},
		{"minutes", 45 * time.Minute, "45 min"},
		{"one hour", time.Hour, "1 hr"},
		{"hours", 5 * time.Hour, "5 hrs"},
		{"one day", 25 * time.Hour, "1 day"},
		{"days", 3 * 24 * time.Hour, "3 days"},
		{"one week", 8 * 24 * time.Hour, "1 wk"},
		{"weeks", 20 * 24 * time.Hour, "2 wks"},
		{"one month", 40 * 24 * time.Hour, "1 mo"},
		{"months", 100 * 24 * time.Hour, "3 mos"},
		{"one year", 400 * 24 * time.Hour, "1 yr"},
		{"years", 800 * 24 * time.Hour, "2 yrs"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeAgo(now.Add(-tc.ago), now))
		})
	}
}

func TestTimeAgoZeroAndFuture(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", TimeAgo(time.Time{}, now))
	assert.Equal(t, "just now", TimeAgo(now.Add(time.Hour), now))
}
