package genetics

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeYears(t *testing.T) {
	cases := []struct {
		name  string
		birth time.Time
		now   time.Time
		want  int
	}{
		{
			name:  "day_before_birthday",
			birth: date(2000, time.June, 15),
			now:   date(2024, time.June, 14),
			want:  23,
		},
		{
			name:  "on_birthday",
			birth: date(2000, time.June, 15),
			now:   date(2024, time.June, 15),
			want:  24,
		},
		{
			name:  "day_after_birthday",
			birth: date(2000, time.June, 15),
			now:   date(2024, time.June, 16),
			want:  24,
		},
		{
			name:  "earlier_month",
			birth: date(1990, time.December, 1),
			now:   date(2024, time.January, 31),
			want:  33,
		},
		{
			name:  "leap_day_birth_on_feb_28",
			birth: date(2000, time.February, 29),
			now:   date(2023, time.February, 28),
			want:  22,
		},
		{
			name:  "leap_day_birth_on_mar_1",
			birth: date(2000, time.February, 29),
			now:   date(2023, time.March, 1),
			want:  23,
		},
		{
			name:  "leap_day_birth_on_leap_day",
			birth: date(2000, time.February, 29),
			now:   date(2024, time.February, 29),
			want:  24,
		},
		{
			name:  "birth_in_future_clamps_to_zero",
			birth: date(2030, time.January, 1),
			now:   date(2024, time.June, 15),
			want:  0,
		},
		{
			name:  "newborn",
			birth: date(2024, time.June, 1),
			now:   date(2024, time.June, 15),
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AgeYears(tc.birth, tc.now); got != tc.want {
				t.Fatalf("AgeYears(%s, %s)=%d, want %d",
					tc.birth.Format("2006-01-02"), tc.now.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}
