package menu

import (
	"testing"
	"time"
)

func ct(h, m int) *ClockTime {
	t := MustClockTime(h, m)
	return &t
}

func TestScheduleManualFlag(t *testing.T) {
	s := Schedule{Available: false, From: ct(9, 0), To: ct(17, 0)}
	for _, now := range []ClockTime{MustClockTime(0, 0), MustClockTime(12, 0), MustClockTime(23, 59)} {
		if s.IsAvailableAt(now) {
			t.Errorf("flag off must win at %s", now)
		}
	}
}

func TestScheduleNoWindow(t *testing.T) {
	s := Schedule{Available: true}
	for h := 0; h < 24; h++ {
		if !s.IsAvailableAt(MustClockTime(h, 30)) {
			t.Errorf("no-window item must be available at %02d:30", h)
		}
	}
}

func TestScheduleDaytimeWindow(t *testing.T) {
	s := Schedule{Available: true, From: ct(9, 0), To: ct(17, 0)}
	tests := []struct {
		now  ClockTime
		want bool
	}{
		{MustClockTime(12, 0), true},
		{MustClockTime(9, 0), true},  // inclusive lower bound
		{MustClockTime(17, 0), true}, // inclusive upper bound
		{MustClockTime(8, 59), false},
		{MustClockTime(17, 1), false},
		{MustClockTime(20, 0), false},
	}
	for _, tt := range tests {
		if got := s.IsAvailableAt(tt.now); got != tt.want {
			t.Errorf("09:00-17:00 at %s = %v, want %v", tt.now, got, tt.want)
		}
	}
}

// Overnight windows (from > to) span midnight. This pins the behavior so a
// refactor can never regress to treating the bounds as one-sided cutoffs,
// which would make 22:00-02:00 unsatisfiable at every time of day.
func TestScheduleOvernightWindow(t *testing.T) {
	s := Schedule{Available: true, From: ct(22, 0), To: ct(2, 0)}
	tests := []struct {
		now  ClockTime
		want bool
	}{
		{MustClockTime(23, 30), true},
		{MustClockTime(1, 0), true},
		{MustClockTime(22, 0), true},
		{MustClockTime(2, 0), true},
		{MustClockTime(12, 0), false},
		{MustClockTime(2, 1), false},
		{MustClockTime(21, 59), false},
	}
	for _, tt := range tests {
		if got := s.IsAvailableAt(tt.now); got != tt.want {
			t.Errorf("22:00-02:00 at %s = %v, want %v", tt.now, got, tt.want)
		}
	}
}

func TestScheduleOneSidedBounds(t *testing.T) {
	from := Schedule{Available: true, From: ct(18, 0)}
	if from.IsAvailableAt(MustClockTime(12, 0)) {
		t.Error("from-only window open before the bound")
	}
	if !from.IsAvailableAt(MustClockTime(19, 0)) {
		t.Error("from-only window closed after the bound")
	}

	to := Schedule{Available: true, To: ct(11, 0)}
	if !to.IsAvailableAt(MustClockTime(10, 0)) {
		t.Error("to-only window closed before the bound")
	}
	if to.IsAvailableAt(MustClockTime(11, 1)) {
		t.Error("to-only window open after the bound")
	}
}

func TestScheduleStatusAt(t *testing.T) {
	noon := MustClockTime(12, 0)
	tests := []struct {
		name string
		s    Schedule
		want Availability
	}{
		{"switched off", Schedule{Available: false}, StatusUnavailable},
		{"on, no window", Schedule{Available: true}, StatusAvailable},
		{"on, inside window", Schedule{Available: true, From: ct(9, 0), To: ct(17, 0)}, StatusAvailable},
		{"on, outside window", Schedule{Available: true, From: ct(18, 0), To: ct(22, 0)}, StatusTimeRestricted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.StatusAt(noon); got != tt.want {
				t.Errorf("StatusAt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"09:30", ClockTime{9, 30}, false},
		{"22:00:00", ClockTime{22, 0}, false},
		{"00:00", ClockTime{0, 0}, false},
		{"23:59", ClockTime{23, 59}, false},
		{"24:00", ClockTime{}, true},
		{"9am", ClockTime{}, true},
		{"", ClockTime{}, true},
	}
	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockTimeJSON(t *testing.T) {
	in := MustClockTime(7, 5)
	data, err := in.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"07:05"` {
		t.Errorf("marshal = %s, want \"07:05\"", data)
	}
	var out ClockTime
	if err := out.UnmarshalJSON(data); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestNowUsesInjectedClock(t *testing.T) {
	orig := nowFunc
	defer func() { nowFunc = orig }()
	nowFunc = func() time.Time {
		return time.Date(2024, 3, 1, 23, 30, 12, 0, time.Local)
	}
	if got := Now(); got != MustClockTime(23, 30) {
		t.Errorf("Now() = %v, want 23:30", got)
	}
}
