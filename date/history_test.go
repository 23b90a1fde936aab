package date

import "testing"

func TestHistory(t *testing.T) {
	var h History[string]
	if day, v := h.Latest(); !day.IsZero() || v != "" || h.Len() != 0 {
		t.Errorf("empty History.Latest() = %v, %q, want zero values", day, v)
	}

	jul25, jul24 := New(2025, 7, 1), New(2024, 7, 1)
	h.Set(jul25, "25 Jul 1")
	h.Set(jul24, "24 Jul 1") // out of order

	if h.Len() != 2 {
		t.Errorf("History.Len() = %v, want 2", h.Len())
	}
	if h.points[0].day != jul24 || h.points[1].day != jul25 {
		t.Errorf("History days = %v, %v, want chronological order", h.points[0].day, h.points[1].day)
	}
	if day, v := h.Latest(); day != jul25 || v != "25 Jul 1" {
		t.Errorf("Latest() = %v, %q, want %v, %q", day, v, jul25, "25 Jul 1")
	}

	// same day replaces
	h.Set(jul25, "replaced")
	if h.Len() != 2 {
		t.Errorf("History.Len() = %v after replacing, want 2", h.Len())
	}
	if day, v := h.Latest(); day != jul25 || v != "replaced" {
		t.Errorf("Latest() = %v, %q, want %v, %q", day, v, jul25, "replaced")
	}
}
