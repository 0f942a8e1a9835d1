package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{name: "valid", in: "2025-03-10", want: NewDate(2025, time.March, 10)},
		{name: "leap day", in: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "invalid leap day", in: "2023-02-29", wantErr: true},
		{name: "month out of range", in: "2025-13-01", wantErr: true},
		{name: "day out of range", in: "2025-01-32", wantErr: true},
		{name: "wrong layout", in: "10/03/2025", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDate_String(t *testing.T) {
	// single-digit components are zero-padded
	if got := NewDate(2025, time.March, 5).String(); got != "2025-03-05" {
		t.Errorf("String() = %q, want %q", got, "2025-03-05")
	}
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due Date `json:"due"`
	}

	w := wrapper{Due: NewDate(2025, time.June, 15)}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("json.Marshal() failed, %v", err)
	}
	if string(data) != `{"due":"2025-06-15"}` {
		t.Errorf("marshaled = %s", data)
	}

	var back wrapper
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() failed, %v", err)
	}
	if back.Due != w.Due {
		t.Errorf("round trip = %v, want %v", back.Due, w.Due)
	}

	var bad wrapper
	if err := json.Unmarshal([]byte(`{"due":"garbage"}`), &bad); err == nil {
		t.Error("expected an error for a malformed date")
	}

	// the zero date round-trips through an empty string
	data, err = json.Marshal(wrapper{})
	if err != nil {
		t.Fatalf("json.Marshal() failed, %v", err)
	}
	if string(data) != `{"due":""}` {
		t.Errorf("zero date marshaled = %s", data)
	}
	var zero wrapper
	if err := json.Unmarshal(data, &zero); err != nil {
		t.Fatalf("json.Unmarshal() failed, %v", err)
	}
	if !zero.Due.IsZero() {
		t.Errorf("zero date round trip = %v", zero.Due)
	}
}

func TestDate_ordering(t *testing.T) {
	early := NewDate(2025, time.March, 10)
	late := NewDate(2025, time.March, 11)
	nextMonth := NewDate(2025, time.April, 1)
	nextYear := NewDate(2026, time.January, 1)

	if !early.Before(late) || late.Before(early) {
		t.Error("Before() broken within a month")
	}
	if !late.Before(nextMonth) {
		t.Error("Before() broken across months")
	}
	if !nextMonth.Before(nextYear) {
		t.Error("Before() broken across years")
	}
	if !nextYear.After(early) {
		t.Error("After() broken")
	}
	if early.After(early) || early.Before(early) {
		t.Error("a date must not be ordered against itself")
	}
}
