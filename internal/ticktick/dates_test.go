package ticktick

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeDueDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain date expands to midnight UTC",
			input: "2026-09-01",
			want:  "2026-09-01T00:00:00+0000",
		},
		{
			name:  "full timestamp passes through",
			input: "2026-09-01T14:30:00+0000",
			want:  "2026-09-01T14:30:00+0000",
		},
		{
			name:  "empty string passes through",
			input: "",
			want:  "",
		},
		{
			name:  "short garbage passes through",
			input: "tomorrow",
			want:  "tomorrow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDueDate(tt.input); got != tt.want {
				t.Errorf("NormalizeDueDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "api format with milliseconds",
			input: "2026-08-27T09:00:00.000+0000",
			want:  time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "api format without milliseconds",
			input: "2026-08-27T09:00:00+0000",
			want:  time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with colon offset",
			input: "2026-08-27T09:00:00+02:00",
			want:  time.Date(2026, 8, 27, 9, 0, 0, 0, time.FixedZone("", 2*3600)),
		},
		{
			name:    "plain date is not a timestamp",
			input:   "2026-08-27",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDueDate(%q) expected error, got %v", tt.input, got)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("ParseDueDate(%q) error = %v, want *ParseError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDueDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDueDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLocalDate(t *testing.T) {
	now := time.Date(2026, 8, 27, 23, 59, 0, 0, time.FixedZone("CEST", 2*3600))
	if got := localDate(now); got != "2026-08-27" {
		t.Errorf("localDate() = %q, want %q", got, "2026-08-27")
	}
}
