package tournament

import (
	"testing"
	"time"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}
	for _, tc := range cases {
		if got := FormatTimeAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("FormatTimeAgo(-%s) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestFormatAddress(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0x1234567890abcdef1234", "0x1234...1234"},
		{"0xabc", "0xabc"},
		{"0123456789", "0123456789"},
		{"ñandú-ÿ-wallet-€€€€", "ñandú-...€€€€"},
		{"äöüäöüäöüä", "äöüäöüäöüä"},
	}
	for _, tt := range tests {
		if got := FormatAddress(tt.in); got != tt.want {
			t.Fatalf("FormatAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultUsername(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0xdeadbeef", "Player_beef"},
		{"ab", "Player_ab"},
		{"wallet-日本語です", "Player_本語です"},
		{"€€€€", "Player_€€€€"},
	}
	for _, tt := range tests {
		if got := DefaultUsername(tt.in); got != tt.want {
			t.Fatalf("DefaultUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
