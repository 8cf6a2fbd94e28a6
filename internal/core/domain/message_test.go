package domain

import "testing"

func TestDetectMessageType(t *testing.T) {
	cases := []struct {
		url  string
		want MessageType
	}{
		{"", MessageText},
		{"https://cdn.example.com/a/photo.JPG", MessageImage},
		{"https://cdn.example.com/a/voice.ogg?token=abc", MessageAudio},
		{"https://cdn.example.com/a/clip.mov#t=10", MessageVideo},
		{"https://cdn.example.com/a/report.xlsx", MessageDocument},
		{"https://cdn.example.com/a/archive.zip", MessageText},
		{"https://cdn.example.com/a/noext", MessageText},
	}
	for _, tc := range cases {
		if got := DetectMessageType(tc.url); got != tc.want {
			t.Errorf("DetectMessageType(%q) = %s, want %s", tc.url, got, tc.want)
		}
	}
}

func TestMessageStatus_Settable(t *testing.T) {
	for _, s := range []MessageStatus{StatusSent, StatusDelivered, StatusRead, StatusFailed} {
		if !s.Settable() {
			t.Errorf("expected %s to be settable", s)
		}
	}
	for _, s := range []MessageStatus{StatusReceived, "pending", ""} {
		if s.Settable() {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}
