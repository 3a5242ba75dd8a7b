package match

import "testing"

func TestExtractQuality(t *testing.T) {
	tests := []struct {
		fileName string
		expected string
	}{
		{"Movie.Name.2160p.HEVC.mkv", "2160P"},
		{"Movie.Name.1080p.x264.mkv", "1080P"},
		{"Movie.Name.720P.mkv", "720P"},
		{"Movie.Name.4k.mkv", "4K"},
		{"Movie.Name.sd.mkv", "SD"},
		{"Movie.Name.mkv", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		got := ExtractQuality(tt.fileName)
		if got != tt.expected {
			t.Errorf("ExtractQuality(%q) = %q, want %q", tt.fileName, got, tt.expected)
		}
	}
}

func TestExtractCodec(t *testing.T) {
	tests := []struct {
		fileName string
		expected string
	}{
		{"Movie.Name.2160p.HEVC.mkv", "HEVC"},
		{"Movie.Name.1080p.x265.mkv", "X265"},
		{"Movie.Name.1080p.x264.mkv", "X264"},
		{"Movie.Name.H.264.mp4", "H.264"},
		{"Movie.Name.av1.webm", "AV1"},
		{"Movie.Name.vp9.webm", "VP9"},
		{"Movie.Name.mkv", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := ExtractCodec(tt.fileName)
		if got != tt.expected {
			t.Errorf("ExtractCodec(%q) = %q, want %q", tt.fileName, got, tt.expected)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{1023, "1 KB"},
		{100, "0 KB"},
		{1024, "1 KB"},
		{1024 * 1024, "1 MB"},
		{536870912, "512 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1320702443, "1.23 GB"},
	}

	for _, tt := range tests {
		got := FormatFileSize(tt.bytes)
		if got != tt.expected {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.bytes, got, tt.expected)
		}
	}
}
