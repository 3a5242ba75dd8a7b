package match

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	qualityRegex = regexp.MustCompile(`(?i)(\d{3,4}p|4K|2K|SD|HD)`)
	codecRegex   = regexp.MustCompile(`(?i)(HEVC|x265|x264|H\.264|H\.265|AV1|VP9)`)
)

// ExtractQuality returns the first resolution or quality tier token found in
// a raw file name, uppercased. "Unknown" when the file name carries none.
func ExtractQuality(fileName string) string {
	if m := qualityRegex.FindString(fileName); m != "" {
		return strings.ToUpper(m)
	}
	return "Unknown"
}

// ExtractCodec returns the first video codec token found in a raw file name,
// uppercased. Unlike quality, a missing codec yields an empty string: codec
// absence means "not applicable", not "unspecified".
func ExtractCodec(fileName string) string {
	return strings.ToUpper(codecRegex.FindString(fileName))
}

// FormatFileSize renders a byte count for display using binary magnitudes:
// gibibytes with two decimals, otherwise whole mebibytes, otherwise whole
// kibibytes. Zero formats as "0 B".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	if gb := float64(bytes) / (1 << 30); gb >= 1 {
		return fmt.Sprintf("%.2f GB", gb)
	}
	if mb := float64(bytes) / (1 << 20); mb >= 1 {
		return fmt.Sprintf("%.0f MB", mb)
	}
	return fmt.Sprintf("%.0f KB", float64(bytes)/(1<<10))
}
