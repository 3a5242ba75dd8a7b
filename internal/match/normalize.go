package match

import (
	"strconv"
	"strings"
)

// separatorReplacer maps the separator characters commonly found in release
// file names (dots, underscores, dashes, semicolons) to plain spaces.
var separatorReplacer = strings.NewReplacer(".", " ", "_", " ", "-", " ", ";", " ")

// NormalizeFileName converts an upstream file name into its comparable form:
// extension stripped, lowercased, separators replaced with spaces and
// whitespace collapsed. Already-normalized text is a fixed point.
func NormalizeFileName(fileName string) string {
	return normalize(stripExtension(fileName))
}

// NormalizeTitle converts a catalog display title into its comparable form.
// If year is non-zero, the first occurrence of its decimal string is removed,
// so titles that carry the release year still line up with file names that
// don't (and vice versa).
func NormalizeTitle(title string, year int) string {
	normalized := normalize(title)
	if year > 0 {
		normalized = normalize(strings.Replace(normalized, strconv.Itoa(year), "", 1))
	}
	return normalized
}

func normalize(s string) string {
	s = separatorReplacer.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

// stripExtension removes a conventional trailing extension: the substring
// from the last dot to the end, but only when that suffix is non-empty and
// contains no further separator characters. File names without an extension
// pass through untouched.
func stripExtension(fileName string) string {
	idx := strings.LastIndexByte(fileName, '.')
	if idx < 0 {
		return fileName
	}
	suffix := fileName[idx+1:]
	if suffix == "" || strings.ContainsAny(suffix, "._-;") {
		return fileName
	}
	return fileName[:idx]
}
