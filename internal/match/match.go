package match

import (
	"sort"
	"strings"
)

// Candidate is one file advertised by the external file-index server.
// The matcher never mutates it; Link is opaque and passed through untouched.
type Candidate struct {
	FileName string
	Size     int64
	Duration int
	Link     string
}

// Tier classifies how strongly a candidate matched the requested title.
// Lower values outrank higher ones.
type Tier int

const (
	// TierExact means the normalized file name equals the normalized title.
	TierExact Tier = iota + 1
	// TierContains means one normalized string contains the other.
	TierContains
	// TierWords means enough of the title's words appear in the file name.
	TierWords
)

// Match pairs a surviving candidate with the tier it matched on. Score is the
// fraction of title words found in the file name; exact and containment
// matches carry 1.0.
type Match struct {
	Candidate
	Tier  Tier
	Score float64
}

// wordMatchThreshold is the minimum fraction of title words (words longer
// than two characters) that must appear verbatim in the file name for a
// word-overlap match.
const wordMatchThreshold = 0.7

type query struct {
	title string
	words []string
}

// strategies is the ordered list of match checks applied to each candidate.
// The first strategy that accepts wins; a candidate rejected by all of them
// is excluded from the output entirely.
var strategies = []struct {
	tier  Tier
	check func(q query, fileName string) (float64, bool)
}{
	{TierExact, matchExact},
	{TierContains, matchContains},
	{TierWords, matchWords},
}

// FindMatches scans candidates in the order supplied and returns those that
// plausibly correspond to the given title and release year, ordered by tier
// and then by their position in the input. An empty result means no match.
//
// A title that normalizes to an empty string (only a year, or only
// separators) matches nothing: the empty string is a substring of every file
// name, so treating it as matchable would return the whole catalog.
func FindMatches(title string, year int, candidates []Candidate) []Match {
	normalizedTitle := NormalizeTitle(title, year)
	if normalizedTitle == "" {
		return nil
	}

	q := query{
		title: normalizedTitle,
		words: longWords(normalizedTitle),
	}

	var matches []Match
	for _, candidate := range candidates {
		fileName := NormalizeFileName(candidate.FileName)
		for _, s := range strategies {
			score, ok := s.check(q, fileName)
			if !ok {
				continue
			}
			matches = append(matches, Match{
				Candidate: candidate,
				Tier:      s.tier,
				Score:     score,
			})
			break
		}
	}

	// Stable: candidates on the same tier keep their scan order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Tier < matches[j].Tier
	})

	return matches
}

func matchExact(q query, fileName string) (float64, bool) {
	if fileName == q.title {
		return 1, true
	}
	return 0, false
}

func matchContains(q query, fileName string) (float64, bool) {
	if strings.Contains(fileName, q.title) || strings.Contains(q.title, fileName) {
		return 1, true
	}
	return 0, false
}

func matchWords(q query, fileName string) (float64, bool) {
	if len(q.words) == 0 {
		return 0, false
	}

	fileWords := make(map[string]struct{})
	for _, w := range longWords(fileName) {
		fileWords[w] = struct{}{}
	}

	matched := 0
	for _, w := range q.words {
		if _, ok := fileWords[w]; ok {
			matched++
		}
	}

	score := float64(matched) / float64(len(q.words))
	if score < wordMatchThreshold {
		return 0, false
	}
	return score, true
}

// longWords splits normalized text into words, keeping only those longer
// than two characters. Short words ("the", "of", "a") carry no signal for
// overlap scoring.
func longWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(s) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}
