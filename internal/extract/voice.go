package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Splitter turns dictated or informally typed order text into a clean list
// of product fragments. It is a pure function of (text, vocabulary): all
// patterns are compiled once at construction.
//
// Word boundaries around Cyrillic words cannot use \b, which is ASCII-only
// in RE2, so phrase patterns anchor on explicit non-letter neighbors and the
// matched neighbor characters are put back by the replacement.
type Splitter struct {
	stopPhrases []*regexp.Regexp
	protect     *regexp.Regexp
	boundary    *regexp.Regexp
	comma       *regexp.Regexp
	separators  *regexp.Regexp
	edgeLead    []*regexp.Regexp
	edgeTrail   []*regexp.Regexp
	collapse    *regexp.Regexp
}

// NewSplitter compiles a Splitter over the given vocabulary.
func NewSplitter(vocab Vocabulary) *Splitter {
	// Longer phrases first, so "номер телефона" is removed before "номер"
	// can eat part of it.
	phrases := make([]string, len(vocab.StopPhrases))
	copy(phrases, vocab.StopPhrases)
	sort.SliceStable(phrases, func(i, j int) bool {
		return len([]rune(phrases[i])) > len([]rune(phrases[j]))
	})

	s := &Splitter{
		comma:    regexp.MustCompile(`(\D|^),(\D|$)`),
		collapse: regexp.MustCompile(`\s+`),
	}

	for _, phrase := range phrases {
		s.stopPhrases = append(s.stopPhrases, regexp.MustCompile(
			`(?i)(^|[^\p{L}\p{N}_])`+regexp.QuoteMeta(phrase)+`($|[^\p{L}\p{N}_])`))
	}

	units := make([]string, 0, len(vocab.UnitStems)+len(vocab.UnitWords))
	for _, stem := range vocab.UnitStems {
		units = append(units, regexp.QuoteMeta(stem)+`\pL+`)
	}
	for _, word := range vocab.UnitWords {
		units = append(units, regexp.QuoteMeta(word))
	}
	s.protect = regexp.MustCompile(`(?i)(\d+)\s+(` + strings.Join(units, "|") + `)`)

	// A quantity (possibly unit-protected) directly followed by a word of
	// three or more letters is a run-together item boundary.
	s.boundary = regexp.MustCompile(`(?i)(\d+(?:_\pL+)?)\s+([а-яёa-z]{3,})`)

	// Alternation order matters: " а также " must win over " а ".
	s.separators = regexp.MustCompile(`(?i)\s+и\s+|\s+еще\s+|\s+а\s+также\s+|\s+а\s+|\|`)

	for _, word := range vocab.EdgeFillers {
		w := regexp.QuoteMeta(word)
		s.edgeLead = append(s.edgeLead, regexp.MustCompile(`(?i)^`+w+`($|[^\p{L}\p{N}_])`))
		s.edgeTrail = append(s.edgeTrail, regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}_])`+w+`$`))
	}

	return s
}

// SplitProducts cleans dictated text and splits it into bulleted product
// fragments. The phone number, stop phrases and filler words are removed;
// quantity+unit pairs survive splitting intact. An empty result means no
// product name could be recovered, which the caller treats as a re-entry
// prompt, not an error here.
func (s *Splitter) SplitProducts(text string) []string {
	// Excise the phone number, leaving a gap.
	if start, end, ok := phoneSpan(text); ok {
		text = text[:start] + " " + text[end:]
	}

	for _, re := range s.stopPhrases {
		text = replaceStable(re, text, "$1$2")
	}

	// Protect "2 пачки" as "2_пачки" so the split below cannot separate a
	// quantity from its unit.
	text = s.protect.ReplaceAllString(text, "${1}_${2}")
	text = s.boundary.ReplaceAllString(text, "$1 | $2")
	text = replaceStable(s.comma, text, "$1 | $2")

	var items []string
	for _, frag := range s.separators.Split(text, -1) {
		frag = strings.ReplaceAll(frag, "_", " ")
		frag = s.collapse.ReplaceAllString(frag, " ")
		frag = strings.Trim(frag, " ,.:;-+|")
		frag = s.trimEdgeFillers(frag)

		if len([]rune(frag)) > 1 {
			items = append(items, "• "+frag)
		}
	}

	return items
}

func (s *Splitter) trimEdgeFillers(frag string) string {
	for i := range s.edgeLead {
		frag = strings.TrimSpace(s.edgeLead[i].ReplaceAllString(frag, "$1"))
		frag = strings.TrimSpace(s.edgeTrail[i].ReplaceAllString(frag, "$1"))
	}
	return frag
}

// replaceStable reapplies a replacement until the text stops changing.
// Boundary-anchored patterns consume their neighbor characters, so a single
// pass can miss back-to-back occurrences.
func replaceStable(re *regexp.Regexp, text, repl string) string {
	for {
		next := re.ReplaceAllString(text, repl)
		if next == text {
			return next
		}
		text = next
	}
}
