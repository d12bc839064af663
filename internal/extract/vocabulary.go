package extract

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

// Vocabulary holds the word lists the voice splitter is built from. The
// lists are configuration data: a Splitter never mutates them.
type Vocabulary struct {
	// StopPhrases are filler phrases removed whole-word from dictated text.
	StopPhrases []string `yaml:"stop_phrases"`
	// UnitStems are unit-of-measure word stems matched with any inflected
	// suffix (таб covers таблетка, таблетки, таблеток).
	UnitStems []string `yaml:"unit_stems"`
	// UnitWords are short unit words matched exactly.
	UnitWords []string `yaml:"unit_words"`
	// EdgeFillers are single words stripped from fragment edges.
	EdgeFillers []string `yaml:"edge_fillers"`
}

// DefaultVocabulary returns the built-in Russian vocabulary.
func DefaultVocabulary() Vocabulary {
	var v Vocabulary
	if err := yaml.Unmarshal(vocabularyYAML, &v); err != nil {
		panic(fmt.Sprintf("extract: bad embedded vocabulary: %v", err))
	}
	return v
}
