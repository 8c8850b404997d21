package pipeline

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// minDetectRunes is the shortest text worth running detection on
const minDetectRunes = 40

// maxDetectRunes bounds the sample handed to the detector
const maxDetectRunes = 4000

// Detection is the outcome of a language check
type Detection struct {
	Code       string  // ISO 639-1, lowercase
	Name       string  // English name, e.g. "German"
	Confidence float64 // confidence that the text is German, 0..1
}

// LanguageDetector guesses the language of extracted text
type LanguageDetector interface {
	Detect(text string) (Detection, bool)
}

// LinguaDetector uses github.com/pemistahl/lingua-go restricted to the
// languages most likely to show up in German course material
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds the detector. Language models load lazily on
// first use.
func NewLinguaDetector() *LinguaDetector {
	languages := []lingua.Language{
		lingua.German,
		lingua.English,
		lingua.French,
		lingua.Spanish,
		lingua.Italian,
		lingua.Dutch,
		lingua.Polish,
		lingua.Russian,
		lingua.Turkish,
		lingua.Ukrainian,
	}
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// Detect reports the most likely language of text. It returns false when the
// text is too short to judge or the detector is undecided.
func (d *LinguaDetector) Detect(text string) (Detection, bool) {
	sample := sampleText(text)
	if utf8.RuneCountInString(sample) < minDetectRunes {
		return Detection{}, false
	}

	language, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return Detection{}, false
	}

	return Detection{
		Code:       strings.ToLower(language.IsoCode639_1().String()),
		Name:       language.String(),
		Confidence: d.detector.ComputeLanguageConfidence(sample, lingua.German),
	}, true
}

func sampleText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxDetectRunes {
		return text
	}
	return string([]rune(text)[:maxDetectRunes])
}
