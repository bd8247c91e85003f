package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TranslationRequest is the English phrase extracted from a translation request.
type TranslationRequest struct {
	Phrase string
}

// Each rule captures the phrase to translate in group 1.
var translationRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)translate\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?i)translate\s+(.+?)\s+(?:into|to)\s+german`),
	regexp.MustCompile(`(?i)how\s+do\s+you\s+say\s+['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?i)what\s+is\s+['"]([^'"]+)['"].+german`),
}

// TranslatorExamples lists phrasings the translator understands.
var TranslatorExamples = []string{
	`Translate "Good Morning" into German`,
	`Translate "Thank you"`,
	`How do you say "Hello" in German?`,
}

// UnknownWordsError reports the words a word-by-word translation could not resolve.
type UnknownWordsError struct {
	Words   []string
	Partial string
}

func (e *UnknownWordsError) Error() string {
	return fmt.Sprintf("Unknown words: %s (partial translation: %s)", strings.Join(e.Words, ", "), e.Partial)
}

func (e *UnknownWordsError) Unwrap() error { return ErrUnknownVocabulary }

// Translator translates English to German using a closed dictionary.
type Translator struct {
	dict map[string]string
}

// NewTranslator builds a translator over DefaultDictionary extended by extra.
func NewTranslator(extra map[string]string) *Translator {
	dict := make(map[string]string, len(DefaultDictionary)+len(extra))
	for en, de := range DefaultDictionary {
		dict[en] = de
	}
	for en, de := range extra {
		en = strings.ToLower(strings.TrimSpace(en))
		de = strings.ToLower(strings.TrimSpace(de))
		if en == "" || de == "" {
			continue
		}
		dict[en] = de
	}
	return &Translator{dict: dict}
}

func (t *Translator) Name() string { return "translator" }

func (t *Translator) Description() string {
	return `Translates short English phrases into German, e.g. 'Translate "Good Morning" into German'.`
}

// Parse extracts the phrase of the first matching translation rule.
func (t *Translator) Parse(text string) (TranslationRequest, bool) {
	trimmed := strings.TrimSpace(text)
	for _, rule := range translationRules {
		m := rule.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		if phrase := strings.TrimSpace(m[1]); phrase != "" {
			return TranslationRequest{Phrase: phrase}, true
		}
	}
	return TranslationRequest{}, false
}

func (t *Translator) Detect(text string) bool {
	_, ok := t.Parse(text)
	return ok
}

func (t *Translator) Execute(_ context.Context, text string) (Output, error) {
	req, ok := t.Parse(text)
	if !ok {
		return Output{}, t.parseError()
	}
	return t.Translate(req.Phrase)
}

func (t *Translator) parseError() *ParseError {
	return &ParseError{
		Tool:     t.Name(),
		Message:  `Could not find text to translate. Please use format: 'Translate "text" into German'.`,
		Examples: TranslatorExamples,
	}
}

// Translate looks the phrase up as a whole, then word by word.
func (t *Translator) Translate(phrase string) (Output, error) {
	english := strings.TrimSpace(phrase)
	if english == "" {
		return Output{}, t.parseError()
	}
	key := strings.ToLower(english)

	if german, ok := t.dict[key]; ok {
		return t.output(english, german), nil
	}

	words := strings.Fields(key)
	translated := make([]string, 0, len(words))
	var unknown []string
	for _, word := range words {
		if german, ok := t.dict[stripPunctuation(word)]; ok {
			translated = append(translated, german)
			continue
		}
		translated = append(translated, "["+word+"]")
		unknown = append(unknown, word)
	}
	if len(unknown) > 0 {
		return Output{}, &UnknownWordsError{Words: unknown, Partial: strings.Join(translated, " ")}
	}
	return t.output(english, strings.Join(translated, " ")), nil
}

// Words returns the dictionary size.
func (t *Translator) Words() int { return len(t.dict) }

func (t *Translator) output(english, german string) Output {
	title := cases.Title(language.German).String(german)
	return Output{
		Display: fmt.Sprintf(`"%s" → "%s"`, english, title),
		Value:   german,
	}
}

func stripPunctuation(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, word)
}

var _ Tool = (*Translator)(nil)
