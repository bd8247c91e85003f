package agent

import (
	"regexp"
	"strings"
)

// mathQuestionPatterns flag anything that looks like arithmetic, supported or not.
var mathQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\s*[\+\-\*\/\%]\s*\d+`),
	regexp.MustCompile(`what\s+is\s+\d+.*[\+\-\*\/\%]`),
	regexp.MustCompile(`calculate\s+\d+`),
	regexp.MustCompile(`\d+\s+plus\s+\d+`),
	regexp.MustCompile(`\d+\s+minus\s+\d+`),
	regexp.MustCompile(`\d+\s+times\s+\d+`),
	regexp.MustCompile(`\d+\s+divided\s+by\s+\d+`),
	regexp.MustCompile(`add\s+\d+.*\d+`),
	regexp.MustCompile(`subtract\s+\d+.*\d+`),
	regexp.MustCompile(`multiply\s+\d+.*\d+`),
	regexp.MustCompile(`percentage\s+of\s+\d+`),
	regexp.MustCompile(`\d+%\s+of\s+\d+`),
}

// IsMathQuestion reports whether input asks for any calculation.
func IsMathQuestion(input string) bool {
	return matchAny(mathQuestionPatterns, strings.ToLower(input))
}

var (
	whatIsPrefix = regexp.MustCompile(`what\s+is\s+`)
	// mathOnly matches the remainder of "what is ..." when it is nothing but an expression.
	mathOnly = regexp.MustCompile(`^[\d\s+\-*/]+$`)

	nonMathIndicators = []*regexp.Regexp{
		regexp.MustCompile(`how\s+(?:do|to)`),
		regexp.MustCompile(`tell\s+me`),
		regexp.MustCompile(`explain`),
		regexp.MustCompile(`capital\s+of`),
		regexp.MustCompile(`who\s+is`),
		regexp.MustCompile(`where\s+is`),
		regexp.MustCompile(`when\s+(?:did|was)`),
		regexp.MustCompile(`why\s+(?:is|do)`),
		regexp.MustCompile(`help\s+me`),
		regexp.MustCompile(`can\s+you`),
	}

	connectingWords = []*regexp.Regexp{
		regexp.MustCompile(`\s+and\s+(?:also\s+)?(?:tell|explain|what|how|who|where|when|why)`),
		regexp.MustCompile(`\s+also\s+`),
		regexp.MustCompile(`\s+plus\s+(?:tell|explain|what|how|who|where|when|why)`),
		regexp.MustCompile(`\s+then\s+`),
		regexp.MustCompile(`,\s*(?:and\s+)?(?:tell|explain|what|how|who|where|when|why)`),
	}
)

// DetectMultipleTasks reports whether input mixes a calculation with another
// request, or chains requests with connecting words. isMath decides what counts
// as a supported calculation.
func DetectMultipleTasks(input string, isMath func(string) bool) bool {
	lower := strings.ToLower(input)

	hasMath := isMath != nil && isMath(input)
	hasNonMath := hasNonMathQuestion(lower)
	hasConnecting := matchAny(connectingWords, lower)

	return (hasMath && hasNonMath) || (hasConnecting && (hasMath || hasNonMath))
}

func hasNonMathQuestion(lower string) bool {
	for _, loc := range whatIsPrefix.FindAllStringIndex(lower, -1) {
		rest := strings.TrimRight(lower[loc[1]:], "?!. ")
		if !mathOnly.MatchString(rest) {
			return true
		}
	}
	return matchAny(nonMathIndicators, lower)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
