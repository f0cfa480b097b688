package translate

import "strings"

// supportedCodes are the language codes the translation layer accepts
var supportedCodes = map[string]bool{
	"it": true, "fr": true, "en": true, "wo": true,
	"bm": true, "ha": true, "sw": true, "ti": true,
	"am": true, "snk": true, "ff": true, "ln": true,
}

// IsSupported reports whether the language code is known
func IsSupported(code string) bool {
	return supportedCodes[code]
}

// detectionPatterns maps language codes to common function words used
// for lightweight pattern-based detection. Only languages with reliable
// short markers are listed; the rest fall through to the default.
var detectionPatterns = map[string][]string{
	"it": {"che", "per", "con", "del", "una", "sono", "dove", "come"},
	"fr": {"que", "pour", "avec", "des", "une", "suis", "où", "comment"},
	"en": {"that", "for", "with", "the", "and", "are", "where", "how"},
	"wo": {"ku", "ak", "ci", "la", "nga", "am", "fan", "naka"},
	"ha": {"da", "mai", "na", "ta", "ka", "ba", "ina", "yaya"},
	"sw": {"na", "wa", "ya", "za", "la", "ni", "wapi", "jinsi"},
}

// DetectLanguage guesses the language of text by scoring common words.
// Italian is the default when no pattern matches.
func DetectLanguage(text string) string {
	textLower := strings.ToLower(text)

	best := ""
	bestScore := 0
	for lang, words := range detectionPatterns {
		score := 0
		for _, word := range words {
			if strings.Contains(textLower, word) {
				score++
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && lang < best) {
			best = lang
			bestScore = score
		}
	}

	if bestScore > 0 {
		return best
	}
	return "it"
}
