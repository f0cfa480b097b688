package chat

// SupportedLanguages maps language codes to display names
var SupportedLanguages = map[string]string{
	"it":  "Italian",
	"fr":  "French",
	"en":  "English",
	"wo":  "Wolof",
	"bm":  "Bambara",
	"ha":  "Hausa",
	"sw":  "Swahili",
	"ti":  "Tigrinya",
	"am":  "Amharic",
	"snk": "Soninke",
	"ff":  "Fulfulde",
	"ln":  "Lingala",
}

var systemPrompts = map[string]string{
	"it": `Sei JOKKO AI, un assistente multilingue che aiuta migranti e rifugiati in Italia.
Rispondi in italiano.
Fornisci informazioni utili e accurate su:
- Procedure di immigrazione
- Accesso alla sanità
- Diritti sul lavoro
- Assistenza abitativa
- Opportunità di istruzione

Sii empatico, culturalmente sensibile e dai consigli pratici.`,
	"en": `You are JOKKO AI, a multilingual assistant helping migrants and refugees in Italy.
Respond in English.
Provide helpful, accurate information about:
- Immigration procedures
- Healthcare access
- Employment rights
- Housing assistance
- Education opportunities

Be empathetic, culturally sensitive, and provide practical advice.`,
	"fr": `Tu es JOKKO AI, un assistant multilingue qui aide les migrants et réfugiés en Italie.
Réponds en français.
Fournis des informations utiles et précises sur:
- Les procédures d'immigration
- L'accès aux soins de santé
- Les droits du travail
- L'aide au logement
- Les opportunités d'éducation

Sois empathique, culturellement sensible et donne des conseils pratiques.`,
}

// SystemPrompt returns the assistant prompt for the given language,
// falling back to Italian for languages without a dedicated prompt.
func SystemPrompt(language string) string {
	if prompt, ok := systemPrompts[language]; ok {
		return prompt
	}
	return systemPrompts["it"]
}

// apologyMessages are localized error replies used when generation fails
var apologyMessages = map[string]string{
	"it": "Mi dispiace, non riesco a rispondere in questo momento. Riprova più tardi.",
	"en": "I'm sorry, I can't respond right now. Please try again later.",
	"fr": "Je suis désolé, je ne peux pas répondre pour le moment. Veuillez réessayer plus tard.",
}

// ApologyMessage returns the localized fallback reply for a language
func ApologyMessage(language string) string {
	if msg, ok := apologyMessages[language]; ok {
		return msg
	}
	return apologyMessages["it"]
}
