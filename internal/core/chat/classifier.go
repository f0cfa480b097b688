package chat

import "strings"

// Query categories covering the Italian legal knowledge domains
const (
	CategoryResidencePermit = "permesso_soggiorno"
	CategoryHealthcare      = "sanita"
	CategoryEmployment      = "lavoro"
	CategoryHousing         = "casa"
	CategoryEducation       = "educazione"
	CategoryGeneral         = "generale"
)

// categoryOrder fixes the tie-break order for classification, since
// keywords like "contratto" appear under more than one category.
var categoryOrder = []string{
	CategoryResidencePermit,
	CategoryHealthcare,
	CategoryEmployment,
	CategoryHousing,
	CategoryEducation,
}

var categoryKeywords = map[string][]string{
	CategoryResidencePermit: {"permesso", "soggiorno", "questura", "rinnovo", "scadenza"},
	CategoryHealthcare:      {"salute", "medico", "ospedale", "tessera sanitaria", "cure"},
	CategoryEmployment:      {"lavoro", "contratto", "centro impiego", "stipendio", "diritti"},
	CategoryHousing:         {"casa", "affitto", "contratto", "comune", "residenza"},
	CategoryEducation:       {"scuola", "università", "corso", "formazione", "studio"},
}

// ClassifyCategory classifies a message into a query category with a
// confidence score in [0, 1]. Confidence is the fraction of the
// category's keywords found in the message; "generale" with score 0
// means nothing matched.
func ClassifyCategory(message string) (string, float64) {
	messageLower := strings.ToLower(message)

	bestCategory := CategoryGeneral
	bestScore := 0.0

	for _, category := range categoryOrder {
		keywords := categoryKeywords[category]
		matched := 0
		for _, keyword := range keywords {
			if strings.Contains(messageLower, keyword) {
				matched++
			}
		}

		confidence := float64(matched) / float64(len(keywords))
		if confidence > bestScore {
			bestCategory = category
			bestScore = confidence
		}
	}

	return bestCategory, bestScore
}
