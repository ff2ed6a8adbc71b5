package catalog

import "strings"

// riskVocabulary maps the mixed-language risk values found in source data
// to the canonical triad. The catalog data was originally maintained in
// both Russian and English, so both vocabularies are accepted.
var riskVocabulary = map[string]Risk{
	"низкий":  RiskLow,
	"средний": RiskMedium,
	"высокий": RiskHigh,
	"low":     RiskLow,
	"medium":  RiskMedium,
	"high":    RiskHigh,
}

// NormalizeRisk maps a raw risk value to one of low, medium, high.
// Unrecognized values fall back to low. The mapping is total and
// idempotent: canonical values map to themselves.
func NormalizeRisk(raw string) Risk {
	if r, ok := riskVocabulary[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return r
	}
	return RiskLow
}
