package catalog

// Urgency indicates how quickly an error should be dealt with.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Risk is the normalized risk level of applying a solution.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// SkillLevel is the audience a solution is written for.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// Category is a top-level grouping of error records.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Subcategory is a second-level grouping within a category.
type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Solution is one ordered remedy for an error record. It has no identifier
// of its own: the pair (error code, index in Solutions) identifies it for
// feedback tracking.
type Solution struct {
	Title string     `json:"title"`
	Level SkillLevel `json:"level"`
	Time  string     `json:"time"`
	Risk  Risk       `json:"risk"`
	Steps []string   `json:"steps"`
}

// ErrorRecord is a single knowledge-base entry, keyed by its code.
// Subcategory is a free-text display name, not a foreign key; see
// MatchesSubcategory for how it is resolved against subcategory listings.
type ErrorRecord struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory"`
	System      string     `json:"system"`
	Urgency     Urgency    `json:"urgency"`
	Frequency   string     `json:"frequency"`
	LastUpdate  string     `json:"lastUpdate,omitempty"`
	Solutions   []Solution `json:"solutions"`
}
