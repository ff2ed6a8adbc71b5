package prefs

import (
	"encoding/json"
	"fmt"
	"time"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// MaxHistory caps the number of retained history entries.
const MaxHistory = 20

// HistoryEntry records one viewed error. Entries are unique by code; a
// re-view moves the entry to the front with a fresh timestamp.
type HistoryEntry struct {
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackKey identifies one likeable unit: a solution within an error
// record, addressed by the record's code and the solution's index.
func FeedbackKey(code string, solutionIndex int) string {
	return fmt.Sprintf("%s-%d", code, solutionIndex)
}

// likePair and countPair serialize as [key, value] tuples, matching the
// persisted blob format.

type likePair struct {
	Key   string
	Liked bool
}

func (p likePair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Key, p.Liked})
}

func (p *likePair) UnmarshalJSON(data []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[0], &p.Key); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Liked)
}

type countPair struct {
	Key   string
	Count int
}

func (p countPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{p.Key, p.Count})
}

func (p *countPair) UnmarshalJSON(data []byte) error {
	var tuple [2]json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if err := json.Unmarshal(tuple[0], &p.Key); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &p.Count)
}

// persisted is the serialized shape of the preference aggregate.
type persisted struct {
	History        []HistoryEntry `json:"history"`
	Theme          Theme          `json:"theme"`
	Likes          []likePair     `json:"likes"`
	FeedbackCounts []countPair    `json:"feedbackCounts"`
}
