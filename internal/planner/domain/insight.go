package domain

// Insight is one short encouraging observation about the user's history.
type Insight struct {
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
}

// InsightReport is the output of insight generation: 3-5 insights plus an
// optional most-productive-day label. Purely advisory; a failure here never
// touches plan or itinerary state.
type InsightReport struct {
	Insights         []Insight `json:"insights"`
	ProductivityPeak string    `json:"productivityPeak,omitempty"`
}
