package models

// DimensionScore is the per-dimension breakdown of a pairwise score.
// Weight is the renormalized weight actually used in the weighted sum.
type DimensionScore struct {
	Dimension  string  `json:"dimension"`
	Similarity float64 `json:"similarity"`
	Weight     float64 `json:"weight"`
}

// CompatibilityScore is the result of comparing two feature vectors.
// Overall is the rounded 0-100 display value; Raw keeps the unrounded
// weighted sum so rankings do not tie on display rounding. Insufficient
// marks a pair that could not be scored at all and must be ranked last,
// never treated as zero.
type CompatibilityScore struct {
	ProfileA       string           `json:"profileA"`
	ProfileB       string           `json:"profileB"`
	Overall        int              `json:"overall"`
	Raw            float64          `json:"raw"`
	Breakdown      []DimensionScore `json:"breakdown"`
	Strengths      []string         `json:"strengths"`
	Considerations []string         `json:"considerations"`
	Insufficient   bool             `json:"insufficient"`
	Confident      bool             `json:"confident"`
}

// MemberScore is one candidate-to-member pairwise result inside a group
// aggregation.
type MemberScore struct {
	MemberID     string  `json:"memberId"`
	Overall      int     `json:"overall"`
	Raw          float64 `json:"raw"`
	Insufficient bool    `json:"insufficient"`
}

// GroupCompatibilityScore aggregates a candidate against every current
// member of a group. Minimum is the ranking key (a group is only as
// compatible as its weakest link); Average is reported for display.
type GroupCompatibilityScore struct {
	CandidateID  string        `json:"candidateId"`
	GroupID      string        `json:"groupId"`
	Minimum      int           `json:"minimum"`
	Average      float64       `json:"average"`
	RawMinimum   float64       `json:"rawMinimum"`
	PerMember    []MemberScore `json:"perMember"`
	Insufficient bool          `json:"insufficient"`
}
