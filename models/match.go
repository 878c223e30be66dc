package models

import "time"

// Match is a mutually positive pair of decisions. Created exactly once per
// unordered pair; only an explicit unmatch (out of scope here) removes it.
type Match struct {
	PairID    string    `dynamodbav:"pairId" json:"pairId"`
	MatchID   string    `dynamodbav:"matchId" json:"matchId"`
	ProfileA  string    `dynamodbav:"profileA" json:"profileA"`
	ProfileB  string    `dynamodbav:"profileB" json:"profileB"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// PairKey builds the canonical unordered pair id for two profiles, so both
// swipe directions address the same match row.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "#" + b
}
