package models

import "time"

// GroupMaxSize is the hard ceiling on search-party size.
const GroupMaxSize = 4

// Group is a 2-4 person search party. Membership invariants (size, single
// group per profile) are enforced by the group-management collaborator;
// this engine consumes the member list as given.
type Group struct {
	GroupID   string    `dynamodbav:"groupId" json:"groupId"`
	CreatorID string    `dynamodbav:"creatorId" json:"creatorId"`
	MemberIDs []string  `dynamodbav:"memberIds" json:"memberIds"`
	Open      bool      `dynamodbav:"open" json:"open"`
	MaxSize   int       `dynamodbav:"maxSize" json:"maxSize"`
	CreatedAt time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// HasMember reports whether the profile already belongs to the group.
func (g *Group) HasMember(profileID string) bool {
	for _, id := range g.MemberIDs {
		if id == profileID {
			return true
		}
	}
	return false
}
