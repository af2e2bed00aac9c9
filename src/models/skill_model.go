package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill tracks both an endorsement counter and the set of endorsing users.
// The counter must equal len(EndorsedBy); both are updated by a paired
// $inc + $push / $pull, never re-derived.
type Skill struct {
	Id           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	User         primitive.ObjectID   `json:"user" bson:"user"`
	Name         string               `json:"name" bson:"name"`
	Category     string               `json:"category" bson:"category"`
	Endorsements int                  `json:"endorsements" bson:"endorsements"`
	EndorsedBy   []primitive.ObjectID `json:"endorsedBy" bson:"endorsedBy"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
}

// EndorsedByUser reports whether the given user is in the endorser set
func (s *Skill) EndorsedByUser(userID primitive.ObjectID) bool {
	for _, id := range s.EndorsedBy {
		if id == userID {
			return true
		}
	}
	return false
}
