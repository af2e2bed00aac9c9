package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a member profile. Sub is the identity provider's subject
// identifier; the record is created by upsert on first login.
type User struct {
	Id        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Sub       string             `json:"sub" bson:"sub"`
	Username  string             `json:"username" bson:"username"`
	Name      string             `json:"name" bson:"name"`
	Headline  string             `json:"headline" bson:"headline"`
	AvatarURL string             `json:"avatarUrl" bson:"avatarUrl"`
	Bio       string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Location  string             `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserUpsert carries the profile fields a client may set. Unknown input
// fields are dropped at the boundary by parsing into this fixed shape.
type UserUpsert struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	Headline  string `json:"headline"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
}
