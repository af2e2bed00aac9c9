package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Education struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User         primitive.ObjectID `json:"user" bson:"user"`
	School       string             `json:"school" bson:"school"`
	Degree       string             `json:"degree" bson:"degree"`
	FieldOfStudy string             `json:"fieldOfStudy" bson:"fieldOfStudy"`
	StartDate    time.Time          `json:"startDate" bson:"startDate"`
	EndDate      *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Current      bool               `json:"current" bson:"current"`
	Grade        string             `json:"grade,omitempty" bson:"grade,omitempty"`
	Activities   string             `json:"activities,omitempty" bson:"activities,omitempty"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// EducationInput is the client-settable portion of an education record
type EducationInput struct {
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	Current      bool       `json:"current"`
	Grade        string     `json:"grade"`
	Activities   string     `json:"activities"`
	Description  string     `json:"description"`
}
