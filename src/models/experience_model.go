package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Experience struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User           primitive.ObjectID `json:"user" bson:"user"`
	Title          string             `json:"title" bson:"title"`
	Company        string             `json:"company" bson:"company"`
	Location       string             `json:"location" bson:"location"`
	StartDate      time.Time          `json:"startDate" bson:"startDate"`
	EndDate        *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Current        bool               `json:"current" bson:"current"`
	Description    string             `json:"description" bson:"description"`
	EmploymentType string             `json:"employmentType" bson:"employmentType"`
	Industry       string             `json:"industry" bson:"industry"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ExperienceInput is the client-settable portion of an experience record
type ExperienceInput struct {
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Current        bool       `json:"current"`
	Description    string     `json:"description"`
	EmploymentType string     `json:"employmentType"`
	Industry       string     `json:"industry"`
}
