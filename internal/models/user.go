package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street string `bson:"street,omitempty" json:"street,omitempty"`
	City   string `bson:"city,omitempty" json:"city,omitempty"`
	State  string `bson:"state" json:"state" validate:"required,len=2"`
}

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName  string             `bson:"firstName" json:"firstName" validate:"required"`
	LastName   string             `bson:"lastName" json:"lastName" validate:"required"`
	Age        int                `bson:"age" json:"age" validate:"gte=0,lte=150"`
	Email      string             `bson:"email" json:"email" validate:"required,email"`
	Address    Address            `bson:"address" json:"address"`
	Tags       []string           `bson:"tags" json:"tags"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	Skills     []string           `bson:"skills,omitempty" json:"skills,omitempty"`
}

// UserSummary is the projection returned by the youngest-users query.
type UserSummary struct {
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
	Age       int    `bson:"age" json:"age"`
}
