package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article types
const (
	ArticleTypeA = "a"
	ArticleTypeB = "b"
	ArticleTypeC = "c"
)

var ArticleTypes = []string{ArticleTypeA, ArticleTypeB, ArticleTypeC}

type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type" validate:"oneof=a b c"`
	Tags        []string           `bson:"tags" json:"tags"`
}
