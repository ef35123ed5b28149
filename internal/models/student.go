package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score types
const (
	ScoreHomework = "homework"
	ScoreExam     = "exam"
	ScoreQuiz     = "quiz"
)

type Score struct {
	Type  string  `bson:"type" json:"type" validate:"oneof=homework exam quiz"`
	Score float64 `bson:"score" json:"score" validate:"gte=0"`
}

type Student struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name   string             `bson:"name" json:"name" validate:"required"`
	Scores []Score            `bson:"scores" json:"scores" validate:"dive"`
}

// WorstHomework is the single row produced by the worst homework score pipeline.
type WorstHomework struct {
	Name               string  `bson:"name" json:"name"`
	WorstHomeworkScore float64 `bson:"worst_homework_score" json:"worst_homework_score"`
}

type AverageScore struct {
	AvgScore float64 `bson:"avg_score" json:"avg_score"`
}

type StudentAverage struct {
	Name     string  `bson:"name" json:"name"`
	AvgScore float64 `bson:"avg_score" json:"avg_score"`
}
