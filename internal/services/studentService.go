package services

import (
	"context"
	"fmt"

	"github.com/arzan03/doctasks/internal/db"
	"github.com/arzan03/doctasks/internal/models"
	"github.com/arzan03/doctasks/internal/query"
	"go.mongodb.org/mongo-driver/mongo"
)

type StudentService struct {
	students *mongo.Collection
}

func NewStudentService(database *mongo.Database) *StudentService {
	return &StudentService{students: database.Collection(db.StudentsCollection)}
}

// WorstHomeworkPipeline finds the student with the lowest homework score.
// Students without homework are dropped.
func WorstHomeworkPipeline() query.Pipeline {
	scoresOfType := query.FilterArray(query.Field("scores"), "s",
		query.EqExpr(query.VarField("s", "type"), query.Literal(models.ScoreHomework)))

	return query.NewPipeline().
		Project(query.Project().WithoutID().Include("name").
			Computed("worst_homework_score", query.Min(query.MapArray(scoresOfType, "s", query.VarField("s", "score"))))).
		Match(query.Where().Ne("worst_homework_score", nil)).
		Sort(query.SortBy().Asc("worst_homework_score")).
		Limit(1)
}

// AverageScorePipeline averages every score of scoreType across all students.
func AverageScorePipeline(scoreType string) query.Pipeline {
	return query.NewPipeline().
		Unwind("scores").
		Match(query.Where().Eq("scores.type", scoreType)).
		Group(nil, query.AvgOf("avg_score", query.Field("scores.score"))).
		Project(query.Project().WithoutID())
}

// StudentAveragePipeline averages each student's scores of all types,
// highest first.
func StudentAveragePipeline() query.Pipeline {
	return query.NewPipeline().
		Project(query.Project().WithoutID().Include("name").
			Computed("avg_score", query.Avg(query.Field("scores.score")))).
		Sort(query.SortBy().Desc("avg_score"))
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, p query.Pipeline) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, p.Stages())
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []T{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding aggregation: %w", err)
	}
	return rows, nil
}

func (s *StudentService) WorstHomework(ctx context.Context) ([]models.WorstHomework, error) {
	return aggregate[models.WorstHomework](ctx, s.students, WorstHomeworkPipeline())
}

func (s *StudentService) AverageHomework(ctx context.Context) ([]models.AverageScore, error) {
	return aggregate[models.AverageScore](ctx, s.students, AverageScorePipeline(models.ScoreHomework))
}

func (s *StudentService) AverageByStudent(ctx context.Context) ([]models.StudentAverage, error) {
	return aggregate[models.StudentAverage](ctx, s.students, StudentAveragePipeline())
}
