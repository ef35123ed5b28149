package services

import (
	"context"
	"fmt"

	"github.com/arzan03/doctasks/internal/db"
	"github.com/arzan03/doctasks/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures is the sample data loaded by Seed.
type Fixtures struct {
	Users    []models.User
	Students []models.Student
}

// DefaultFixtures covers every task: users in and out of the skills age
// band, an Engineering tag, a john* email in CA, and students with and
// without homework.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Users: []models.User{
			{FirstName: "John", LastName: "Smith", Age: 27, Email: "john.smith@example.com",
				Address: models.Address{City: "San Diego", State: "CA"}, Tags: []string{"Sales"}, Department: "Sales"},
			{FirstName: "Alice", LastName: "Brown", Age: 34, Email: "alice@example.com",
				Address: models.Address{City: "Austin", State: "TX"}, Tags: []string{"Engineering"}, Department: "Engineering"},
			{FirstName: "Bob", LastName: "Lee", Age: 22, Email: "bob@example.com",
				Address: models.Address{City: "Seattle", State: "WA"}, Tags: []string{"Marketing"}, Department: "Marketing"},
			{FirstName: "Carol", LastName: "White", Age: 29, Email: "carol@example.com",
				Address: models.Address{City: "Denver", State: "CO"}, Tags: []string{"Support"}, Department: "Support"},
			{FirstName: "Johnny", LastName: "Walker", Age: 41, Email: "johnny@example.com",
				Address: models.Address{City: "Boston", State: "MA"}, Tags: []string{"Finance"}, Department: "Finance"},
			{FirstName: "Dana", LastName: "Kim", Age: 25, Email: "dana@example.com",
				Address: models.Address{City: "Fresno", State: "CA"}, Tags: []string{"Engineering", "Design"}, Department: "Engineering"},
		},
		Students: []models.Student{
			{Name: "A", Scores: []models.Score{{Type: models.ScoreHomework, Score: 50}, {Type: models.ScoreExam, Score: 90}}},
			{Name: "B", Scores: []models.Score{{Type: models.ScoreHomework, Score: 70}}},
			{Name: "C", Scores: []models.Score{{Type: models.ScoreExam, Score: 65}, {Type: models.ScoreQuiz, Score: 80}}},
		},
	}
}

// ValidateFixtures checks every fixture document against its struct tags.
func ValidateFixtures(v *validator.Validate, f Fixtures) error {
	for i, u := range f.Users {
		if err := v.Struct(u); err != nil {
			return fmt.Errorf("invalid user #%d (%s): %w", i, u.Email, err)
		}
	}
	for i, st := range f.Students {
		if err := v.Struct(st); err != nil {
			return fmt.Errorf("invalid student #%d (%s): %w", i, st.Name, err)
		}
	}
	return nil
}

type SeedService struct {
	database *mongo.Database
	validate *validator.Validate
}

func NewSeedService(database *mongo.Database) *SeedService {
	return &SeedService{database: database, validate: validator.New()}
}

// SeedSummary counts inserted documents per collection.
type SeedSummary struct {
	Users    int `json:"users"`
	Students int `json:"students"`
}

// Seed validates and inserts f. With drop set, the three task collections
// are dropped first.
func (s *SeedService) Seed(ctx context.Context, f Fixtures, drop bool) (SeedSummary, error) {
	if err := ValidateFixtures(s.validate, f); err != nil {
		return SeedSummary{}, err
	}

	if drop {
		for _, name := range db.Collections {
			if err := s.database.Collection(name).Drop(ctx); err != nil {
				return SeedSummary{}, fmt.Errorf("failed to drop %s: %w", name, err)
			}
			log.Debug().Str("collection", name).Msg("dropped collection")
		}
	}

	var summary SeedSummary
	if len(f.Users) > 0 {
		docs := make([]interface{}, len(f.Users))
		for i := range f.Users {
			docs[i] = f.Users[i]
		}
		res, err := s.database.Collection(db.UsersCollection).InsertMany(ctx, docs)
		if err != nil {
			return summary, fmt.Errorf("failed to insert users: %w", err)
		}
		summary.Users = len(res.InsertedIDs)
	}

	if len(f.Students) > 0 {
		docs := make([]interface{}, len(f.Students))
		for i := range f.Students {
			docs[i] = f.Students[i]
		}
		res, err := s.database.Collection(db.StudentsCollection).InsertMany(ctx, docs)
		if err != nil {
			return summary, fmt.Errorf("failed to insert students: %w", err)
		}
		summary.Students = len(res.InsertedIDs)
	}

	log.Info().Int("users", summary.Users).Int("students", summary.Students).Msg("seeded collections")
	return summary, nil
}
