package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/arzan03/doctasks/internal/db"
	"github.com/arzan03/doctasks/internal/models"
	"github.com/arzan03/doctasks/internal/query"
	"github.com/arzan03/doctasks/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReplaceMode selects how ReplaceFirstByEmail writes the new values.
type ReplaceMode string

const (
	// ReplaceMerge overwrites only the given fields.
	ReplaceMerge ReplaceMode = "merge"
	// ReplaceDocument swaps the whole document, keeping _id.
	ReplaceDocument ReplaceMode = "document"
)

type UserService struct {
	users *mongo.Collection
}

func NewUserService(database *mongo.Database) *UserService {
	return &UserService{users: database.Collection(db.UsersCollection)}
}

// UsersSample holds every user and one arbitrary user.
type UsersSample struct {
	All   []models.User `json:"all"`
	First *models.User  `json:"first"`
}

// ListAndSample fetches all users and one user concurrently.
func (s *UserService) ListAndSample(ctx context.Context) (UsersSample, error) {
	var sample UsersSample

	err := utils.RunParallelTasks(ctx,
		func(ctx context.Context) error {
			cursor, err := s.users.Find(ctx, bson.D{})
			if err != nil {
				return fmt.Errorf("failed to retrieve users: %w", err)
			}
			defer cursor.Close(ctx)

			var all []models.User
			if err := cursor.All(ctx, &all); err != nil {
				return fmt.Errorf("error decoding users: %w", err)
			}
			sample.All = all
			return nil
		},
		func(ctx context.Context) error {
			var first models.User
			err := s.users.FindOne(ctx, bson.D{}).Decode(&first)
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to retrieve first user: %w", err)
			}
			sample.First = &first
			return nil
		},
	)
	return sample, err
}

// YoungestOptions projects firstName, lastName and age, sorted by ascending
// age and capped at limit.
func YoungestOptions(limit int64) *options.FindOptions {
	return options.Find().
		SetProjection(query.Project().WithoutID().Include("firstName", "lastName", "age").D()).
		SetSort(query.SortBy().Asc("age").D()).
		SetLimit(limit)
}

// Youngest returns at most limit users ordered by ascending age.
func (s *UserService) Youngest(ctx context.Context, limit int64) ([]models.UserSummary, error) {
	cursor, err := s.users.Find(ctx, query.Where().D(), YoungestOptions(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.UserSummary{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}
	return users, nil
}

// SkillsCandidatesFilter matches users aged [25, 30) or tagged Engineering
// that have no skills field yet.
func SkillsCandidatesFilter() query.Filter {
	return query.Where().And(
		query.Where().Or(
			query.Where().Range("age", 25, 30),
			query.Where().In("tags", "Engineering"),
		),
		query.Where().Exists("skills", false),
	)
}

// AddEmptySkills gives every candidate user an empty skills array.
func (s *UserService) AddEmptySkills(ctx context.Context) (UpdateSummary, error) {
	res, err := s.users.UpdateMany(ctx,
		SkillsCandidatesFilter().D(),
		query.NewUpdate().Set("skills", bson.A{}).D(),
	)
	if err != nil {
		return UpdateSummary{}, fmt.Errorf("failed to add skills: %w", err)
	}
	return updateSummary(res), nil
}

// PushSkills appends skills to the first user having a skills field and
// returns that user as it is after the update. A nil user means no match.
func (s *UserService) PushSkills(ctx context.Context, skills ...string) (*models.User, error) {
	values := make([]interface{}, len(skills))
	for i, v := range skills {
		values[i] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users.FindOneAndUpdate(ctx,
		query.Where().Exists("skills", true).D(),
		query.NewUpdate().PushEach("skills", values...).D(),
		opts,
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to push skills: %w", err)
	}
	return &user, nil
}

// Replacement holds the values written by ReplaceFirstByEmail.
type Replacement struct {
	FirstName  string
	LastName   string
	Tags       []string
	Department string
}

func (r Replacement) document() bson.D {
	return bson.D{
		{Key: "firstName", Value: r.FirstName},
		{Key: "lastName", Value: r.LastName},
		{Key: "tags", Value: r.Tags},
		{Key: "department", Value: r.Department},
	}
}

// ReplaceFilter matches users whose email starts with emailPrefix and who
// live in state.
func ReplaceFilter(emailPrefix, state string) query.Filter {
	return query.Where().Prefix("email", emailPrefix).Eq("address.state", state)
}

// ReplaceFirstByEmail writes r into the first matching user.
func (s *UserService) ReplaceFirstByEmail(ctx context.Context, emailPrefix, state string, r Replacement, mode ReplaceMode) (UpdateSummary, error) {
	filter := ReplaceFilter(emailPrefix, state).D()

	var (
		res *mongo.UpdateResult
		err error
	)
	switch mode {
	case ReplaceDocument:
		res, err = s.users.ReplaceOne(ctx, filter, r.document())
	case ReplaceMerge, "":
		update := query.NewUpdate()
		for _, e := range r.document() {
			update = update.Set(e.Key, e.Value)
		}
		res, err = s.users.UpdateOne(ctx, filter, update.D())
	default:
		return UpdateSummary{}, fmt.Errorf("unknown replace mode %q", mode)
	}
	if err != nil {
		return UpdateSummary{}, fmt.Errorf("failed to replace user: %w", err)
	}
	return updateSummary(res), nil
}

func byName(firstName, lastName string) query.Filter {
	return query.Where().Eq("firstName", firstName).Eq("lastName", lastName)
}

// PullTag removes tag from the first user with the given name.
func (s *UserService) PullTag(ctx context.Context, firstName, lastName, tag string) (UpdateSummary, error) {
	res, err := s.users.UpdateOne(ctx,
		byName(firstName, lastName).D(),
		query.NewUpdate().Pull("tags", tag).D(),
	)
	if err != nil {
		return UpdateSummary{}, fmt.Errorf("failed to pull tag: %w", err)
	}
	return updateSummary(res), nil
}

// PushTagOnceFilter matches the named user only while tag is missing from
// its tags.
func PushTagOnceFilter(firstName, lastName, tag string) query.Filter {
	return byName(firstName, lastName).Ne("tags", tag)
}

// PushTagOnce appends tag to the first user with the given name unless the
// user already has it.
func (s *UserService) PushTagOnce(ctx context.Context, firstName, lastName, tag string) (UpdateSummary, error) {
	res, err := s.users.UpdateOne(ctx,
		PushTagOnceFilter(firstName, lastName, tag).D(),
		query.NewUpdate().Push("tags", tag).D(),
	)
	if err != nil {
		return UpdateSummary{}, fmt.Errorf("failed to push tag: %w", err)
	}
	return updateSummary(res), nil
}

func (s *UserService) DeleteByDepartment(ctx context.Context, department string) (DeleteSummary, error) {
	res, err := s.users.DeleteMany(ctx, query.Where().Eq("department", department).D())
	if err != nil {
		return DeleteSummary{}, fmt.Errorf("failed to delete users: %w", err)
	}
	return DeleteSummary{Deleted: res.DeletedCount}, nil
}
