package services

import (
	"context"
	"testing"

	"github.com/arzan03/doctasks/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

var mockOpts = mtest.NewOptions().ClientType(mtest.Mock)

func TestSkillsCandidatesFilter(t *testing.T) {
	want := bson.D{{Key: "$and", Value: bson.A{
		bson.D{{Key: "$or", Value: bson.A{
			bson.D{{Key: "age", Value: bson.D{{Key: "$gte", Value: 25}, {Key: "$lt", Value: 30}}}},
			bson.D{{Key: "tags", Value: bson.D{{Key: "$in", Value: bson.A{"Engineering"}}}}},
		}}},
		bson.D{{Key: "skills", Value: bson.D{{Key: "$exists", Value: false}}}},
	}}}
	assert.Equal(t, want, SkillsCandidatesFilter().D())
}

func TestPushTagOnceFilter(t *testing.T) {
	want := bson.D{
		{Key: "firstName", Value: "Jason"},
		{Key: "lastName", Value: "Wood"},
		{Key: "tags", Value: bson.D{{Key: "$ne", Value: "b"}}},
	}
	assert.Equal(t, want, PushTagOnceFilter("Jason", "Wood", "b").D())
}

func TestReplaceFilter(t *testing.T) {
	f := ReplaceFilter("john", "CA").D()
	require.Len(t, f, 2)
	assert.Equal(t, "email", f[0].Key)
	assert.Equal(t, bson.E{Key: "address.state", Value: "CA"}, f[1])
}

func TestRetagModelsOrder(t *testing.T) {
	writes := RetagModels(SeedArticles())
	require.Len(t, writes, 6)

	for i := 0; i < 3; i++ {
		assert.IsType(t, &mongo.InsertOneModel{}, writes[i])
	}

	setA := writes[3].(*mongo.UpdateManyModel)
	assert.Equal(t, bson.D{{Key: "type", Value: "a"}}, setA.Filter)

	addOthers := writes[4].(*mongo.UpdateManyModel)
	assert.Equal(t, bson.D{{Key: "type", Value: bson.D{{Key: "$ne", Value: "a"}}}}, addOthers.Filter)
	assert.Equal(t, "$addToSet", addOthers.Update.(bson.D)[0].Key)

	pullAll := writes[5].(*mongo.UpdateManyModel)
	assert.Equal(t, bson.D{}, pullAll.Filter)
	assert.Equal(t, "$pull", pullAll.Update.(bson.D)[0].Key)
}

func TestSeedArticles(t *testing.T) {
	articles := SeedArticles()
	require.Len(t, articles, 3)
	assert.Equal(t, models.Article{Name: "article-b", Description: "Article B", Type: "b", Tags: []string{}}, articles[1])
}

func TestValidateFixtures(t *testing.T) {
	v := validator.New()
	require.NoError(t, ValidateFixtures(v, DefaultFixtures()))

	bad := DefaultFixtures()
	bad.Users[0].Email = "not-an-email"
	assert.Error(t, ValidateFixtures(v, bad))

	bad = DefaultFixtures()
	bad.Students[0].Scores[0].Type = "essay"
	assert.Error(t, ValidateFixtures(v, bad))
}

func TestUserService(t *testing.T) {
	mt := mtest.New(t, mockOpts)

	mt.Run("youngest decodes projection", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "firstName", Value: "Bob"}, {Key: "lastName", Value: "Lee"}, {Key: "age", Value: 22}},
			bson.D{{Key: "firstName", Value: "Dana"}, {Key: "lastName", Value: "Kim"}, {Key: "age", Value: 25}},
		))

		users, err := svc.Youngest(context.Background(), 5)
		require.NoError(mt, err)
		assert.Equal(mt, []models.UserSummary{
			{FirstName: "Bob", LastName: "Lee", Age: 22},
			{FirstName: "Dana", LastName: "Kim", Age: 25},
		}, users)
	})

	mt.Run("add empty skills reports counts", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 3},
			bson.E{Key: "nModified", Value: 3},
		))

		res, err := svc.AddEmptySkills(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, UpdateSummary{Matched: 3, Modified: 3}, res)
	})

	mt.Run("push skills returns updated user", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "firstName", Value: "Dana"},
			{Key: "skills", Value: bson.A{"js", "git"}},
		}}))

		user, err := svc.PushSkills(context.Background(), "js", "git")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, []string{"js", "git"}, user.Skills)
	})

	mt.Run("push skills without match", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		user, err := svc.PushSkills(context.Background(), "js", "git")
		require.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("replace merge and document", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		r := Replacement{FirstName: "Jason", LastName: "Wood", Tags: []string{"a", "b", "c"}, Department: "Support"}
		for _, mode := range []ReplaceMode{ReplaceMerge, ReplaceDocument} {
			mt.AddMockResponses(mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			))
			res, err := svc.ReplaceFirstByEmail(context.Background(), "john", "CA", r, mode)
			require.NoError(mt, err)
			assert.Equal(mt, UpdateSummary{Matched: 1, Modified: 1}, res)
		}

		_, err := svc.ReplaceFirstByEmail(context.Background(), "john", "CA", r, ReplaceMode("upsert"))
		assert.ErrorContains(mt, err, "unknown replace mode")
	})

	mt.Run("push tag once is a no-op when present", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		res, err := svc.PushTagOnce(context.Background(), "Jason", "Wood", "b")
		require.NoError(mt, err)
		assert.Equal(mt, UpdateSummary{}, res)
	})

	mt.Run("push tag once sends guarded push", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := svc.PushTagOnce(context.Background(), "Jason", "Wood", "b")
		require.NoError(mt, err)
		assert.Equal(mt, UpdateSummary{Matched: 1, Modified: 1}, res)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)
		assert.Equal(mt, "Jason", evt.Command.Lookup("updates", "0", "q", "firstName").StringValue())
		assert.Equal(mt, "b", evt.Command.Lookup("updates", "0", "q", "tags", "$ne").StringValue())
		assert.Equal(mt, "b", evt.Command.Lookup("updates", "0", "u", "$push", "tags").StringValue())
	})

	mt.Run("pull tag", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := svc.PullTag(context.Background(), "Jason", "Wood", "c")
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), res.Modified)
	})

	mt.Run("delete by department", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}))

		res, err := svc.DeleteByDepartment(context.Background(), "Support")
		require.NoError(mt, err)
		assert.Equal(mt, DeleteSummary{Deleted: 2}, res)
	})

	mt.Run("command error is wrapped", func(mt *mtest.T) {
		svc := NewUserService(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "unknown operator",
		}))

		_, err := svc.DeleteByDepartment(context.Background(), "Support")
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to delete users")

		var cmdErr mongo.CommandError
		assert.ErrorAs(mt, err, &cmdErr)
		assert.Equal(mt, int32(2), cmdErr.Code)
	})
}

func TestArticleService(t *testing.T) {
	mt := mtest.New(t, mockOpts)

	mt.Run("bulk retag", func(mt *mtest.T) {
		svc := NewArticleService(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 6},
				bson.E{Key: "nModified", Value: 6},
			),
		)

		res, err := svc.BulkRetag(context.Background(), SeedArticles())
		require.NoError(mt, err)
		assert.Equal(mt, BulkSummary{Inserted: 3, Matched: 6, Modified: 6}, res)
	})

	mt.Run("find by any tag", func(mt *mtest.T) {
		svc := NewArticleService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.articles", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "article-a"}, {Key: "type", Value: "a"}, {Key: "tags", Value: bson.A{"tag2-a", "tag3"}}},
			bson.D{{Key: "name", Value: "article-b"}, {Key: "type", Value: "b"}, {Key: "tags", Value: bson.A{"tag3", "super"}}},
		))

		articles, err := svc.FindByAnyTag(context.Background(), "super", "tag2-a")
		require.NoError(mt, err)
		require.Len(mt, articles, 2)
		assert.Equal(mt, []string{"tag2-a", "tag3"}, articles[0].Tags)
	})
}

func TestStudentService(t *testing.T) {
	mt := mtest.New(t, mockOpts)

	mt.Run("worst homework", func(mt *mtest.T) {
		svc := NewStudentService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.students", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "A"}, {Key: "worst_homework_score", Value: 50.0}},
		))

		rows, err := svc.WorstHomework(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []models.WorstHomework{{Name: "A", WorstHomeworkScore: 50}}, rows)
	})

	mt.Run("average homework", func(mt *mtest.T) {
		svc := NewStudentService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.students", mtest.FirstBatch,
			bson.D{{Key: "avg_score", Value: 60.0}},
		))

		rows, err := svc.AverageHomework(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []models.AverageScore{{AvgScore: 60}}, rows)
	})

	mt.Run("average by student", func(mt *mtest.T) {
		svc := NewStudentService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.students", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "A"}, {Key: "avg_score", Value: 70.0}},
			bson.D{{Key: "name", Value: "B"}, {Key: "avg_score", Value: 70.0}},
		))

		rows, err := svc.AverageByStudent(context.Background())
		require.NoError(mt, err)
		assert.Len(mt, rows, 2)
	})

	mt.Run("empty result is not nil", func(mt *mtest.T) {
		svc := NewStudentService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.students", mtest.FirstBatch))

		rows, err := svc.WorstHomework(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, rows)
		assert.Empty(mt, rows)
	})
}

func TestCollectionService(t *testing.T) {
	mt := mtest.New(t, mockOpts)

	mt.Run("lists documents", func(mt *mtest.T) {
		svc := NewCollectionService(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "firstName", Value: "Bob"}},
		))

		docs, err := svc.ListDocuments(context.Background(), "users", 10)
		require.NoError(mt, err)
		require.Len(mt, docs, 1)
		assert.Equal(mt, "Bob", docs[0]["firstName"])
	})

	mt.Run("rejects unknown collection", func(mt *mtest.T) {
		svc := NewCollectionService(mt.DB)

		_, err := svc.ListDocuments(context.Background(), "files", 0)
		assert.ErrorIs(mt, err, ErrUnknownCollection)
	})
}

func TestSeedService(t *testing.T) {
	mt := mtest.New(t, mockOpts)

	mt.Run("inserts fixtures", func(mt *mtest.T) {
		svc := NewSeedService(mt.DB)
		f := DefaultFixtures()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: len(f.Users)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: len(f.Students)}),
		)

		res, err := svc.Seed(context.Background(), f, false)
		require.NoError(mt, err)
		assert.Equal(mt, SeedSummary{Users: len(f.Users), Students: len(f.Students)}, res)
	})

	mt.Run("invalid fixtures insert nothing", func(mt *mtest.T) {
		svc := NewSeedService(mt.DB)
		f := DefaultFixtures()
		f.Students[1].Name = ""

		_, err := svc.Seed(context.Background(), f, false)
		assert.ErrorContains(mt, err, "invalid student")
	})
}
