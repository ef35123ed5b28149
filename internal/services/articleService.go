package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/arzan03/doctasks/internal/db"
	"github.com/arzan03/doctasks/internal/models"
	"github.com/arzan03/doctasks/internal/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ArticleService struct {
	articles *mongo.Collection
}

func NewArticleService(database *mongo.Database) *ArticleService {
	return &ArticleService{articles: database.Collection(db.ArticlesCollection)}
}

// SeedArticles returns one empty-tagged article per type.
func SeedArticles() []models.Article {
	articles := make([]models.Article, 0, len(models.ArticleTypes))
	for _, t := range models.ArticleTypes {
		articles = append(articles, models.Article{
			Name:        "article-" + t,
			Description: "Article " + strings.ToUpper(t),
			Type:        t,
			Tags:        []string{},
		})
	}
	return articles
}

// RetagModels builds the ordered write list: insert the articles, set the
// type a tags, add shared tags to the other types, then pull the retired
// tags from every article. Each step sees the effect of the ones before it.
func RetagModels(articles []models.Article) []mongo.WriteModel {
	writes := make([]mongo.WriteModel, 0, len(articles)+3)
	for _, a := range articles {
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(a))
	}

	writes = append(writes,
		mongo.NewUpdateManyModel().
			SetFilter(query.Where().Eq("type", models.ArticleTypeA).D()).
			SetUpdate(query.NewUpdate().Set("tags", []string{"tag1-a", "tag2-a", "tag3"}).D()),
		mongo.NewUpdateManyModel().
			SetFilter(query.Where().Ne("type", models.ArticleTypeA).D()).
			SetUpdate(query.NewUpdate().AddToSetEach("tags", "tag2", "tag3", "super").D()),
		mongo.NewUpdateManyModel().
			SetFilter(query.Where().D()).
			SetUpdate(query.NewUpdate().PullIn("tags", "tag2", "tag1-a").D()),
	)
	return writes
}

// BulkRetag submits RetagModels as one ordered bulk write.
func (s *ArticleService) BulkRetag(ctx context.Context, articles []models.Article) (BulkSummary, error) {
	res, err := s.articles.BulkWrite(ctx, RetagModels(articles), options.BulkWrite().SetOrdered(true))
	if err != nil {
		return BulkSummary{}, fmt.Errorf("bulk write failed: %w", err)
	}
	return BulkSummary{
		Inserted: res.InsertedCount,
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
	}, nil
}

// FindByAnyTag returns articles carrying at least one of tags.
func (s *ArticleService) FindByAnyTag(ctx context.Context, tags ...string) ([]models.Article, error) {
	values := make([]interface{}, len(tags))
	for i, t := range tags {
		values[i] = t
	}

	cursor, err := s.articles.Find(ctx, query.Where().In("tags", values...).D())
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles := []models.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("error decoding articles: %w", err)
	}
	return articles, nil
}
