package runner

import (
	"context"

	"github.com/arzan03/doctasks/internal/db"
	"github.com/arzan03/doctasks/internal/services"
)

// DefaultTask is what a run selects when no task is named.
const DefaultTask = "users-example"

// Services groups the store services the catalogue runs against.
type Services struct {
	Users    *services.UserService
	Articles *services.ArticleService
	Students *services.StudentService
}

type CatalogOptions struct {
	ReplaceMode services.ReplaceMode
}

// Catalog lists every task in run order.
func Catalog(svc Services, opts CatalogOptions) []Task {
	return []Task{
		{
			Name: DefaultTask, Alias: "list-sample", Collection: db.UsersCollection,
			Description: "Fetch all users and one user concurrently",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Users.ListAndSample(ctx)
			},
		},
		{
			Name: "task1", Alias: "top-youngest", Collection: db.UsersCollection,
			Description: "Five youngest users with firstName, lastName and age only",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Users.Youngest(ctx, 5)
			},
		},
		{
			Name: "task2", Alias: "add-skills", Collection: db.UsersCollection,
			Description: "Add empty skills to users aged 25-29 or tagged Engineering",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Users.AddEmptySkills(ctx)
			},
		},
		{
			Name: "task3", Alias: "push-skills", Collection: db.UsersCollection,
			Description: "Push js and git to the first user with skills and return it",
			Run: func(ctx context.Context) (interface{}, error) {
				user, err := svc.Users.PushSkills(ctx, "js", "git")
				if user == nil {
					return nil, err
				}
				return user, err
			},
		},
		{
			Name: "task4", Alias: "replace-jason", Collection: db.UsersCollection,
			Description: "Overwrite the first john* user in CA with Jason Wood",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Users.ReplaceFirstByEmail(ctx, "john", "CA", services.Replacement{
					FirstName:  "Jason",
					LastName:   "Wood",
					Tags:       []string{"a", "b", "c"},
					Department: "Support",
				}, opts.ReplaceMode)
			},
		},
		{
			Name: "task5", Alias: "pull-tag", Collection: db.UsersCollection,
			Description: "Pull tag c from Jason Wood",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Users.PullTag(ctx, "Jason", "Wood", "c")
			},
		},
		{
			Name: "task6", Alias: "push-tag-once", Collection: db.UsersCollection,
			Description: "Push tag b to Jason Wood unless already present",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Users.PushTagOnce(ctx, "Jason", "Wood", "b")
			},
		},
		{
			Name: "task7", Alias: "delete-support", Collection: db.UsersCollection,
			Description: "Delete every Support user",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Users.DeleteByDepartment(ctx, "Support")
			},
		},
		{
			Name: "task8", Alias: "bulk-articles", Collection: db.ArticlesCollection,
			Description: "Insert one article per type and retag them in one bulk write",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Articles.BulkRetag(ctx, services.SeedArticles())
			},
		},
		{
			Name: "task9", Alias: "find-tagged", Collection: db.ArticlesCollection,
			Description: "Articles tagged super or tag2-a",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Articles.FindByAnyTag(ctx, "super", "tag2-a")
			},
		},
		{
			Name: "task10", Alias: "worst-homework", Collection: db.StudentsCollection,
			Description: "Student with the worst homework score",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Students.WorstHomework(ctx)
			},
		},
		{
			Name: "task11", Alias: "avg-homework", Collection: db.StudentsCollection,
			Description: "Average homework score across all students",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Students.AverageHomework(ctx)
			},
		},
		{
			Name: "task12", Alias: "avg-by-student", Collection: db.StudentsCollection,
			Description: "Average score per student, highest first",
			Run: func(ctx context.Context) (interface{}, error) {
				return svc.Students.AverageByStudent(ctx)
			},
		},
	}
}
