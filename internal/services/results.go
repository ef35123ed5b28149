package services

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// UpdateSummary reports the counts of an update call.
type UpdateSummary struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

func updateSummary(res *mongo.UpdateResult) UpdateSummary {
	if res == nil {
		return UpdateSummary{}
	}
	return UpdateSummary{Matched: res.MatchedCount, Modified: res.ModifiedCount}
}

type DeleteSummary struct {
	Deleted int64 `json:"deleted"`
}

type BulkSummary struct {
	Inserted int64 `json:"inserted"`
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}
