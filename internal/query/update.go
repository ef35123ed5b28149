package query

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Update is an update operator document. Repeated calls for the same
// operator merge into a single operator entry.
type Update struct {
	doc bson.D
}

func NewUpdate() Update {
	return Update{}
}

func (u Update) op(operator, field string, value interface{}) Update {
	doc := make(bson.D, 0, len(u.doc)+1)
	for _, e := range u.doc {
		if e.Key == operator {
			fields := append(append(bson.D{}, e.Value.(bson.D)...), bson.E{Key: field, Value: value})
			e = bson.E{Key: operator, Value: fields}
			operator = ""
		}
		doc = append(doc, e)
	}
	if operator != "" {
		doc = append(doc, bson.E{Key: operator, Value: bson.D{{Key: field, Value: value}}})
	}
	return Update{doc: doc}
}

func (u Update) Set(field string, value interface{}) Update {
	return u.op("$set", field, value)
}

func (u Update) Push(field string, value interface{}) Update {
	return u.op("$push", field, value)
}

// PushEach appends every value, duplicates included.
func (u Update) PushEach(field string, values ...interface{}) Update {
	return u.op("$push", field, bson.D{{Key: "$each", Value: bson.A(values)}})
}

// Pull removes every array element equal to value.
func (u Update) Pull(field string, value interface{}) Update {
	return u.op("$pull", field, value)
}

// PullIn removes every array element equal to any of values.
func (u Update) PullIn(field string, values ...interface{}) Update {
	return u.op("$pull", field, bson.D{{Key: "$in", Value: bson.A(values)}})
}

// AddToSetEach appends the values not already present in the array.
func (u Update) AddToSetEach(field string, values ...interface{}) Update {
	return u.op("$addToSet", field, bson.D{{Key: "$each", Value: bson.A(values)}})
}

func (u Update) D() bson.D {
	if u.doc == nil {
		return bson.D{}
	}
	return u.doc
}
