// Package query builds ordered MongoDB filter, update and pipeline documents.
//
// Builders append to a bson.D so the operator order handed to the driver is
// the order the caller wrote.
package query

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter is a query predicate document.
type Filter struct {
	doc bson.D
}

// Where starts an empty filter, which matches every document.
func Where() Filter {
	return Filter{}
}

func (f Filter) with(key string, value interface{}) Filter {
	doc := make(bson.D, 0, len(f.doc)+1)
	doc = append(doc, f.doc...)
	return Filter{doc: append(doc, bson.E{Key: key, Value: value})}
}

// Eq matches documents whose field equals value. For array fields this is a
// containment test.
func (f Filter) Eq(field string, value interface{}) Filter {
	return f.with(field, value)
}

func (f Filter) Ne(field string, value interface{}) Filter {
	return f.with(field, bson.D{{Key: "$ne", Value: value}})
}

func (f Filter) Gte(field string, value interface{}) Filter {
	return f.with(field, bson.D{{Key: "$gte", Value: value}})
}

func (f Filter) Lt(field string, value interface{}) Filter {
	return f.with(field, bson.D{{Key: "$lt", Value: value}})
}

// Range matches lo <= field < hi.
func (f Filter) Range(field string, lo, hi interface{}) Filter {
	return f.with(field, bson.D{{Key: "$gte", Value: lo}, {Key: "$lt", Value: hi}})
}

func (f Filter) In(field string, values ...interface{}) Filter {
	return f.with(field, bson.D{{Key: "$in", Value: bson.A(values)}})
}

func (f Filter) Exists(field string, exists bool) Filter {
	return f.with(field, bson.D{{Key: "$exists", Value: exists}})
}

func (f Filter) Regex(field, pattern, options string) Filter {
	return f.with(field, bson.D{{Key: "$regex", Value: primitive.Regex{Pattern: pattern, Options: options}}})
}

// Prefix matches string fields starting with prefix.
func (f Filter) Prefix(field, prefix string) Filter {
	return f.Regex(field, "^"+regexp.QuoteMeta(prefix), "")
}

// Or matches when any branch matches.
func (f Filter) Or(branches ...Filter) Filter {
	return f.with("$or", docs(branches))
}

// And matches when every branch matches.
func (f Filter) And(branches ...Filter) Filter {
	return f.with("$and", docs(branches))
}

// D returns the filter document. A zero Filter yields an empty document.
func (f Filter) D() bson.D {
	if f.doc == nil {
		return bson.D{}
	}
	return f.doc
}

func docs(filters []Filter) bson.A {
	out := make(bson.A, 0, len(filters))
	for _, b := range filters {
		out = append(out, b.D())
	}
	return out
}
