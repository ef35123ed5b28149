package query

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Projection selects and computes output fields. It is used both as a find
// projection and as the body of a $project stage.
type Projection struct {
	doc bson.D
}

func Project() Projection {
	return Projection{}
}

func (p Projection) with(field string, value interface{}) Projection {
	doc := make(bson.D, 0, len(p.doc)+1)
	doc = append(doc, p.doc...)
	return Projection{doc: append(doc, bson.E{Key: field, Value: value})}
}

func (p Projection) Include(fields ...string) Projection {
	for _, f := range fields {
		p = p.with(f, 1)
	}
	return p
}

func (p Projection) Exclude(fields ...string) Projection {
	for _, f := range fields {
		p = p.with(f, 0)
	}
	return p
}

// WithoutID drops _id from the output.
func (p Projection) WithoutID() Projection {
	return p.Exclude("_id")
}

// Computed adds a field whose value is an aggregation expression.
func (p Projection) Computed(field string, expr Expr) Projection {
	return p.with(field, expr.value)
}

func (p Projection) D() bson.D {
	if p.doc == nil {
		return bson.D{}
	}
	return p.doc
}

// Sort is an ordered list of sort keys.
type Sort struct {
	doc bson.D
}

func SortBy() Sort {
	return Sort{}
}

func (s Sort) with(field string, dir int) Sort {
	doc := make(bson.D, 0, len(s.doc)+1)
	doc = append(doc, s.doc...)
	return Sort{doc: append(doc, bson.E{Key: field, Value: dir})}
}

func (s Sort) Asc(field string) Sort {
	return s.with(field, 1)
}

func (s Sort) Desc(field string) Sort {
	return s.with(field, -1)
}

func (s Sort) D() bson.D {
	if s.doc == nil {
		return bson.D{}
	}
	return s.doc
}
