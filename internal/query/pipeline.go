package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Expr is an aggregation expression.
type Expr struct {
	value interface{}
}

// Field references a document field path, e.g. Field("scores.score").
func Field(path string) Expr {
	return Expr{value: "$" + path}
}

// Var references a variable bound by FilterArray or MapArray.
func Var(name string) Expr {
	return Expr{value: "$$" + name}
}

// VarField references a field of a bound variable, e.g. VarField("s", "type").
func VarField(name, path string) Expr {
	return Expr{value: "$$" + name + "." + path}
}

func Literal(v interface{}) Expr {
	return Expr{value: v}
}

func Avg(e Expr) Expr {
	return Expr{value: bson.D{{Key: "$avg", Value: e.value}}}
}

func Min(e Expr) Expr {
	return Expr{value: bson.D{{Key: "$min", Value: e.value}}}
}

func EqExpr(a, b Expr) Expr {
	return Expr{value: bson.D{{Key: "$eq", Value: bson.A{a.value, b.value}}}}
}

// FilterArray keeps the elements of input for which cond holds; cond sees
// each element as Var(as).
func FilterArray(input Expr, as string, cond Expr) Expr {
	return Expr{value: bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: input.value},
		{Key: "as", Value: as},
		{Key: "cond", Value: cond.value},
	}}}}
}

// MapArray applies in to every element of input, bound as Var(as).
func MapArray(input Expr, as string, in Expr) Expr {
	return Expr{value: bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: input.value},
		{Key: "as", Value: as},
		{Key: "in", Value: in.value},
	}}}}
}

// Accumulator is a $group accumulator.
type Accumulator struct {
	field string
	value bson.D
}

func AvgOf(field string, e Expr) Accumulator {
	return Accumulator{field: field, value: bson.D{{Key: "$avg", Value: e.value}}}
}

func MinOf(field string, e Expr) Accumulator {
	return Accumulator{field: field, value: bson.D{{Key: "$min", Value: e.value}}}
}

// Pipeline is an ordered list of aggregation stages.
type Pipeline struct {
	stages mongo.Pipeline
}

func NewPipeline() Pipeline {
	return Pipeline{}
}

func (p Pipeline) stage(name string, value interface{}) Pipeline {
	stages := make(mongo.Pipeline, 0, len(p.stages)+1)
	stages = append(stages, p.stages...)
	return Pipeline{stages: append(stages, bson.D{{Key: name, Value: value}})}
}

func (p Pipeline) Project(proj Projection) Pipeline {
	return p.stage("$project", proj.D())
}

func (p Pipeline) Match(f Filter) Pipeline {
	return p.stage("$match", f.D())
}

func (p Pipeline) Sort(s Sort) Pipeline {
	return p.stage("$sort", s.D())
}

func (p Pipeline) Limit(n int64) Pipeline {
	return p.stage("$limit", n)
}

// Unwind emits one document per element of the array at path.
func (p Pipeline) Unwind(path string) Pipeline {
	return p.stage("$unwind", "$"+path)
}

// Group groups by id; a nil id collapses every input document into one group.
func (p Pipeline) Group(id interface{}, accs ...Accumulator) Pipeline {
	doc := bson.D{{Key: "_id", Value: id}}
	for _, a := range accs {
		doc = append(doc, bson.E{Key: a.field, Value: a.value})
	}
	return p.stage("$group", doc)
}

func (p Pipeline) Stages() mongo.Pipeline {
	if p.stages == nil {
		return mongo.Pipeline{}
	}
	return p.stages
}
