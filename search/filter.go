// Package search builds typed restaurant filters. Store packages translate a
// Filter into their own query language.
package search

import (
	"strconv"
	"strings"
)

const PageSize = 10

type Field string

const (
	FieldCity           Field = "city"
	FieldRestaurantName Field = "restaurantName"
	FieldCuisines       Field = "cuisines"
)

// IsList reports whether the field holds a list of values.
func (f Field) IsList() bool {
	return f == FieldCuisines
}

type Operator int

const (
	// Contains matches a scalar field containing Value, case-insensitively.
	Contains Operator = iota
	// ElementContains matches a list field with at least one element
	// containing Value, case-insensitively.
	ElementContains
)

// Predicate is a single (field, operator, value) test.
type Predicate struct {
	Field    Field
	Operator Operator
	Value    string
}

// Clause is satisfied when any of its predicates is.
type Clause struct {
	AnyOf []Predicate
}

// Filter is satisfied when every clause is.
type Filter struct {
	Clauses []Clause
}

// Match builds the predicate for field, picking the operator by field shape.
func Match(field Field, value string) Predicate {
	op := Contains
	if field.IsList() {
		op = ElementContains
	}
	return Predicate{Field: field, Operator: op, Value: value}
}

type Builder struct {
	clauses []Clause
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Where adds a clause requiring field to match value.
func (b *Builder) Where(field Field, value string) *Builder {
	return b.WhereAny(Match(field, value))
}

// WhereAny adds a clause requiring at least one of preds.
func (b *Builder) WhereAny(preds ...Predicate) *Builder {
	if len(preds) == 0 {
		return b
	}
	b.clauses = append(b.clauses, Clause{AnyOf: preds})
	return b
}

func (b *Builder) Build() Filter {
	clauses := make([]Clause, len(b.clauses))
	copy(clauses, b.clauses)
	return Filter{Clauses: clauses}
}

type SortField string

const (
	SortLastUpdated           SortField = "lastUpdated"
	SortDeliveryPrice         SortField = "deliveryPrice"
	SortEstimatedDeliveryTime SortField = "estimatedDeliveryTime"
)

// ParseSort falls back to lastUpdated for anything unrecognised.
func ParseSort(s string) SortField {
	switch SortField(s) {
	case SortDeliveryPrice, SortEstimatedDeliveryTime:
		return SortField(s)
	default:
		return SortLastUpdated
	}
}

// Query is a filter plus ascending sort and a page window.
type Query struct {
	Filter Filter
	Sort   SortField
	Skip   int
	Limit  int
}

// Params are the raw search inputs from the client.
type Params struct {
	SearchQuery      string
	SelectedCuisines string
	SortOption       string
	Page             string
}

// CityFilter matches restaurants whose city contains city.
func CityFilter(city string) Filter {
	return NewBuilder().Where(FieldCity, city).Build()
}

// BuildFilter combines city, cuisine and free-text constraints:
// city AND every cuisine AND (name OR any cuisine matches the text).
func BuildFilter(city string, p Params) Filter {
	b := NewBuilder().Where(FieldCity, city)
	for _, cuisine := range SplitCuisines(p.SelectedCuisines) {
		b.Where(FieldCuisines, cuisine)
	}
	if q := strings.TrimSpace(p.SearchQuery); q != "" {
		b.WhereAny(Match(FieldRestaurantName, q), Match(FieldCuisines, q))
	}
	return b.Build()
}

// SplitCuisines splits a comma separated list, dropping blanks.
func SplitCuisines(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParsePage returns a 1-based page, defaulting to 1.
func ParsePage(s string) int {
	page, err := strconv.Atoi(s)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// PageCount is ceil(total / PageSize).
func PageCount(total int64) int64 {
	return (total + PageSize - 1) / PageSize
}

// NewQuery builds the page window for a 1-based page.
func NewQuery(f Filter, sort SortField, page int) Query {
	return Query{
		Filter: f,
		Sort:   sort,
		Skip:   (page - 1) * PageSize,
		Limit:  PageSize,
	}
}
