package search

import (
	"fmt"

	"github.com/matst80/slask-layer/pkg/types"
)

type AggregationKind uint8

const (
	TermsAggregation AggregationKind = iota + 1
	HistogramAggregation
	RangeAggregation
)

type AggregationRange struct {
	Key  string   `json:"key"`
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// FacetCondition is the request fragment asking the backend to aggregate
// one field. Buckets are filled in when the query has been executed.
type FacetCondition struct {
	Name        string             `json:"name"`
	Field       string             `json:"field"`
	Kind        AggregationKind    `json:"kind"`
	Size        int                `json:"size,omitempty"`
	Interval    float64            `json:"interval,omitempty"`
	MinDocCount int                `json:"minDocCount,omitempty"`
	Ranges      []AggregationRange `json:"ranges,omitempty"`
	buckets     []Bucket
	loaded      bool
}

func (c *FacetCondition) Buckets() []Bucket {
	return c.buckets
}

func (c *FacetCondition) IsLoaded() bool {
	return c.loaded
}

// ItemsCount is the number of buckets holding at least one document.
func (c *FacetCondition) ItemsCount() int {
	count := 0
	for _, b := range c.buckets {
		if b.Count > 0 {
			count++
		}
	}
	return count
}

func (c *FacetCondition) setBuckets(buckets []Bucket) {
	c.buckets = buckets
	c.loaded = true
}

// Clause restricts the result set. Either Values or Range is used.
type Clause struct {
	Field  string       `json:"field"`
	Values []string     `json:"values,omitempty"`
	Range  *types.Range `json:"range,omitempty"`
}

// Query is the per request search composed by the layer. Facets must be
// attached before the query is sealed for execution.
type Query struct {
	Text            string
	SearchOnOptions bool
	Page            int
	PageSize        int
	clauses         []Clause
	facets          []*FacetCondition
	names           map[string]*FacetCondition
	sealed          bool
}

func NewQuery(text string) *Query {
	return &Query{
		Text:     text,
		PageSize: 40,
		names:    make(map[string]*FacetCondition),
	}
}

func (q *Query) AddFacet(c *FacetCondition) error {
	if q.sealed {
		return &types.ConfigurationError{Filter: c.Name, Err: types.ErrQueryExecuted}
	}
	if q.names == nil {
		q.names = make(map[string]*FacetCondition)
	}
	if _, found := q.names[c.Name]; found {
		return &types.ConfigurationError{Filter: c.Name, Err: types.ErrDuplicateFilter}
	}
	q.names[c.Name] = c
	q.facets = append(q.facets, c)
	return nil
}

func (q *Query) AddClause(c Clause) error {
	if q.sealed {
		return &types.ConfigurationError{Filter: c.Field, Err: types.ErrQueryExecuted}
	}
	q.clauses = append(q.clauses, c)
	return nil
}

func (q *Query) Facet(name string) (*FacetCondition, bool) {
	c, ok := q.names[name]
	return c, ok
}

func (q *Query) Facets() []*FacetCondition {
	return q.facets
}

func (q *Query) Clauses() []Clause {
	return q.clauses
}

func (q *Query) Seal() {
	q.sealed = true
}

func (q *Query) Sealed() bool {
	return q.sealed
}

func (q *Query) String() string {
	return fmt.Sprintf("query %q facets=%d clauses=%d", q.Text, len(q.facets), len(q.clauses))
}

// LoadedCondition returns a condition that already holds its buckets, for
// panels that are not backed by a search query.
func LoadedCondition(name string, buckets []Bucket) *FacetCondition {
	c := &FacetCondition{Name: name, Kind: TermsAggregation}
	c.setBuckets(buckets)
	return c
}
