package elastic

import (
	"github.com/matst80/slask-layer/pkg/search"
)

// BuildRequestBody renders the composed query as an Elasticsearch search
// body: bool query with the selection clauses as filters and one
// aggregation per attached facet, keyed by filter name.
func BuildRequestBody(q *search.Query, fields Fields) map[string]interface{} {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 40
	}
	body := map[string]interface{}{
		"size":  pageSize,
		"from":  q.Page * pageSize,
		"query": buildQuery(q, fields),
	}

	if facets := q.Facets(); len(facets) > 0 {
		aggs := make(map[string]interface{}, len(facets))
		for _, facet := range facets {
			aggs[facet.Name] = buildAggregation(facet)
		}
		body["aggs"] = aggs
	}
	return body
}

func buildQuery(q *search.Query, fields Fields) map[string]interface{} {
	var must []map[string]interface{}
	if q.Text == "" {
		must = []map[string]interface{}{
			{"match_all": map[string]interface{}{}},
		}
	} else {
		searchFields := []string{fields.Fulltext}
		if q.SearchOnOptions && fields.Options != "" {
			searchFields = append(searchFields, fields.Options)
		}
		must = []map[string]interface{}{
			{
				"multi_match": map[string]interface{}{
					"query":    q.Text,
					"fields":   searchFields,
					"operator": "and",
				},
			},
		}
	}

	boolQuery := map[string]interface{}{
		"must": must,
	}
	if filters := buildFilterQueries(q.Clauses()); len(filters) > 0 {
		boolQuery["filter"] = filters
	}
	return map[string]interface{}{
		"bool": boolQuery,
	}
}

func buildFilterQueries(clauses []search.Clause) []map[string]interface{} {
	var filterQueries []map[string]interface{}
	for _, clause := range clauses {
		if clause.Range != nil {
			filterQueries = append(filterQueries, map[string]interface{}{
				"range": map[string]interface{}{
					clause.Field: map[string]interface{}{
						"gte": clause.Range.Min,
						"lte": clause.Range.Max,
					},
				},
			})
			continue
		}
		if len(clause.Values) == 0 {
			continue
		}
		filterQueries = append(filterQueries, map[string]interface{}{
			"terms": map[string]interface{}{
				clause.Field: clause.Values,
			},
		})
	}
	return filterQueries
}

func buildAggregation(facet *search.FacetCondition) map[string]interface{} {
	switch facet.Kind {
	case search.HistogramAggregation:
		return map[string]interface{}{
			"histogram": map[string]interface{}{
				"field":         facet.Field,
				"interval":      facet.Interval,
				"min_doc_count": facet.MinDocCount,
			},
		}
	case search.RangeAggregation:
		ranges := make([]map[string]interface{}, 0, len(facet.Ranges))
		for _, r := range facet.Ranges {
			entry := map[string]interface{}{"key": r.Key}
			if r.From != nil {
				entry["from"] = *r.From
			}
			if r.To != nil {
				entry["to"] = *r.To
			}
			ranges = append(ranges, entry)
		}
		return map[string]interface{}{
			"range": map[string]interface{}{
				"field":  facet.Field,
				"ranges": ranges,
			},
		}
	default:
		return map[string]interface{}{
			"terms": map[string]interface{}{
				"field":         facet.Field,
				"size":          facet.Size,
				"min_doc_count": facet.MinDocCount,
			},
		}
	}
}
