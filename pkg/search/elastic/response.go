package elastic

import (
	"fmt"

	"github.com/matst80/slask-layer/pkg/common/jsoncompat"
	"github.com/matst80/slask-layer/pkg/search"
	"github.com/spf13/cast"
)

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
	} `json:"hits"`
	Aggregations map[string]facetAggregation `json:"aggregations"`
}

type facetAggregation struct {
	Buckets []facetBucket `json:"buckets"`
}

type facetBucket struct {
	Key         interface{} `json:"key"`
	KeyAsString string      `json:"key_as_string"`
	DocCount    int         `json:"doc_count"`
}

func (b facetBucket) key() string {
	if b.KeyAsString != "" {
		return b.KeyAsString
	}
	return cast.ToString(b.Key)
}

// ParseResponse reads the total and the buckets of the facets attached to q.
// Aggregations the query did not ask for are ignored.
func ParseResponse(data []byte, q *search.Query) (*search.Response, error) {
	var raw searchResponse
	if err := jsoncompat.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing response body: %w", err)
	}

	res := &search.Response{
		Total:        raw.Hits.Total.Value,
		Aggregations: make(map[string][]search.Bucket, len(raw.Aggregations)),
	}
	for _, facet := range q.Facets() {
		agg, ok := raw.Aggregations[facet.Name]
		if !ok {
			continue
		}
		buckets := make([]search.Bucket, 0, len(agg.Buckets))
		for _, b := range agg.Buckets {
			buckets = append(buckets, search.Bucket{
				Key:   b.key(),
				Count: b.DocCount,
			})
		}
		res.Aggregations[facet.Name] = buckets
	}
	return res, nil
}
