package types

import (
	"fmt"
	"strings"
)

type FilterType uint8

const (
	GenericFilter FilterType = iota
	CategoryFilter
	PriceFilter
	RatingFilter
	BooleanFilter
	DecimalFilter
)

const (
	FilterNameSuffix   = "_filter"
	CategoryFilterName = "category" + FilterNameSuffix
)

var filterTypeNames = map[FilterType]string{
	GenericFilter:  "attribute",
	CategoryFilter: "category",
	PriceFilter:    "price",
	RatingFilter:   "rating",
	BooleanFilter:  "boolean",
	DecimalFilter:  "decimal",
}

func (t FilterType) String() string {
	if name, ok := filterTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FilterType(%d)", uint8(t))
}

func ParseFilterType(s string) (FilterType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range filterTypeNames {
		if name == s {
			return t, nil
		}
	}
	return GenericFilter, fmt.Errorf("unknown filter type %q", s)
}

func (t FilterType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *FilterType) UnmarshalText(text []byte) error {
	parsed, err := ParseFilterType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
