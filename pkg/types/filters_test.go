package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayerStateHasField(t *testing.T) {
	state := NewLayerState(
		Selection{Code: "color", Values: []string{"red"}},
		Selection{Code: "price", Range: &Range{Min: 10, Max: 20}},
	)
	assert.True(t, state.HasField("color"))
	assert.True(t, state.HasField("price"))
	assert.False(t, state.HasField("size"))
	assert.Equal(t, 2, state.Len())
}

func TestLayerStateSelectAfterLookup(t *testing.T) {
	state := NewLayerState(Selection{Code: "color", Values: []string{"red"}})
	assert.False(t, state.HasField("brand"))

	state.Select(Selection{Code: "brand", Values: []string{"acme"}})
	assert.True(t, state.HasField("brand"))
	assert.True(t, state.HasField("color"))
	assert.Equal(t, 2, state.Len())
}

func TestLayerStateWithOut(t *testing.T) {
	state := NewLayerState(
		Selection{Code: "color", Values: []string{"red"}},
		Selection{Code: "brand", Values: []string{"acme"}},
		Selection{Code: "color", Values: []string{"blue"}},
	)
	without := state.WithOut("color")
	assert.Equal(t, 1, without.Len())
	assert.Equal(t, "brand", without.Selected[0].Code)
	assert.Equal(t, 3, state.Len())
}

func TestNilLayerState(t *testing.T) {
	var state *LayerState
	assert.Equal(t, 0, state.Len())
	assert.False(t, state.HasField("color"))
	assert.Equal(t, 0, state.WithOut("color").Len())
}

func TestFilterTypeNames(t *testing.T) {
	assert.Equal(t, "attribute", GenericFilter.String())
	assert.Equal(t, "price", PriceFilter.String())
	parsed, err := ParseFilterType(" Rating ")
	assert.NoError(t, err)
	assert.Equal(t, RatingFilter, parsed)
	_, err = ParseFilterType("swatch")
	assert.Error(t, err)
}
