package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCuisines(t *testing.T) {
	got := parseCuisines(map[string][]string{
		"cuisines[10]": {"Vegan"},
		"cuisines[2]":  {" Thai "},
		"cuisines[0]":  {"Italian"},
		"cuisines":     {"Greek"},
		"other":        {"x"},
	})
	assert.Equal(t, []string{"Greek", "Italian", "Thai", "Vegan"}, got)
}

func TestParseMenuItems(t *testing.T) {
	items, err := parseMenuItems(map[string][]string{
		"menuItems[1][name]":  {"Cola"},
		"menuItems[1][price]": {"3"},
		"menuItems[0][_id]":   {"m-1"},
		"menuItems[0][name]":  {"Pizza"},
		"menuItems[0][price]": {"12.5"},
		"menuItems[0][extra]": {"ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, []MenuItemForm{
		{ID: "m-1", Name: "Pizza", Price: 12.5},
		{Name: "Cola", Price: 3},
	}, items)

	_, err = parseMenuItems(map[string][]string{"menuItems[0][price]": {"abc"}})
	assert.Error(t, err)
}

func TestParseMenuItems_PriceRequired(t *testing.T) {
	_, err := parseMenuItems(map[string][]string{
		"menuItems[0][name]":  {"Pizza"},
		"menuItems[0][price]": {"12.5"},
		"menuItems[1][name]":  {"Cola"},
	})
	assert.EqualError(t, err, "menuItems[1].price is required")

	_, err = parseMenuItems(map[string][]string{
		"menuItems[0][name]":  {"Pizza"},
		"menuItems[0][price]": {"  "},
	})
	assert.EqualError(t, err, "menuItems[0].price is required")

	items, err := parseMenuItems(map[string][]string{
		"menuItems[0][name]":  {"Water"},
		"menuItems[0][price]": {"0"},
	})
	require.NoError(t, err)
	assert.Equal(t, []MenuItemForm{{Name: "Water", Price: 0}}, items)
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Quantity
		wantErr bool
	}{
		{in: `3`, want: 3},
		{in: `"4"`, want: 4},
		{in: `2.0`, want: 2},
		{in: `null`, want: 0},
		{in: `2.5`, wantErr: true},
		{in: `"many"`, wantErr: true},
		{in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var q Quantity
			err := json.Unmarshal([]byte(tt.in), &q)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
		})
	}
}
