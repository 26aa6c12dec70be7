package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StringList
	}{
		{"json array", `["Action","RPG"]`, StringList{"Action", "RPG"}},
		{"comma-separated string", `"Action, RPG"`, StringList{"Action", "RPG"}},
		{"single value string", `"Valve"`, StringList{"Valve"}},
		{"blank entries dropped", `"Action,,  ,RPG"`, StringList{"Action", "RPG"}},
		{"empty string", `""`, StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCount_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Count
	}{
		{"number", `42`, 42},
		{"numeric string", `"42"`, 42},
		{"float truncates", `80.5`, 80},
		{"float string truncates", `"80.9"`, 80},
		{"malformed defaults to zero", `"lots"`, 0},
		{"negative defaults to zero", `-5`, 0},
		{"null defaults to zero", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Count
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrice_Unmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue float64
	}{
		{"number", `9.99`, true, 9.99},
		{"numeric string", `"9.99"`, true, 9.99},
		{"zero is a real price", `0`, true, 0},
		{"null is the null price", `null`, false, 0},
		{"malformed is the null price", `"Free"`, false, 0},
		{"negative is the null price", `-1`, false, 0},
		{"NaN is the null price", `"NaN"`, false, 0},
		{"infinity is the null price", `"Inf"`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Price
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))

			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.wantValue, got.Value)
				require.NotNil(t, got.Ptr())
				assert.Equal(t, tt.wantValue, *got.Ptr())
			} else {
				assert.Nil(t, got.Ptr())
			}
		})
	}
}

func TestPrice_MarshalRoundTrip(t *testing.T) {
	null, err := json.Marshal(Price{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(null))

	set, err := json.Marshal(Price{Valid: true, Value: 4.5})
	require.NoError(t, err)
	assert.Equal(t, "4.5", string(set))
}
