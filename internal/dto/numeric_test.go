package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric_UnmarshalJSON(t *testing.T) {
	cases := map[string]Numeric{
		`{"level_id": 7}`:       "7",
		`{"level_id": "7"}`:     "7",
		`{"level_id": "abc"}`:   "abc",
		`{"level_id": true}`:    "true",
		`{"level_id": [1]}`:     "[1]",
		`{"level_id": {"a":1}}`: `{"a":1}`,
		`{"level_id": null}`:    "",
	}
	for body, want := range cases {
		t.Run(body, func(t *testing.T) {
			var req CreateTaskRequest
			require.NoError(t, json.Unmarshal([]byte(body), &req))
			assert.Equal(t, want, req.LevelID)
		})
	}
}

func TestNumeric_PointerStaysNilOnNull(t *testing.T) {
	var req UpdateLevelRequest
	require.NoError(t, json.Unmarshal([]byte(`{"number": null, "subject_id": 3}`), &req))
	assert.Nil(t, req.Number)
	require.NotNil(t, req.SubjectID)
	assert.Equal(t, Numeric("3"), *req.SubjectID)
}
