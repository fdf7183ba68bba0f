package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal(t *testing.T) {
	t.Run("plain calendar day", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"1990-01-01"`), &d))
		assert.Equal(t, time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), d.Time)
	})

	t.Run("RFC 3339 is truncated to the day", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2024-05-06T13:45:00Z"`), &d))
		assert.Equal(t, "2024-05-06", d.String())
	})

	t.Run("null and empty are zero", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
		assert.Nil(t, d.Ptr())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"01/02/1990"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`12`), &d))
	})
}

func TestDateMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		Posted Date `json:"postedDate"`
		Empty  Date `json:"empty"`
	}{Posted: NewDate(time.Date(1990, 1, 1, 22, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"postedDate":"1990-01-01","empty":null}`, string(out))
}

func TestJobStatusValid(t *testing.T) {
	assert.True(t, JobStatusOpen.Valid())
	assert.True(t, JobStatusClosed.Valid())
	assert.False(t, JobStatus("archived").Valid())
}
