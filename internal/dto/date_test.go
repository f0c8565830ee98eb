package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/filmorate/filmorate_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_MarshalJSON(t *testing.T) {
	d := dto.NewDate(time.Date(1967, 3, 25, 15, 4, 5, 0, time.UTC))

	b, err := json.Marshal(d)

	require.NoError(t, err)
	assert.Equal(t, `"1967-03-25"`, string(b))
}

func TestDate_MarshalJSON_ZeroIsNull(t *testing.T) {
	var d dto.Date

	b, err := json.Marshal(d)

	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d dto.Date

	require.NoError(t, json.Unmarshal([]byte(`"1946-08-20"`), &d))

	assert.Equal(t, 1946, d.Year())
	assert.Equal(t, time.August, d.Month())
	assert.Equal(t, 20, d.Day())
}

func TestDate_UnmarshalJSON_RejectsOtherLayouts(t *testing.T) {
	var d dto.Date

	err := json.Unmarshal([]byte(`"20.08.1946"`), &d)

	assert.Error(t, err)
}
