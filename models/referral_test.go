package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPriority(t *testing.T) {
	for _, p := range []PriorityType{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		assert.True(t, ValidPriority(p), string(p))
	}
	assert.False(t, ValidPriority(""))
	assert.False(t, ValidPriority("EXTREME"))
	assert.False(t, ValidPriority("low")) // case-sensitive
}

func TestReferralEmailKeyIsCapitalized(t *testing.T) {
	raw, err := json.Marshal(Referral{Email: "pat@example.com"})
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "Email")
	assert.NotContains(t, fields, "email")
}

func TestStringListRoundTrip(t *testing.T) {
	var l StringList
	raw, err := l.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	v, err := StringList{"a", "b"}.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, StringList{"a", "b"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Equal(t, StringList{}, scanned)
}
