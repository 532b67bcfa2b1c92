package tailscale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStatus = `{
  "Self": {"UserID": 42, "DNSName": "laptop.tail1234.ts.net.", "HostName": "laptop", "Online": true},
  "Peer": {
    "nodekey:a": {"UserID": 42, "DNSName": "desktop.tail1234.ts.net.", "Online": true},
    "nodekey:b": {"UserID": 7, "DNSName": "friend.tail1234.ts.net.", "Online": true}
  },
  "User": {
    "42": {"ID": 42, "LoginName": "me@example.com", "DisplayName": "Me"}
  }
}`

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus([]byte(sampleStatus))
	require.NoError(t, err)

	assert.Equal(t, int64(42), status.SelfUserID())
	assert.Equal(t, "me@example.com", status.SelfLoginName())
	require.Len(t, status.Peer, 2)
	assert.Equal(t, "desktop.tail1234.ts.net.", status.Peer["nodekey:a"].DNSName)
	require.NotNil(t, status.Peer["nodekey:b"].UserID)
	assert.Equal(t, int64(7), *status.Peer["nodekey:b"].UserID)
}

func TestParseStatus_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "malformed json", input: `{"Self":`},
		{name: "missing self", input: `{"Peer":{}}`, target: ErrMissingSelf},
		{name: "self without user id", input: `{"Self":{"DNSName":"x."}}`, target: ErrMissingUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatus([]byte(tt.input))
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}

func TestSelfLoginName_NoProfiles(t *testing.T) {
	status, err := ParseStatus([]byte(`{"Self":{"UserID":1}}`))
	require.NoError(t, err)
	assert.Empty(t, status.SelfLoginName())
}
