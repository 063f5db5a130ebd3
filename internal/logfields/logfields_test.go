package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpers(t *testing.T) {
	assert.Equal(t, KeyAttemptID, AttemptID("x").Key)
	assert.Equal(t, "alice", Username("alice").Value.String())
	assert.Equal(t, int64(3), Count(3).Value.Int64())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
	assert.Equal(t, "", Error(nil).Value.String())
}
