package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteResult(t *testing.T) {
	ok := WriteResult{}
	assert.True(t, ok.OK())
	assert.True(t, ok.LocalCommitted())
	assert.NoError(t, ok.Err())

	remoteDown := errors.New("down")
	partial := WriteResult{Remote: remoteDown}
	assert.False(t, partial.OK())
	assert.True(t, partial.LocalCommitted())
	assert.ErrorIs(t, partial.Err(), remoteDown)
	assert.Contains(t, partial.Err().Error(), "remote: down")

	disk := errors.New("disk")
	failed := localFailure(disk)
	assert.False(t, failed.LocalCommitted())
	assert.ErrorIs(t, failed.Err(), disk)
	assert.ErrorIs(t, failed.Err(), ErrSkipped)
}
