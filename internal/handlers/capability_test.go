package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	assert := assert.New(t)

	assert.True(CanAccess("acc-1", "acc-1"))
	assert.False(CanAccess("acc-1", "acc-2"))
	assert.False(CanAccess("", "acc-1"))
	assert.False(CanAccess("", ""))
}
