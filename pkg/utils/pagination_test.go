package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampLimit(0))
	assert.Equal(t, DefaultPageSize, ClampLimit(-5))
	assert.Equal(t, DefaultPageSize, ClampLimit(MaxPageSize+1))
	assert.Equal(t, 50, ClampLimit(50))
	assert.Equal(t, MaxPageSize, ClampLimit(MaxPageSize))
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0, ClampOffset(-1))
	assert.Equal(t, 0, ClampOffset(0))
	assert.Equal(t, 40, ClampOffset(40))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 5, TotalPages(100, 20))
	assert.Equal(t, 6, TotalPages(101, 20))
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(15, 0))
}
