package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Limit(t *testing.T) {
	assert.Equal(t, DefaultMaxResults, PageRequest{}.Limit())
	assert.Equal(t, 10, PageRequest{MaxResults: 10}.Limit())
	assert.Equal(t, MaxMaxResults, PageRequest{MaxResults: 5000}.Limit())
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{}.Offset())
	assert.Equal(t, 0, PageRequest{PageToken: "not-base64!"}.Offset())
	assert.Equal(t, 25, PageRequest{PageToken: EncodePageToken(25)}.Offset())
}

func TestNextPageToken(t *testing.T) {
	// More rows remain: token points at the next offset.
	token := NextPageToken(0, 10, 25)
	assert.Equal(t, 10, PageRequest{PageToken: token}.Offset())

	// Last page: no token.
	assert.Empty(t, NextPageToken(20, 10, 25))
	assert.Empty(t, NextPageToken(0, 10, 10))
}
