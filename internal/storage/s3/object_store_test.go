package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pothen/internal/domain"
	"pothen/internal/storage/s3"
)

func TestParseURI(t *testing.T) {
	bucket, key, err := s3.ParseURI("s3://declarations/2023/pothen_2023.pdf")

	require.NoError(t, err)
	assert.Equal(t, "declarations", bucket)
	assert.Equal(t, "2023/pothen_2023.pdf", key)
}

func TestParseURI_Invalid(t *testing.T) {
	for _, uri := range []string{"/tmp/file.pdf", "s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, err := s3.ParseURI(uri)
		assert.ErrorIs(t, err, domain.ErrInvalidSource, uri)
	}
}

func TestIsURI(t *testing.T) {
	assert.True(t, s3.IsURI("s3://b/k"))
	assert.False(t, s3.IsURI("./data/s3.pdf"))
}
