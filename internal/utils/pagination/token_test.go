package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	for _, position := range []int64{0, 1, 42, 1 << 40} {
		token := EncodeToken(position)
		assert.NotEmpty(t, token, "Token should not be empty")

		decoded, err := DecodeToken(token)
		require.NoError(t, err, "Decoding should not return an error")
		assert.Equal(t, position, decoded)
	}
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, err := DecodeToken("not base64 !!")
	assert.Error(t, err)

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("before|3")))
	assert.Error(t, err, "wrong prefix")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("after|x")))
	assert.Error(t, err, "non numeric position")

	_, err = DecodeToken(base64.URLEncoding.EncodeToString([]byte("after|-1")))
	assert.Error(t, err, "negative position")
}

func TestNextToken(t *testing.T) {
	assert.Nil(t, NextToken(3, 10, 7), "short page has no successor")
	assert.Nil(t, NextToken(0, 0, 0))

	token := NextToken(10, 10, 7)
	require.NotNil(t, token)
	position, err := DecodeToken(*token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), position)
}
