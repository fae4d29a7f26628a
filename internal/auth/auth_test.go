package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"br.com.tucano.courier/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	assert := assert.New(t)
	tokens := New("test-signing-key", time.Hour)

	signed, err := tokens.Issue("acc-1")
	assert.Nil(err)
	assert.NotEmpty(signed)

	accountID, err := tokens.Parse(signed)
	assert.Nil(err)
	assert.Equal(model.AccountID("acc-1"), accountID)
}

func TestParseRejectsBadTokens(t *testing.T) {
	assert := assert.New(t)
	tokens := New("test-signing-key", time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.NotNil(err)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := New("another-key", time.Hour)
		signed, err := other.Issue("acc-1")
		assert.Nil(err)

		_, err = tokens.Parse(signed)
		assert.NotNil(err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := New("test-signing-key", -time.Hour)
		signed, err := expired.Issue("acc-1")
		assert.Nil(err)

		_, err = tokens.Parse(signed)
		assert.NotNil(err)
	})
}
