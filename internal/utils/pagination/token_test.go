package pagination_test

import (
	"testing"
	"time"

	"github.com/ecclesiahq/ecclesia-backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	txnDate := time.Date(2025, time.April, 12, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, time.April, 12, 9, 30, 15, 123456789, time.UTC)

	token := pagination.EncodeToken(txnDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, txnDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // "hello", no separator
	assert.Error(t, err)
}

func TestDateBasedTokenRoundTrip(t *testing.T) {
	date := time.Date(2025, time.July, 1, 18, 0, 0, 0, time.UTC)
	token := pagination.EncodeDateBasedToken(date)
	got, err := pagination.DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}
