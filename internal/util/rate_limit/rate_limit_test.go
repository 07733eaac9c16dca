package rate_limit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CheckRateLimit_WithinLimits_AllowsRequest(t *testing.T) {
	rateLimiter := NewRateLimiter("rate_limit:test:")
	key := uuid.NewString()
	_ = rateLimiter.ResetRateLimit(key)

	result, err := rateLimiter.CheckRateLimit(key, 60, 20)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 19, result.Remaining)
	assert.Equal(t, 0, result.RetryAfterSec)
	assert.True(t, result.ResetTime.After(time.Now().Add(-time.Second)))
}

func Test_CheckRateLimit_ExceedsBurstLimit_DeniesRequest(t *testing.T) {
	rateLimiter := NewRateLimiter("rate_limit:test:")
	key := uuid.NewString()
	_ = rateLimiter.ResetRateLimit(key)

	burstLimit := 3
	for i := 0; i < burstLimit; i++ {
		result, err := rateLimiter.CheckRateLimit(key, 1, burstLimit)
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "Request %d should be allowed", i+1)
	}

	result, err := rateLimiter.CheckRateLimit(key, 1, burstLimit)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Equal(t, 60, result.RetryAfterSec)
	assert.True(t, result.ResetTime.After(time.Now()))
}

func Test_CheckRateLimit_DifferentKeys_HaveSeparateBuckets(t *testing.T) {
	rateLimiter := NewRateLimiter("rate_limit:test:")
	firstKey := uuid.NewString()
	secondKey := uuid.NewString()

	result, err := rateLimiter.CheckRateLimit(firstKey, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(firstKey, 1, 1)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(secondKey, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_ResetRateLimit_AfterExhaustion_RestoresBucket(t *testing.T) {
	rateLimiter := NewRateLimiter("rate_limit:test:")
	key := uuid.NewString()

	_, _ = rateLimiter.CheckRateLimit(key, 1, 1)
	result, err := rateLimiter.CheckRateLimit(key, 1, 1)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	assert.NoError(t, rateLimiter.ResetRateLimit(key))

	result, err = rateLimiter.CheckRateLimit(key, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}
