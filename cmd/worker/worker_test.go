package main

import (
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
)

func TestNextRetry(t *testing.T) {
	// First failure carries no header yet.
	next, ok := nextRetry(nil)
	assert.True(t, ok)
	assert.Equal(t, int32(1), next)

	next, ok = nextRetry(amqp.Table{retryCountHeader: int32(1)})
	assert.True(t, ok)
	assert.Equal(t, int32(2), next)

	// A garbage header value counts as zero attempts.
	next, ok = nextRetry(amqp.Table{retryCountHeader: "two"})
	assert.True(t, ok)
	assert.Equal(t, int32(1), next)

	_, ok = nextRetry(amqp.Table{retryCountHeader: int32(maxDeliveryRetries)})
	assert.False(t, ok, "exhausted deliveries must not be republished")
}
