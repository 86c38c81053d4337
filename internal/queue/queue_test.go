package queue

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWithoutSubscribersFails(t *testing.T) {
	q := NewInMemoryQueue()
	err := q.Publish(SendTopic, SendJob{RecordID: "r1"})
	assert.Error(t, err)
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	q := NewInMemoryQueue()

	var wg sync.WaitGroup
	wg.Add(1)

	var got SendJob
	require.NoError(t, q.Subscribe(SendTopic, func(payload any) error {
		got = payload.(SendJob)
		wg.Done()
		return nil
	}))

	require.NoError(t, q.Publish(SendTopic, SendJob{RecordID: "r1", CampaignID: "welcome"}))
	wg.Wait()

	assert.Equal(t, "r1", got.RecordID)
	assert.Equal(t, "welcome", got.CampaignID)
}

func TestPublishRetriesFailedHandler(t *testing.T) {
	q := NewInMemoryQueue()

	var mu sync.Mutex
	attempts := 0
	done := make(chan struct{})

	require.NoError(t, q.Subscribe(SendTopic, func(payload any) error {
		mu.Lock()
		defer mu.Unlock()
		attempts++
		if attempts == 1 {
			return errors.New("transient")
		}
		close(done)
		return nil
	}))

	require.NoError(t, q.Publish(SendTopic, SendJob{RecordID: "r1"}))
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, attempts)
}

func TestDeliverChannels(t *testing.T) {
	assert.NoError(t, Deliver(SendJob{Channel: "email", Recipient: "a@b.com", Subject: "hi"}))
	assert.NoError(t, Deliver(SendJob{Channel: "sms", Recipient: "+35799123456", Body: "hi"}))
	assert.NoError(t, Deliver(SendJob{Channel: "in_app", InvitationID: "INV-1"}))
	assert.NoError(t, Deliver(SendJob{Channel: "push", InvitationID: "INV-1"}))

	assert.Error(t, Deliver(SendJob{Channel: "sms"}), "sms without phone must fail")
	assert.Error(t, Deliver(SendJob{Channel: "carrier_pigeon"}))
}
