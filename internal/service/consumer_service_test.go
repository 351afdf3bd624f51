package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/KhadijaXD/NoteNova/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerInvalidatesOnNoteChange(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ai := &fakeAiService{}

	consumer := NewConsumerService(pubSub, "note.changed", ai, nopLogger{})
	publisher := NewPublisherService(pubSub, "note.changed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	payload, err := json.Marshal(dto.NoteChangedMessage{
		NoteId:      uuid.New(),
		ContentHash: "stale-hash",
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		hashes := ai.invalidatedHashes()
		return len(hashes) == 1 && hashes[0] == "stale-hash"
	}, time.Second, 10*time.Millisecond)
}

func TestConsumerAcksMalformedMessages(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	ai := &fakeAiService{}

	consumer := NewConsumerService(pubSub, "note.changed", ai, nopLogger{})
	publisher := NewPublisherService(pubSub, "note.changed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, publisher.Publish(ctx, []byte("not json")))

	// a broken message must not wedge the subscription
	payload, err := json.Marshal(dto.NoteChangedMessage{NoteId: uuid.New(), ContentHash: "next"})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	assert.Eventually(t, func() bool {
		hashes := ai.invalidatedHashes()
		return len(hashes) == 1 && hashes[0] == "next"
	}, time.Second, 10*time.Millisecond)
}
