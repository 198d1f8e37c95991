package service

import (
	"context"
	"encoding/json"

	"notetaking-be/internal/pkg/logger"
	"notetaking-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains note lifecycle events: every event lands in the
// audit log, and tag-mutating events flush the tag list cache.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	tagService ITagService
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	tagService ITagService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		tagService: tagService,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var event events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.log.Warn("consumer", "discarding malformed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.log.Info("audit", event.Type, event.Data)

	// New notes may have created tag rows.
	if event.Type == events.NoteCreated {
		cs.tagService.FlushCache()
	}
}
