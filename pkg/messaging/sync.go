package messaging

import (
	"fmt"

	"github.com/matst80/slask-layer/pkg/catalog"
	"github.com/matst80/slask-layer/pkg/common"
	"github.com/matst80/slask-layer/pkg/common/jsoncompat"
	amqp "github.com/rabbitmq/amqp091-go"
)

type ChangeHandler interface {
	HandleChanges(changes []catalog.AttributeChange)
}

func DecodeChanges(body []byte) ([]catalog.AttributeChange, error) {
	var changes []catalog.AttributeChange
	if err := jsoncompat.Unmarshal(body, &changes); err != nil {
		return nil, fmt.Errorf("decode attribute changes: %w", err)
	}
	return changes, nil
}

// AttributeChangeHandler queues decoded changes so bursts are applied to
// the handler in batches.
func AttributeChangeHandler(queue *common.QueueHandler[catalog.AttributeChange]) func(amqp.Delivery) error {
	return func(d amqp.Delivery) error {
		changes, err := DecodeChanges(d.Body)
		if err != nil {
			return err
		}
		queue.Add(changes...)
		return nil
	}
}

// ListenForAttributeChanges wires the attribute change topic to h and
// returns the queue so the caller can close it on shutdown.
func ListenForAttributeChanges(conn *amqp.Connection, prefix string, h ChangeHandler) (*common.QueueHandler[catalog.AttributeChange], error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := DefineTopic(ch, prefix, AttributesChanged); err != nil {
		ch.Close()
		return nil, err
	}
	queue := common.NewQueueHandler(h.HandleChanges, 100)
	if err := ListenToTopic(ch, prefix, AttributesChanged, AttributeChangeHandler(queue)); err != nil {
		queue.Close()
		ch.Close()
		return nil, err
	}
	return queue, nil
}

func SendAttributeChanges(conn *amqp.Connection, prefix string, changes []catalog.AttributeChange) error {
	return SendChange(conn, prefix, AttributesChanged, changes)
}
