package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// DefaultQueue is the broker queue notifications land on
const DefaultQueue = "job_match_notifications"

// AMQPDispatcher publishes notifications as persistent JSON messages
// on a broker queue
type AMQPDispatcher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewAMQPDispatcher connects to the broker and declares the queue.
// An empty queue name falls back to DefaultQueue.
func NewAMQPDispatcher(url, queue string) (*AMQPDispatcher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %q: %w", queue, err)
	}

	return &AMQPDispatcher{conn: conn, channel: channel, queue: queue}, nil
}

// Dispatch implements Dispatcher
func (d *AMQPDispatcher) Dispatch(_ context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = d.channel.Publish("", d.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Priority:     amqpPriority(n.Priority),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Close releases the channel and connection
func (d *AMQPDispatcher) Close() error {
	if err := d.channel.Close(); err != nil {
		d.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return d.conn.Close()
}

func amqpPriority(priority string) uint8 {
	if priority == PriorityHigh {
		return 9
	}
	return 4
}
