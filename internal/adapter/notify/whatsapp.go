package notify

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WhatsAppNotifier queues order summaries for the out-of-band WhatsApp
// sender: each dispatch publishes the formatted text and its wa.me deep link
// to a durable queue. Delivery past the queue is not this process's problem.
type WhatsAppNotifier struct {
	ch    *amqp.Channel
	queue string
	phone string
}

type outboundMessage struct {
	To   string `json:"to"`
	Link string `json:"link"`
	Body string `json:"body"`
}

func NewWhatsAppNotifier(conn *amqp.Connection, queue, phone string) (*WhatsAppNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &WhatsAppNotifier{ch: ch, queue: queue, phone: phone}, nil
}

func (n *WhatsAppNotifier) Dispatch(ctx context.Context, message string) error {
	body, err := json.Marshal(outboundMessage{
		To:   n.phone,
		Link: Link(n.phone, message),
		Body: message,
	})
	if err != nil {
		return err
	}

	return n.ch.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
}

func (n *WhatsAppNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
}

// Link builds the wa.me URL that opens a chat with phone pre-filled with msg.
// Spaces are percent-encoded, not '+', so the text survives WhatsApp's URL
// parsing.
func Link(phone, msg string) string {
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}
