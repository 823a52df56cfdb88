package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/labstack/gommon/log"
)

// イベント種別
const (
	EventOrderConfirmed = "order_confirmed"
	EventOrderShipped   = "order_shipped"
)

// OrderEvent はキュー経由でメール送信を依頼するペイロード。
// 消費側がバックエンドを呼び直さなくて済むよう注文情報を丸ごと持つ。
type OrderEvent struct {
	Type          string    `json:"type"`
	CustomerEmail string    `json:"customerEmail"`
	Order         OrderData `json:"order"`
}

// Dispatcher は注文イベントをRabbitMQに積み、ワーカーとして
// 取り出してメール送信する。
type Dispatcher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *log.Logger
}

func NewDispatcher(url string, queue string, logger *log.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = log.New("notify")
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// durable。再起動で送信待ちを落とさない。
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Dispatcher{conn: conn, ch: ch, queue: queue, log: logger}, nil
}

// Publish は注文イベントをキューへ積む。
func (d *Dispatcher) Publish(ctx context.Context, ev OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return d.ch.PublishWithContext(ctx, "", d.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// StartConsumer はキューを購読してメールを送るワーカーを起動する。
// 送信失敗はログに残して破棄する（リトライはしない）。
func (d *Dispatcher) StartConsumer(ctx context.Context, sender *EmailSender) error {
	msgs, err := d.ch.Consume(d.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				d.handle(ctx, sender, msg)
			}
		}
	}()

	d.log.Infof("order event consumer started on queue %s", d.queue)
	return nil
}

func (d *Dispatcher) handle(ctx context.Context, sender *EmailSender, msg amqp.Delivery) {
	var ev OrderEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		d.log.Errorf("failed to decode order event: %v", err)
		msg.Nack(false, false)
		return
	}

	var res Result
	switch ev.Type {
	case EventOrderConfirmed:
		res = sender.SendOrderConfirmation(ctx, ev.Order, ev.CustomerEmail)
	case EventOrderShipped:
		res = sender.SendOrderShipped(ctx, ev.Order, ev.CustomerEmail)
	default:
		d.log.Warnf("unknown order event type: %s", ev.Type)
		msg.Nack(false, false)
		return
	}

	if !res.Success {
		// Result側でログ済み。再配送はしない。
		msg.Nack(false, false)
		return
	}
	msg.Ack(false)
}

func (d *Dispatcher) Close() {
	if d.ch != nil {
		d.ch.Close()
	}
	if d.conn != nil {
		d.conn.Close()
	}
}
