package notifications

import (
	"context"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher интерфейс публикации сообщений в брокер
// Реализуется pkg/mq.Publisher
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v interface{}) error
}

// Notifier отправляет события бронирований
// Отправка не влияет на результат операции: ошибки логируются и глотаются
type Notifier interface {
	Notify(event BookingEvent)
}

const publishTimeout = 5 * time.Second

// AMQPNotifier публикует события в RabbitMQ exchange
type AMQPNotifier struct {
	publisher Publisher
	log       Logger
}

// NewAMQPNotifier создает новый AMQP-нотификатор
func NewAMQPNotifier(publisher Publisher, log Logger) *AMQPNotifier {
	return &AMQPNotifier{
		publisher: publisher,
		log:       log,
	}
}

// Notify публикует событие асинхронно, не блокируя вызывающую операцию
func (n *AMQPNotifier) Notify(event BookingEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := n.publisher.PublishJSON(ctx, event.Type, event); err != nil {
			n.log.Error("Notify: failed to publish %s for booking id=%d: %v", event.Type, event.BookingID, err)
			return
		}

		n.log.Info("Notify: published %s for booking id=%d", event.Type, event.BookingID)
	}()
}

// NopNotifier заглушка, когда уведомления выключены в конфигурации
type NopNotifier struct{}

// NewNopNotifier создает нотификатор-заглушку
func NewNopNotifier() *NopNotifier {
	return &NopNotifier{}
}

// Notify ничего не делает
func (n *NopNotifier) Notify(_ BookingEvent) {}
