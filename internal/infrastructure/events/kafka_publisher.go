package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

var _ inventory.EventPublisher = (*KafkaPublisher)(nil)

// MessageWriter lo que el publicador usa de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos JSON en un tópico; la clave es el id del agregado
// para que los eventos de un mismo producto o reserva queden en la misma partición.
type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// NewKafkaWriter crea el writer de kafka-go para los brokers y tópico dados.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaPublisher construye el publicador sobre un writer.
func NewKafkaPublisher(w MessageWriter, log zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, timeout: 10 * time.Second, log: log, now: time.Now}
}

// StockLow publica inventory.stock_low.
func (p *KafkaPublisher) StockLow(ctx context.Context, product *entity.Product) error {
	ev := StockLowEvent{
		EventID:           uuid.New().String(),
		Type:              TypeStockLow,
		ProductID:         product.ID,
		ProductName:       product.Name,
		CurrentStock:      product.CurrentStock,
		LowStockThreshold: product.LowStockThreshold,
		Unit:              product.Unit,
		OccurredAt:        p.now().UTC(),
	}
	return p.publish(ctx, product.ID, ev.EventID, ev)
}

// BookingDeducted publica inventory.booking_deducted.
func (p *KafkaPublisher) BookingDeducted(ctx context.Context, booking *entity.Booking, result *dto.AutoDeductResult) error {
	ev := BookingDeductedEvent{
		EventID:       uuid.New().String(),
		Type:          TypeBookingDeducted,
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		Summary:       *result,
		OccurredAt:    p.now().UTC(),
	}
	return p.publish(ctx, booking.ID, ev.EventID, ev)
}

func (p *KafkaPublisher) publish(ctx context.Context, key, eventID string, ev any) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value}); err != nil {
		return fmt.Errorf("publish event %s: %w", eventID, err)
	}
	p.log.Debug().Str("event_id", eventID).Str("key", key).Msg("evento publicado")
	return nil
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
