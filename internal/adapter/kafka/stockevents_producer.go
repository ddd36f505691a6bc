package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
	"github.com/dsmarket/product-service/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.StockEventProducer = (*StockEventsProducer)(nil)

// A StockEventsProducer publishes stock operation notifications, keyed by
// product id so events for one product stay ordered within a partition.
type StockEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewStockEventsProducer(
	opts ...ProducerOpt,
) (StockEventsProducer, error) {
	const op = "NewStockEventsProducer"

	if len(opts) != 2 {
		panic(fmt.Errorf("%s: %w", op, ErrTooFewOpts)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return StockEventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return StockEventsProducer{options.cl, options.encoder}, nil
}

func (p StockEventsProducer) Close() {
	const op = "StockEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p StockEventsProducer) ProduceStockEvents(
	ctx context.Context, evts []domain.StockEvent,
) error {
	const op = "StockEventsProducer.ProduceStockEvents"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rs, err := p.createRecords(evts)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.produce(ctx, rs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (p StockEventsProducer) createRecords(
	evts []domain.StockEvent,
) (rs []*kgo.Record, err error) {
	const op = "StockEventsProducer.createRecords"

	for _, evt := range evts {
		s := p.toSchema(evt)
		v, err := p.encoder.Encode(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r := &kgo.Record{Key: []byte(s.ProductID), Value: v}
		rs = append(rs, r)
	}

	return rs, nil
}

func (p StockEventsProducer) produce(
	ctx context.Context, rs []*kgo.Record,
) error {
	const op = "StockEventsProducer.produce"
	res := p.cl.ProduceSync(ctx, rs...)
	if err := res.FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (StockEventsProducer) toSchema(
	evt domain.StockEvent,
) (s schema.StockEventV1) {
	s.ReservationID = evt.ReservationID
	s.ProductID = evt.ProductID
	s.Quantity = int64(evt.Quantity)
	s.Kind = string(evt.Kind)
	s.OccurredAt = evt.OccurredAt.UnixMilli()
	return s
}
