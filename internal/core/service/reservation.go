package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
	"github.com/dsmarket/product-service/pkg/prodcode"
)

const reservationCodePrefix = "RES"

var _ port.StockReserver = (*ReservationService)(nil)

// ReservationService runs the per-line-item stock hold protocol. A
// reservation exists only as the stock decrement already applied to each
// product; the reservation id is returned to the caller but never stored,
// so Confirm and Cancel are keyed purely by the resubmitted line items.
type ReservationService struct {
	products port.ProductStore
	events   port.StockEventProducer
}

func NewReservationService(
	products port.ProductStore, events port.StockEventProducer,
) ReservationService {
	return ReservationService{products, events}
}

// Reserve holds stock for every line item in order. If any item fails, the
// holds already taken by this batch are released again before the error is
// returned, so a failed batch has no net effect on the store.
func (s ReservationService) Reserve(
	ctx context.Context, items []domain.LineItem,
) (string, error) {
	const op = "ReservationService.Reserve"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	for i, item := range items {
		err := s.products.ReserveStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.compensate(ctx, items[:i])
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	reservationID := prodcode.Generate(reservationCodePrefix)
	s.publish(ctx, reservationID, domain.StockReserved, items)
	return reservationID, nil
}

// compensate releases the holds of the already-reserved items, in order.
// A failure is logged and does not block releasing the remaining items.
func (s ReservationService) compensate(
	ctx context.Context, reserved []domain.LineItem,
) {
	const op = "ReservationService.compensate"
	log := slog.With("op", op)

	for _, item := range reserved {
		err := s.products.RestoreStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			log.Error("failed to release hold",
				"productID", item.ProductID,
				"quantity", item.Quantity,
				"err", err,
			)
		}
	}
}

// Confirm finalizes the sale for every line item by moving the held units
// into soldStock. Items are processed in order and the first failure is
// returned immediately: already-confirmed items stay applied, no rollback.
func (s ReservationService) Confirm(
	ctx context.Context, reservationID string, items []domain.LineItem,
) error {
	const op = "ReservationService.Confirm"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, item := range items {
		err := s.products.AddSoldStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.publish(ctx, reservationID, domain.StockConfirmed, items)
	return nil
}

// Cancel releases the hold for every line item by restoring its stock. Same
// batch semantics as Confirm: sequential, first failure returned, no
// rollback of already-cancelled items.
func (s ReservationService) Cancel(
	ctx context.Context, reservationID string, items []domain.LineItem,
) error {
	const op = "ReservationService.Cancel"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, item := range items {
		err := s.products.RestoreStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.publish(ctx, reservationID, domain.StockCancelled, items)
	return nil
}

// publish emits one stock event per line item, best-effort.
func (s ReservationService) publish(
	ctx context.Context,
	reservationID string,
	kind domain.StockEventKind,
	items []domain.LineItem,
) {
	const op = "ReservationService.publish"

	if s.events == nil {
		return
	}

	now := time.Now()
	evts := make([]domain.StockEvent, 0, len(items))
	for _, item := range items {
		evts = append(evts, domain.StockEvent{
			ReservationID: reservationID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Kind:          kind,
			OccurredAt:    now,
		})
	}

	if err := s.events.ProduceStockEvents(ctx, evts); err != nil {
		slog.Error("failed to produce stock events", "op", op, "err", err)
	}
}
