package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/nkamgang/scolaris-api/internal/models"
)

// ReceiptFSM wraps a receipt with its status state machine. Only the status
// moves; financial fields stay frozen after creation.
type ReceiptFSM struct {
	receipt *models.Receipt
	fsm     *fsm.FSM
}

// NewReceiptFSM creates a new receipt state machine
func NewReceiptFSM(receipt *models.Receipt) *ReceiptFSM {
	rfsm := &ReceiptFSM{
		receipt: receipt,
	}

	rfsm.fsm = fsm.NewFSM(
		receipt.Status,
		fsm.Events{
			// pending/late → paid
			{Name: "pay", Src: []string{models.ReceiptStatusPending, models.ReceiptStatusLate}, Dst: models.ReceiptStatusPaid},

			// pending → late
			{Name: "lapse", Src: []string{models.ReceiptStatusPending}, Dst: models.ReceiptStatusLate},
		},
		fsm.Callbacks{},
	)

	return rfsm
}

// MarkPaid transitions the receipt to paid
func (r *ReceiptFSM) MarkPaid(ctx context.Context) error {
	if !r.receipt.MayMarkPaid() {
		return fmt.Errorf("receipt cannot be marked paid in current state: %s", r.receipt.Status)
	}

	if err := r.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to mark receipt paid: %w", err)
	}

	r.receipt.Status = r.fsm.Current()
	return nil
}

// MarkLate transitions the receipt to late
func (r *ReceiptFSM) MarkLate(ctx context.Context) error {
	if !r.receipt.MayMarkLate() {
		return fmt.Errorf("receipt cannot be marked late in current state: %s", r.receipt.Status)
	}

	if err := r.fsm.Event(ctx, "lapse"); err != nil {
		return fmt.Errorf("failed to mark receipt late: %w", err)
	}

	r.receipt.Status = r.fsm.Current()
	return nil
}

// Current returns the current state
func (r *ReceiptFSM) Current() string {
	return r.fsm.Current()
}

// Can checks if a transition is possible
func (r *ReceiptFSM) Can(event string) bool {
	return r.fsm.Can(event)
}
