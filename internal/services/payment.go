package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/store"
)

// PaymentService drives the payment lifecycle. Status changes go
// through the transition table; completing a payment additionally
// requires that the funding account actually exists in the tenant.
type PaymentService struct {
	store store.Store
	bus   Publisher
	now   func() time.Time
}

func NewPaymentService(s store.Store, bus Publisher) *PaymentService {
	if bus == nil {
		bus = NopPublisher{}
	}
	return &PaymentService{store: s, bus: bus, now: time.Now}
}

// Create registers a new payment. Payments enter the lifecycle as
// pending unless the caller explicitly sets another valid initial
// state; a payment created directly as completed must already satisfy
// the funding-account rule.
func (s *PaymentService) Create(ctx context.Context, p core.Payment) (string, error) {
	if p.Status == "" {
		p.Status = core.PaymentPending
	}
	if p.Status == core.PaymentCompleted {
		if err := s.checkFunding(ctx, p); err != nil {
			return "", err
		}
		if p.PaymentDate == nil {
			now := s.now()
			p.PaymentDate = &now
		}
	}
	return s.store.CreatePayment(ctx, p)
}

// UpdateStatus moves a payment to a new lifecycle state. The funding
// account can be set (or changed) in the same call; completion stamps
// the payment date and emits a payment.completed event.
func (s *PaymentService) UpdateStatus(ctx context.Context, tenantID, id string, to core.PaymentStatus, accountID string, accountType core.FundingAccountType) (*core.Payment, error) {
	p, err := s.store.GetPayment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if accountID != "" {
		p.AccountID = accountID
		p.AccountType = accountType
	}

	if err := p.CheckTransition(to); err != nil {
		return nil, err
	}
	if to == core.PaymentCompleted {
		if err := s.checkFunding(ctx, *p); err != nil {
			return nil, err
		}
		now := s.now()
		p.PaymentDate = &now
	}
	p.Status = to

	if err := s.store.UpdatePayment(ctx, *p); err != nil {
		return nil, err
	}

	if to == core.PaymentCompleted {
		ev := Event{
			Name:       EventPaymentCompleted,
			TenantID:   p.TenantID,
			EntityID:   p.ID,
			ProviderID: p.ProviderID,
			OccurredAt: s.now(),
		}
		if err := s.bus.Publish(ctx, ev); err != nil {
			slog.WarnContext(ctx, "Failed to publish payment completion",
				"payment_id", p.ID, "error", err)
		}
	}
	return p, nil
}

// checkFunding verifies the referenced funding account exists within
// the tenant. A dangling reference is a consistency problem, not a
// plain not-found: the payment row itself is fine.
func (s *PaymentService) checkFunding(ctx context.Context, p core.Payment) error {
	if p.AccountID == "" || !p.AccountType.IsValid() {
		return core.ConsistencyErr("payment completion requires a funding account",
			fmt.Sprintf("payment %s has no funding account", p.ID))
	}

	var err error
	switch p.AccountType {
	case core.FundingBankAccount:
		_, err = s.store.GetBankAccount(ctx, p.TenantID, p.AccountID)
	case core.FundingCreditCard:
		_, err = s.store.GetCreditCard(ctx, p.TenantID, p.AccountID)
	}
	if err != nil {
		if core.KindOf(err) == core.KindNotFound {
			return core.ConsistencyErr("funding account does not exist",
				fmt.Sprintf("%s %s not found in tenant", p.AccountType, p.AccountID))
		}
		return err
	}
	return nil
}
