package services

import (
	"context"
	"testing"
	"time"

	"github.com/mhzindev/sunsetflow/internal/core"
	"github.com/mhzindev/sunsetflow/internal/storage/memory"
)

type recordingBus struct {
	events []Event
}

func (b *recordingBus) Publish(_ context.Context, ev Event) error {
	b.events = append(b.events, ev)
	return nil
}

func TestPaymentCompletionFlow(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	bus := &recordingBus{}
	svc := NewPaymentService(repo, bus)

	accountID, err := repo.CreateBankAccount(ctx, core.BankAccount{
		TenantID: "t", Name: "Operating", AccountType: core.AccountChecking, IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	id, err := svc.Create(ctx, core.Payment{
		TenantID: "t", ProviderID: "prov", Amount: dec(t, "200.00"),
		DueDate: time.Now().AddDate(0, 0, 7), Type: core.PaymentFull,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := repo.GetPayment(ctx, "t", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Status != core.PaymentPending {
		t.Fatalf("initial status = %s, want pending", p.Status)
	}

	// completing without a funding account is a consistency violation
	_, err = svc.UpdateStatus(ctx, "t", id, core.PaymentCompleted, "", "")
	if core.KindOf(err) != core.KindConsistency {
		t.Errorf("complete without account: kind = %v, want consistency", core.KindOf(err))
	}

	// completing against a nonexistent account is equally rejected
	_, err = svc.UpdateStatus(ctx, "t", id, core.PaymentCompleted, "ghost", core.FundingBankAccount)
	if core.KindOf(err) != core.KindConsistency {
		t.Errorf("complete against ghost account: kind = %v, want consistency", core.KindOf(err))
	}

	p, err = svc.UpdateStatus(ctx, "t", id, core.PaymentCompleted, accountID, core.FundingBankAccount)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if p.Status != core.PaymentCompleted {
		t.Errorf("status = %s, want completed", p.Status)
	}
	if p.PaymentDate == nil {
		t.Error("payment date not stamped on completion")
	}

	if len(bus.events) != 1 || bus.events[0].Name != EventPaymentCompleted {
		t.Fatalf("events = %+v, want one payment.completed", bus.events)
	}
	if bus.events[0].TenantID != "t" || bus.events[0].ProviderID != "prov" {
		t.Errorf("event missing tenant or provider: %+v", bus.events[0])
	}
}

func TestPaymentInvalidTransitions(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	svc := NewPaymentService(repo, nil)

	accountID, err := repo.CreateBankAccount(ctx, core.BankAccount{
		TenantID: "t", Name: "Operating", AccountType: core.AccountChecking, IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	id, err := svc.Create(ctx, core.Payment{
		TenantID: "t", ProviderID: "prov", Amount: dec(t, "100.00"),
		DueDate: time.Now(), Type: core.PaymentFull,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, "t", id, core.PaymentCancelled, "", ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// cancelled is terminal; the state machine reports the conflict
	_, err = svc.UpdateStatus(ctx, "t", id, core.PaymentCompleted, accountID, core.FundingBankAccount)
	if core.KindOf(err) != core.KindConsistency {
		t.Errorf("complete after cancel: kind = %v, want consistency", core.KindOf(err))
	}
}

func TestPaymentCrossTenantInvisible(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	svc := NewPaymentService(repo, nil)

	id, err := svc.Create(ctx, core.Payment{
		TenantID: "company-a", ProviderID: "prov", Amount: dec(t, "50.00"),
		DueDate: time.Now(), Type: core.PaymentFull,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UpdateStatus(ctx, "company-b", id, core.PaymentCancelled, "", "")
	if core.KindOf(err) != core.KindNotFound {
		t.Errorf("cross-tenant update: kind = %v, want not_found", core.KindOf(err))
	}
}

func TestProviderRecalculate(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()

	providerID, err := repo.CreateProvider(ctx, core.ServiceProvider{TenantID: "t", Name: "Alfa"})
	if err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	missionID, err := repo.CreateMission(ctx, core.Mission{
		TenantID: "t", Title: "Install", Status: core.MissionInProgress,
		ServiceValue:       dec(t, "2000.00"),
		CompanyPercentage:  dec(t, "30"),
		ProviderPercentage: dec(t, "70"),
		ProviderIDs:        []string{providerID},
	})
	if err != nil {
		t.Fatalf("seed mission: %v", err)
	}
	if err := repo.ApproveMission(ctx, "t", missionID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	p, err := NewProviderService(repo).Recalculate(ctx, "t", providerID)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !p.CurrentBalance.Equal(dec(t, "1400.00")) {
		t.Errorf("balance = %s, want 1400.00", p.CurrentBalance)
	}

	stored, err := repo.GetProvider(ctx, "t", providerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.CurrentBalance.Equal(dec(t, "1400.00")) {
		t.Errorf("stored balance = %s, want 1400.00", stored.CurrentBalance)
	}
}

func TestMissionApprovePublishesOnce(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	bus := &recordingBus{}
	svc := NewMissionService(repo, bus)

	id, err := repo.CreateMission(ctx, core.Mission{
		TenantID: "t", Title: "Audit", Status: core.MissionPlanning,
		ServiceValue:       dec(t, "500.00"),
		CompanyPercentage:  dec(t, "100"),
		ProviderPercentage: dec(t, "0"),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	m, err := svc.Approve(ctx, "t", id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !m.IsApproved {
		t.Error("mission not approved")
	}

	// second approval is a no-op and must not re-publish
	if _, err := svc.Approve(ctx, "t", id); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if len(bus.events) != 1 || bus.events[0].Name != EventMissionApproved {
		t.Errorf("events = %+v, want exactly one mission.approved", bus.events)
	}
}
