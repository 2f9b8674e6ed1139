package subscription

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
)

type fakeSubRepo struct {
	subs   map[uint]*models.Subscription
	nextID uint
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{subs: map[uint]*models.Subscription{}, nextID: 1}
}

func (f *fakeSubRepo) Create(sub *models.Subscription) error {
	sub.ID = f.nextID
	f.nextID++
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubRepo) GetByID(id uint) (*models.Subscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sub
	return &cp, nil
}

func (f *fakeSubRepo) GetByUserID(userID uint) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range f.subs {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) GetBlockingByUserID(userID uint) (*models.Subscription, error) {
	for _, sub := range f.subs {
		if sub.UserID == userID && sub.Blocking() {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubRepo) GetDueForBilling(day time.Time) ([]models.Subscription, error) {
	var out []models.Subscription
	for _, sub := range f.subs {
		if sub.Status == models.SubscriptionStatusActive && sub.NextBillingDate != nil && !sub.NextBillingDate.After(day) {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (f *fakeSubRepo) Update(sub *models.Subscription) error {
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubRepo) UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error) {
	sub, ok := f.subs[id]
	if !ok || sub.Status != fromStatus {
		return false, nil
	}
	sub.Status = toStatus
	for key, val := range updates {
		switch key {
		case "mandate_id":
			sub.MandateID = val.(string)
		case "max_deliveries_per_month":
			sub.MaxDeliveriesPerMonth = val.(int)
		case "next_delivery_date":
			sub.NextDeliveryDate = val.(*time.Time)
		case "started_at":
			sub.StartedAt = val.(*time.Time)
		case "cancel_reason":
			sub.CancelReason = val.(string)
		case "cancelled_at":
			sub.CancelledAt = val.(*time.Time)
		}
	}
	return true, nil
}

func (f *fakeSubRepo) Delete(id uint) error {
	delete(f.subs, id)
	return nil
}

type fakeAddrRepo struct {
	addrs []*models.Address
}

func (f *fakeAddrRepo) Create(a *models.Address) error {
	a.ID = uint(len(f.addrs) + 1)
	f.addrs = append(f.addrs, a)
	return nil
}

func (f *fakeAddrRepo) GetByID(id uint) (*models.Address, error) {
	for _, a := range f.addrs {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAddrRepo) GetByUserID(userID uint) ([]models.Address, error) {
	var out []models.Address
	for _, a := range f.addrs {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAddrRepo) GetDefaultForUser(userID uint) (*models.Address, error) {
	for _, a := range f.addrs {
		if a.UserID == userID && a.IsDefault {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAddrRepo) Update(a *models.Address) error { return nil }

func (f *fakeAddrRepo) ClearDefaultForUser(userID uint) error {
	for _, a := range f.addrs {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders []*models.Order
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	o.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) GetByUserID(userID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(o *models.Order) error { return nil }

type invalidations struct {
	userIDs []uint
}

func (i *invalidations) record(userID uint) { i.userIDs = append(i.userIDs, userID) }

func newTestService() (*Service, *fakeSubRepo, *fakeOrderRepo, *invalidations) {
	subs := newFakeSubRepo()
	orders := &fakeOrderRepo{}
	inv := &invalidations{}
	svc := NewService(subs, &fakeAddrRepo{}, orders, inv.record)
	return svc, subs, orders, inv
}

func validInput(userID uint) CreateInput {
	return CreateInput{
		UserID:       userID,
		Tier:         "standard",
		BillingCycle: "monthly",
		Address: &models.Address{
			Street: "12 Adeola Odeku St",
			City:   "Lagos",
			State:  "Lagos",
		},
	}
}

func TestCreatePendingSubscription(t *testing.T) {
	svc, _, _, inv := newTestService()

	sub, err := svc.Create(validInput(1))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sub.Status != models.SubscriptionStatusPending {
		t.Errorf("Status = %s, want PENDING", sub.Status)
	}
	if sub.Price != 110000 {
		t.Errorf("Price = %d, want 110000", sub.Price)
	}
	if sub.DeliveryDay != "saturday" {
		t.Errorf("DeliveryDay = %s, want saturday", sub.DeliveryDay)
	}
	if sub.NextBillingDate == nil {
		t.Error("NextBillingDate not set")
	}
	if len(inv.userIDs) != 1 || inv.userIDs[0] != 1 {
		t.Errorf("cache invalidations = %v, want [1]", inv.userIDs)
	}
}

func TestCreateRejectsSecondBlockingSubscription(t *testing.T) {
	svc, _, _, _ := newTestService()

	if _, err := svc.Create(validInput(1)); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	_, err := svc.Create(validInput(1))
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("second Create() kind = %v, want conflict", apperr.KindOf(err))
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing tier", func(in *CreateInput) { in.Tier = "" }},
		{"unknown tier", func(in *CreateInput) { in.Tier = "deluxe" }},
		{"bad cycle", func(in *CreateInput) { in.BillingCycle = "daily" }},
		{"no address", func(in *CreateInput) { in.Address = nil }},
		{"empty street", func(in *CreateInput) { in.Address.Street = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(7)
			tt.mutate(&in)
			_, err := svc.Create(in)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("kind = %v, want validation", apperr.KindOf(err))
			}
		})
	}
}

func TestDeleteOnlyNonBillable(t *testing.T) {
	svc, repo, _, inv := newTestService()

	pending, err := svc.Create(validInput(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(1, pending.ID); err != nil {
		t.Fatalf("Delete(pending) error = %v", err)
	}
	if _, err := repo.GetByID(pending.ID); err == nil {
		t.Error("pending subscription still exists after delete")
	}

	active, _ := svc.Create(validInput(2))
	if _, err := svc.Activate(active.ID, "MND-1"); err != nil {
		t.Fatal(err)
	}
	before := len(inv.userIDs)
	err = svc.Delete(2, active.ID)
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Fatalf("Delete(active) kind = %v, want invalid state", apperr.KindOf(err))
	}
	if len(inv.userIDs) != before {
		t.Error("failed delete must not invalidate the cached view")
	}
	if got, _ := repo.GetByID(active.ID); got.Status != models.SubscriptionStatusActive {
		t.Errorf("Status after rejected delete = %s, want ACTIVE", got.Status)
	}
}

func TestDeleteOwnership(t *testing.T) {
	svc, _, _, _ := newTestService()
	sub, _ := svc.Create(validInput(1))

	err := svc.Delete(99, sub.ID)
	if apperr.KindOf(err) != apperr.KindBusiness {
		t.Errorf("kind = %v, want business", apperr.KindOf(err))
	}
}

func TestActivateSetsDeliverySchedule(t *testing.T) {
	svc, _, _, _ := newTestService()

	in := validInput(1)
	in.BillingCycle = "weekly"
	sub, _ := svc.Create(in)

	got, err := svc.Activate(sub.ID, "MND-42")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if got.Status != models.SubscriptionStatusActive {
		t.Errorf("Status = %s, want ACTIVE", got.Status)
	}
	if got.MandateID != "MND-42" {
		t.Errorf("MandateID = %s, want MND-42", got.MandateID)
	}
	if got.MaxDeliveriesPerMonth != 4 {
		t.Errorf("MaxDeliveriesPerMonth = %d, want 4 for weekly", got.MaxDeliveriesPerMonth)
	}
	if got.NextDeliveryDate == nil || got.NextDeliveryDate.Weekday() != time.Saturday {
		t.Errorf("NextDeliveryDate = %v, want a Saturday", got.NextDeliveryDate)
	}
	if got.StartedAt == nil {
		t.Error("StartedAt not set")
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	svc, _, _, _ := newTestService()
	sub, _ := svc.Create(validInput(1))

	if _, err := svc.Activate(sub.ID, "MND-1"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Activate(sub.ID, "MND-2")
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Errorf("second Activate() kind = %v, want invalid state", apperr.KindOf(err))
	}
}

func TestCancelIsTerminal(t *testing.T) {
	svc, _, _, _ := newTestService()
	sub, _ := svc.Create(validInput(1))
	if _, err := svc.Activate(sub.ID, "MND-1"); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Cancel(1, sub.ID, "moving abroad")
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if got.Status != models.SubscriptionStatusCancelled {
		t.Errorf("Status = %s, want CANCELLED", got.Status)
	}
	if got.CancelReason != "moving abroad" {
		t.Errorf("CancelReason = %q", got.CancelReason)
	}
	if got.CancelledAt == nil {
		t.Error("CancelledAt not set")
	}

	if _, err := svc.Resume(1, sub.ID); apperr.KindOf(err) != apperr.KindInvalidState {
		t.Error("cancelled subscription must not be resumable")
	}
	if _, err := svc.Cancel(1, sub.ID, ""); apperr.KindOf(err) != apperr.KindInvalidState {
		t.Error("cancelling twice must fail")
	}

	// Cancelled records no longer block a fresh start.
	if _, err := svc.Create(validInput(1)); err != nil {
		t.Errorf("Create() after cancel error = %v", err)
	}
}

func TestPauseResume(t *testing.T) {
	svc, _, _, _ := newTestService()
	sub, _ := svc.Create(validInput(1))
	if _, err := svc.Activate(sub.ID, "MND-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Resume(1, sub.ID); apperr.KindOf(err) != apperr.KindInvalidState {
		t.Error("resuming an active subscription must fail")
	}

	paused, err := svc.Pause(1, sub.ID)
	if err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if paused.Status != models.SubscriptionStatusPaused {
		t.Errorf("Status = %s, want PAUSED", paused.Status)
	}

	if _, err := svc.Pause(1, sub.ID); apperr.KindOf(err) != apperr.KindInvalidState {
		t.Error("pausing twice must fail")
	}

	resumed, err := svc.Resume(1, sub.ID)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed.Status != models.SubscriptionStatusActive {
		t.Errorf("Status = %s, want ACTIVE", resumed.Status)
	}
}

func TestProcessDueCreatesOrderAndAdvancesBilling(t *testing.T) {
	svc, repo, orders, _ := newTestService()
	sub, _ := svc.Create(validInput(1))
	if _, err := svc.Activate(sub.ID, "MND-1"); err != nil {
		t.Fatal(err)
	}

	// Force the billing date into the past.
	stored, _ := repo.GetByID(sub.ID)
	past := time.Now().AddDate(0, 0, -1)
	stored.NextBillingDate = &past
	if err := repo.Update(stored); err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	processed, err := svc.ProcessDue(now)
	if err != nil {
		t.Fatalf("ProcessDue() error = %v", err)
	}
	if processed != 1 {
		t.Fatalf("processed = %d, want 1", processed)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("orders created = %d, want 1", len(orders.orders))
	}
	order := orders.orders[0]
	if order.Type != models.OrderTypeSubscription {
		t.Errorf("order type = %s", order.Type)
	}
	if order.DeliveryFee != 0 {
		t.Errorf("subscription order delivery fee = %d, want 0", order.DeliveryFee)
	}
	if order.Total != 110000 {
		t.Errorf("order total = %d, want 110000", order.Total)
	}

	after, _ := repo.GetByID(sub.ID)
	if after.NextBillingDate == nil || !after.NextBillingDate.After(now) {
		t.Errorf("NextBillingDate = %v, want after %v", after.NextBillingDate, now)
	}
}
