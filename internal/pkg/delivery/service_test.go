package delivery

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
)

type fakeDeliveryRepo struct {
	deliveries []*models.Delivery
}

func (f *fakeDeliveryRepo) Create(d *models.Delivery) error {
	d.ID = uint(len(f.deliveries) + 1)
	f.deliveries = append(f.deliveries, d)
	return nil
}

func (f *fakeDeliveryRepo) GetByID(id uint) (*models.Delivery, error) {
	for _, d := range f.deliveries {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeliveryRepo) GetByTrackingNumber(tn string) (*models.Delivery, error) {
	for _, d := range f.deliveries {
		if d.TrackingNumber == tn {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDeliveryRepo) GetByUserID(userID uint) ([]models.Delivery, error) {
	var out []models.Delivery
	for _, d := range f.deliveries {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDeliveryRepo) Update(d *models.Delivery) error { return nil }

type fakeAddrRepo struct{}

func (fakeAddrRepo) Create(a *models.Address) error           { return nil }
func (fakeAddrRepo) GetByID(id uint) (*models.Address, error) { return nil, gorm.ErrRecordNotFound }
func (fakeAddrRepo) GetByUserID(userID uint) ([]models.Address, error) { return nil, nil }
func (fakeAddrRepo) GetDefaultForUser(userID uint) (*models.Address, error) {
	return &models.Address{UserID: userID, Street: "12 Adeola Odeku St", City: "Lagos", State: "Lagos"}, nil
}
func (fakeAddrRepo) Update(a *models.Address) error        { return nil }
func (fakeAddrRepo) ClearDefaultForUser(userID uint) error { return nil }

type fakeSubRepo struct {
	subs map[uint]*models.Subscription
}

func (f *fakeSubRepo) Create(sub *models.Subscription) error { return nil }
func (f *fakeSubRepo) GetByID(id uint) (*models.Subscription, error) {
	sub, ok := f.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return sub, nil
}
func (f *fakeSubRepo) GetByUserID(userID uint) ([]models.Subscription, error) { return nil, nil }
func (f *fakeSubRepo) GetBlockingByUserID(userID uint) (*models.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeSubRepo) GetDueForBilling(day time.Time) ([]models.Subscription, error) {
	return nil, nil
}
func (f *fakeSubRepo) Update(sub *models.Subscription) error { return nil }
func (f *fakeSubRepo) UpdateStatusFrom(id uint, from, to string, updates map[string]interface{}) (bool, error) {
	return false, nil
}
func (f *fakeSubRepo) Delete(id uint) error { return nil }

func activeSub() *models.Subscription {
	next := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // a Saturday
	return &models.Subscription{
		ID:                    10,
		UserID:                1,
		Tier:                  "standard",
		Status:                models.SubscriptionStatusActive,
		BillingCycle:          "weekly",
		MaxDeliveriesPerMonth: 4,
		NextDeliveryDate:      &next,
	}
}

func newTestService(sub *models.Subscription) (*Service, *fakeDeliveryRepo, *fakeSubRepo) {
	deliveries := &fakeDeliveryRepo{}
	subs := &fakeSubRepo{subs: map[uint]*models.Subscription{sub.ID: sub}}
	return NewService(deliveries, fakeAddrRepo{}, subs, nil), deliveries, subs
}

func TestScheduleForSubscription(t *testing.T) {
	sub := activeSub()
	svc, _, _ := newTestService(sub)

	d, err := svc.ScheduleForSubscription(sub, 7)
	if err != nil {
		t.Fatalf("ScheduleForSubscription() error = %v", err)
	}
	if !strings.HasPrefix(d.TrackingNumber, "BF-") {
		t.Errorf("TrackingNumber = %s, want BF- prefix", d.TrackingNumber)
	}
	if d.Status != models.DeliveryStatusScheduled {
		t.Errorf("Status = %s, want SCHEDULED", d.Status)
	}
	if !d.ScheduledDate.Equal(*sub.NextDeliveryDate) {
		t.Errorf("ScheduledDate = %v, want %v", d.ScheduledDate, sub.NextDeliveryDate)
	}
	if d.PaymentID != 7 {
		t.Errorf("PaymentID = %d, want 7", d.PaymentID)
	}
	if d.Street == "" {
		t.Error("address not snapshotted")
	}
	if len(d.Items) != 1 || !strings.Contains(d.Items[0].Name, "box") {
		t.Errorf("manifest = %+v", d.Items)
	}
}

func TestScheduleAnnouncesDelivery(t *testing.T) {
	sub := activeSub()
	deliveries := &fakeDeliveryRepo{}
	subs := &fakeSubRepo{subs: map[uint]*models.Subscription{sub.ID: sub}}

	var announced []uint
	svc := NewService(deliveries, fakeAddrRepo{}, subs, func(d *models.Delivery) {
		announced = append(announced, d.ID)
	})

	d, err := svc.ScheduleForSubscription(sub, 7)
	if err != nil {
		t.Fatalf("ScheduleForSubscription() error = %v", err)
	}
	if len(announced) != 1 || announced[0] != d.ID {
		t.Errorf("announced = %v, want [%d]", announced, d.ID)
	}

	// A rejected schedule must stay silent.
	sub.Status = models.SubscriptionStatusPending
	if _, err := svc.ScheduleForSubscription(sub, 7); err == nil {
		t.Fatal("expected error for pending subscription")
	}
	if len(announced) != 1 {
		t.Errorf("announced = %v after rejection, want unchanged", announced)
	}
}

func TestScheduleRequiresActiveSubscription(t *testing.T) {
	sub := activeSub()
	sub.Status = models.SubscriptionStatusPending
	svc, _, _ := newTestService(sub)

	_, err := svc.ScheduleForSubscription(sub, 0)
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Errorf("kind = %v, want invalid state", apperr.KindOf(err))
	}
}

func TestTrackEnforcesOwnership(t *testing.T) {
	sub := activeSub()
	svc, _, _ := newTestService(sub)
	d, err := svc.ScheduleForSubscription(sub, 0)
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Track(1, d.TrackingNumber)
	if err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if got.ID != d.ID {
		t.Errorf("Track() returned delivery %d", got.ID)
	}

	if _, err := svc.Track(2, d.TrackingNumber); apperr.KindOf(err) != apperr.KindNotFound {
		t.Error("foreign tracking lookup must read as not found")
	}
	if _, err := svc.Track(1, "BF-NOPE"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Error("unknown tracking number must read as not found")
	}
}

func TestMarkDelivered(t *testing.T) {
	sub := activeSub()
	svc, _, subs := newTestService(sub)
	d, err := svc.ScheduleForSubscription(sub, 0)
	if err != nil {
		t.Fatal(err)
	}

	at := time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC)
	got, err := svc.MarkDelivered(d.ID, at)
	if err != nil {
		t.Fatalf("MarkDelivered() error = %v", err)
	}
	if got.Status != models.DeliveryStatusDelivered {
		t.Errorf("Status = %s, want DELIVERED", got.Status)
	}
	if got.ActualDeliveryDate == nil || !got.ActualDeliveryDate.Equal(at) {
		t.Errorf("ActualDeliveryDate = %v", got.ActualDeliveryDate)
	}

	after := subs.subs[sub.ID]
	if after.DeliveriesThisMonth != 1 {
		t.Errorf("DeliveriesThisMonth = %d, want 1", after.DeliveriesThisMonth)
	}
	if after.NextDeliveryDate == nil || !after.NextDeliveryDate.Equal(at.AddDate(0, 0, 7)) {
		t.Errorf("NextDeliveryDate = %v, want one week out", after.NextDeliveryDate)
	}

	if _, err := svc.MarkDelivered(d.ID, at); apperr.KindOf(err) != apperr.KindInvalidState {
		t.Error("marking twice must fail")
	}
}

func TestMarkDeliveredLateKeepsSaturdaySchedule(t *testing.T) {
	sub := activeSub()
	svc, _, subs := newTestService(sub)
	d, err := svc.ScheduleForSubscription(sub, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Dropped off on Monday the 7th instead of Saturday the 5th.
	at := time.Date(2026, 9, 7, 11, 0, 0, 0, time.UTC)
	if _, err := svc.MarkDelivered(d.ID, at); err != nil {
		t.Fatalf("MarkDelivered() error = %v", err)
	}

	next := subs.subs[sub.ID].NextDeliveryDate
	if next == nil {
		t.Fatal("NextDeliveryDate not set")
	}
	if next.Weekday() != time.Saturday {
		t.Errorf("weekday = %v, want Saturday", next.Weekday())
	}
	if next.Day() != 12 || next.Month() != time.September {
		t.Errorf("NextDeliveryDate = %v, want 2026-09-12", next)
	}
}
