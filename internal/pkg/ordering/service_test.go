package ordering

import (
	"testing"

	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
)

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

type fakeProductRepo struct {
	products map[uint]models.Product
}

func (f *fakeProductRepo) Create(p *models.Product) error { return nil }

func (f *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) GetByIDs(ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(category string, inStockOnly bool) ([]models.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetPopular(limit int) ([]models.Product, error) { return nil, nil }
func (f *fakeProductRepo) Count() (int64, error)                          { return int64(len(f.products)), nil }

type fakeAddrRepo struct {
	addrs map[uint]models.Address
}

func (f *fakeAddrRepo) Create(a *models.Address) error { return nil }

func (f *fakeAddrRepo) GetByID(id uint) (*models.Address, error) {
	a, ok := f.addrs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (f *fakeAddrRepo) GetByUserID(userID uint) ([]models.Address, error) { return nil, nil }

func (f *fakeAddrRepo) GetDefaultForUser(userID uint) (*models.Address, error) {
	for _, a := range f.addrs {
		if a.UserID == userID && a.IsDefault {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAddrRepo) Update(a *models.Address) error        { return nil }
func (f *fakeAddrRepo) ClearDefaultForUser(userID uint) error { return nil }

func newTestService() (*Service, *fakeOrderRepo) {
	orders := &fakeOrderRepo{}
	products := &fakeProductRepo{products: map[uint]models.Product{
		1: {ID: 1, Name: "Chicken breast", Category: models.CategoryProteins, Price: 4500, Unit: "kg", InStock: true},
		2: {ID: 2, Name: "Ugwu leaves", Category: models.CategoryVegetables, Price: 800, Unit: "bunch", InStock: true},
		3: {ID: 3, Name: "Palm oil", Category: models.CategorySpices, Price: 3200, Unit: "litre", InStock: false},
	}}
	addrs := &fakeAddrRepo{addrs: map[uint]models.Address{
		5: {ID: 5, UserID: 1, Street: "12 Adeola Odeku St", City: "Lagos", State: "Lagos", IsDefault: true},
		6: {ID: 6, UserID: 2, Street: "4 Aminu Kano Cres", City: "Abuja", State: "FCT", IsDefault: true},
	}}
	return NewService(orders, products, addrs), orders
}

func TestPlaceAddonOrder(t *testing.T) {
	svc, _ := newTestService()

	order, err := svc.Place(PlaceInput{
		UserID: 1,
		Lines:  []Line{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if order.Type != models.OrderTypeAddon {
		t.Errorf("Type = %s, want addon", order.Type)
	}
	wantSubtotal := int64(2*4500 + 3*800)
	if order.Subtotal != wantSubtotal {
		t.Errorf("Subtotal = %d, want %d", order.Subtotal, wantSubtotal)
	}
	if order.DeliveryFee != models.AddonDeliveryFee {
		t.Errorf("DeliveryFee = %d, want %d", order.DeliveryFee, models.AddonDeliveryFee)
	}
	if order.Total != wantSubtotal+500 {
		t.Errorf("Total = %d, want %d", order.Total, wantSubtotal+500)
	}
	if order.Street != "12 Adeola Odeku St" {
		t.Errorf("address snapshot street = %q", order.Street)
	}
}

func TestPlaceIgnoresClientPricing(t *testing.T) {
	// Catalog price wins no matter what the caller believes the price is:
	// lines carry only product id and quantity.
	svc, _ := newTestService()
	order, err := svc.Place(PlaceInput{UserID: 1, Lines: []Line{{ProductID: 2, Quantity: 1}}})
	if err != nil {
		t.Fatal(err)
	}
	if order.Items[0].Price != 800 {
		t.Errorf("item price = %d, want catalog price 800", order.Items[0].Price)
	}
}

func TestPlaceMergesDuplicateLines(t *testing.T) {
	svc, _ := newTestService()
	order, err := svc.Place(PlaceInput{
		UserID: 1,
		Lines:  []Line{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("items = %d, want 1 merged line", len(order.Items))
	}
	if order.Items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", order.Items[0].Quantity)
	}
}

func TestPlaceRejections(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		in   PlaceInput
		kind apperr.Kind
	}{
		{"empty order", PlaceInput{UserID: 1}, apperr.KindValidation},
		{"zero quantity", PlaceInput{UserID: 1, Lines: []Line{{ProductID: 1, Quantity: 0}}}, apperr.KindValidation},
		{"unknown product", PlaceInput{UserID: 1, Lines: []Line{{ProductID: 99, Quantity: 1}}}, apperr.KindValidation},
		{"out of stock", PlaceInput{UserID: 1, Lines: []Line{{ProductID: 3, Quantity: 1}}}, apperr.KindBusiness},
		{"foreign address", PlaceInput{UserID: 1, AddressID: 6, Lines: []Line{{ProductID: 1, Quantity: 1}}}, apperr.KindValidation},
		{"no address on file", PlaceInput{UserID: 3, Lines: []Line{{ProductID: 1, Quantity: 1}}}, apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Place(tt.in)
			if apperr.KindOf(err) != tt.kind {
				t.Errorf("kind = %v, want %v", apperr.KindOf(err), tt.kind)
			}
		})
	}
}

func TestListFiltersByType(t *testing.T) {
	svc, repo := newTestService()
	if _, err := svc.Place(PlaceInput{UserID: 1, Lines: []Line{{ProductID: 1, Quantity: 1}}}); err != nil {
		t.Fatal(err)
	}
	repo.orders = append(repo.orders, &models.Order{
		ID: 99, UserID: 1, Type: models.OrderTypeSubscription, Total: 110000,
	})

	addons, err := svc.List(1, "addon")
	if err != nil {
		t.Fatal(err)
	}
	if len(addons) != 1 || addons[0].Type != models.OrderTypeAddon {
		t.Errorf("addon filter returned %d orders", len(addons))
	}

	all, err := svc.List(1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered list returned %d orders, want 2", len(all))
	}
}

func TestCancelGuards(t *testing.T) {
	svc, repo := newTestService()
	order, err := svc.Place(PlaceInput{UserID: 1, Lines: []Line{{ProductID: 1, Quantity: 1}}})
	if err != nil {
		t.Fatal(err)
	}

	cancelled, err := svc.Cancel(1, order.ID)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != models.OrderStatusCancelled {
		t.Errorf("Status = %s, want cancelled", cancelled.Status)
	}

	repo.orders[0].Status = models.OrderStatusDelivered
	if _, err := svc.Cancel(1, order.ID); apperr.KindOf(err) != apperr.KindInvalidState {
		t.Errorf("cancelling a delivered order kind = %v, want invalid state", apperr.KindOf(err))
	}

	if _, err := svc.Cancel(2, order.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("foreign cancel kind = %v, want not found", apperr.KindOf(err))
	}
}
