package ordering

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
)

// Line is a requested order line. Only the product id and quantity are
// trusted; prices always come from the catalog.
type Line struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"gt=0"`
}

// PlaceInput is a request for a one-off add-on order.
type PlaceInput struct {
	UserID    uint
	Lines     []Line
	AddressID uint // 0 means the default address
}

// Service places and manages add-on orders. Add-on orders live and die
// independently of any subscription: they carry the flat delivery fee and
// are never merged with the monthly subscription bill.
type Service struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	addrs    repository.AddressRepository
}

// NewService creates an ordering service from injected repositories.
func NewService(orders repository.OrderRepository, products repository.ProductRepository, addrs repository.AddressRepository) *Service {
	return &Service{orders: orders, products: products, addrs: addrs}
}

// NewServiceFromDB wires the service against GORM repositories.
func NewServiceFromDB(db *gorm.DB) *Service {
	repos := repository.NewRepositories(db)
	return NewService(repos.Order, repos.Product, repos.Address)
}

// Place creates an add-on order. Duplicate product lines are merged, prices
// are read from the catalog, and the flat delivery fee is applied on top of
// the subtotal.
func (s *Service) Place(in PlaceInput) (*models.Order, error) {
	if in.UserID == 0 {
		return nil, apperr.Validation("user is required")
	}
	lines, err := mergeLines(in.Lines)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.products.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var items []models.OrderItem
	var subtotal int64
	for _, l := range lines {
		product, ok := byID[l.ProductID]
		if !ok {
			return nil, apperr.Validation(fmt.Sprintf("Unknown product: %d", l.ProductID))
		}
		if !product.InStock {
			return nil, apperr.Business(product.Name + " is out of stock")
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  l.Quantity,
			Unit:      product.Unit,
			Price:     product.Price,
		})
		subtotal += product.Price * int64(l.Quantity)
	}

	addr, err := s.deliveryAddress(in.UserID, in.AddressID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:      in.UserID,
		Type:        models.OrderTypeAddon,
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: models.AddonDeliveryFee,
		Total:       subtotal + models.AddonDeliveryFee,
		Status:      models.OrderStatusPending,
	}
	order.SnapshotAddress(addr)

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	log.Printf("placed add-on order %d for user %d (%d lines, total %d)", order.ID, in.UserID, len(items), order.Total)
	return order, nil
}

func mergeLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation("Order must contain at least one item")
	}
	merged := make([]Line, 0, len(lines))
	index := map[uint]int{}
	for _, l := range lines {
		if l.ProductID == 0 {
			return nil, apperr.Validation("Order line is missing a product")
		}
		if l.Quantity <= 0 {
			return nil, apperr.Validation(fmt.Sprintf("Quantity for product %d must be positive", l.ProductID))
		}
		if i, seen := index[l.ProductID]; seen {
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

func (s *Service) deliveryAddress(userID, addressID uint) (*models.Address, error) {
	if addressID != 0 {
		addr, err := s.addrs.GetByID(addressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("Delivery address not found")
			}
			return nil, err
		}
		if addr.UserID != userID {
			return nil, apperr.Validation("Delivery address not found")
		}
		return addr, nil
	}
	addr, err := s.addrs.GetDefaultForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("No delivery address on file; add one first")
		}
		return nil, err
	}
	return addr, nil
}

// List returns the user's orders, optionally filtered by type.
func (s *Service) List(userID uint, orderType string) ([]models.Order, error) {
	orders, err := s.orders.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	t := strings.ToLower(strings.TrimSpace(orderType))
	if t == "" {
		return orders, nil
	}
	filtered := orders[:0:0]
	for _, o := range orders {
		if o.Type == t {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// Get loads one order, enforcing ownership.
func (s *Service) Get(userID, orderID uint) (*models.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperr.NotFound("Order not found")
	}
	return order, nil
}

// Cancel cancels an order that has not been handed to fulfilment yet.
func (s *Service) Cancel(userID, orderID uint) (*models.Order, error) {
	order, err := s.Get(userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanCancel() {
		return nil, apperr.InvalidState("Order can no longer be cancelled")
	}
	order.Status = models.OrderStatusCancelled
	if err := s.orders.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}
