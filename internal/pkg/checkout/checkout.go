package checkout

import (
	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/internal/pkg/catalog"
)

// Wizard steps.
const (
	StepPackage = 1
	StepAddress = 2
	StepAccount = 3

	firstStep = StepPackage
	lastStep  = StepAccount
)

// AddOnItem is a cart line held during checkout. Price is the unit price
// captured when the item was added.
type AddOnItem struct {
	ID        string `json:"id"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Price     int64  `json:"price"`
}

// State is the in-progress checkout for one session: wizard step, selected
// package, delivery preferences, address and add-on cart. It lives in the
// session store for the duration of a checkout attempt and is thrown away
// on completion or abandonment.
type State struct {
	Step              int              `json:"step"`
	SelectedPackage   *catalog.Package `json:"selected_package,omitempty"`
	DeliveryFrequency string           `json:"delivery_frequency"`
	DeliveryAddress   *models.Address  `json:"delivery_address,omitempty"`
	DeliveryDay       string           `json:"delivery_day"`
	AddOns            []AddOnItem      `json:"add_ons"`
}

// NewState returns the initial empty checkout state. Delivery day is fixed
// to Saturday for the whole system.
func NewState() *State {
	return &State{
		Step:              firstStep,
		DeliveryFrequency: catalog.CycleWeekly,
		DeliveryDay:       catalog.DeliveryDay,
		AddOns:            []AddOnItem{},
	}
}

// SetStep clamps the requested step into the wizard range.
func (s *State) SetStep(step int) {
	if step < firstStep {
		step = firstStep
	}
	if step > lastStep {
		step = lastStep
	}
	s.Step = step
}

// NextStep advances by one; advancing past the last step is a no-op.
func (s *State) NextStep() {
	s.SetStep(s.Step + 1)
}

// PrevStep goes back by one; going before the first step is a no-op.
func (s *State) PrevStep() {
	s.SetStep(s.Step - 1)
}

// CanAdvance reports whether the given step's precondition is met:
// step 1 needs a selected package, step 2 a delivery address, step 3 an
// authenticated account.
func (s *State) CanAdvance(step int, authenticated bool) bool {
	switch step {
	case StepPackage:
		return s.SelectedPackage != nil
	case StepAddress:
		return s.DeliveryAddress != nil
	case StepAccount:
		return authenticated
	default:
		return false
	}
}

// SelectPackage records the chosen package. No validation beyond shape;
// always succeeds.
func (s *State) SelectPackage(pkg catalog.Package) {
	s.SelectedPackage = &pkg
}

// SetDeliveryFrequency records the cadence (weekly or monthly).
func (s *State) SetDeliveryFrequency(freq string) {
	s.DeliveryFrequency = catalog.NormalizeCycle(freq)
}

// SetDeliveryAddress records the delivery address.
func (s *State) SetDeliveryAddress(addr models.Address) {
	s.DeliveryAddress = &addr
}

// AddAddOn appends the item, merging with an existing line for the same
// product by summing quantities.
func (s *State) AddAddOn(item AddOnItem) {
	for i := range s.AddOns {
		if s.AddOns[i].ProductID == item.ProductID {
			s.AddOns[i].Quantity += item.Quantity
			return
		}
	}
	s.AddOns = append(s.AddOns, item)
}

// RemoveAddOn drops the line with the given item id.
func (s *State) RemoveAddOn(itemID string) {
	out := s.AddOns[:0]
	for _, a := range s.AddOns {
		if a.ID != itemID {
			out = append(out, a)
		}
	}
	s.AddOns = out
}

// UpdateAddOnQuantity sets (not adds) the quantity for the line with the
// given id; a quantity of zero or less removes the line.
func (s *State) UpdateAddOnQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveAddOn(itemID)
		return
	}
	for i := range s.AddOns {
		if s.AddOns[i].ID == itemID {
			s.AddOns[i].Quantity = quantity
			return
		}
	}
}

// MonthlyTotal returns the package's price for the selected cadence, or 0
// when no package is selected. Both price fields are monthly charges; the
// cadence only changes delivery frequency, so the value is returned
// verbatim, never derived or divided.
func (s *State) MonthlyTotal() int64 {
	if s.SelectedPackage == nil {
		return 0
	}
	if s.DeliveryFrequency == catalog.CycleWeekly {
		return s.SelectedPackage.WeeklyDeliveryPrice
	}
	return s.SelectedPackage.MonthlyDeliveryPrice
}

// AddOnsTotal sums price x quantity over the cart. Add-ons are paid
// separately and never feed into the subscription total.
func (s *State) AddOnsTotal() int64 {
	var sum int64
	for _, a := range s.AddOns {
		sum += a.Price * int64(a.Quantity)
	}
	return sum
}

// Reset returns the state to its initial empty value.
func (s *State) Reset() {
	*s = *NewState()
}
