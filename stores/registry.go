package stores

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dealerworks/dealer-engine-api/models"
)

// Registry is the central store of dealer accounts, constructed once at
// startup and passed to every component that needs it.
//
// Name handling is deliberately asymmetric, matching the billing workflow:
// uniqueness is enforced case-insensitively, but Lookup (used when
// attributing imported rows) is an exact case-sensitive match.
//
// The engine itself is single-writer; the mutex only guards against the
// concurrent HTTP surface.
type Registry struct {
	mu      sync.Mutex
	dealers []*models.Dealer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a dealer. A case-insensitive name collision fails with a
// DuplicateNameError.
func (r *Registry) Add(d *models.Dealer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findFold(d.Name()) != nil {
		return &models.DuplicateNameError{Name: d.Name()}
	}
	r.dealers = append(r.dealers, d)
	return nil
}

// Lookup returns the dealer whose name matches exactly.
func (r *Registry) Lookup(name string) (*models.Dealer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.dealers {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// Rename changes a dealer's name after re-validating uniqueness against all
// other dealers. Renaming to the current name is a no-op, so changing only
// the case of a name is accepted.
func (r *Registry) Rename(d *models.Dealer, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trimmed := strings.TrimSpace(newName)
	if trimmed == d.Name() {
		return nil
	}
	if existing := r.findFold(trimmed); existing != nil && existing != d {
		return &models.DuplicateNameError{Name: trimmed}
	}
	return d.SetName(trimmed)
}

// Remove deletes the dealer and its work orders. Reports whether a dealer
// with that exact name existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.dealers {
		if d.Name() == name {
			r.dealers = append(r.dealers[:i], r.dealers[i+1:]...)
			return true
		}
	}
	return false
}

// Dealers returns every dealer, sorted case-insensitively by name.
func (r *Registry) Dealers() []*models.Dealer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedCopy(r.dealers, nil)
}

// ActiveDealers returns the active dealers, sorted case-insensitively.
func (r *Registry) ActiveDealers() []*models.Dealer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedCopy(r.dealers, func(d *models.Dealer) bool { return d.Active() })
}

// StagedDealers returns the active dealers queued for invoicing, sorted
// case-insensitively.
func (r *Registry) StagedDealers() []*models.Dealer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedCopy(r.dealers, func(d *models.Dealer) bool { return d.Active() && d.Staged() })
}

// UnstagedDealers returns the active dealers not queued for invoicing,
// sorted case-insensitively.
func (r *Registry) UnstagedDealers() []*models.Dealer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedCopy(r.dealers, func(d *models.Dealer) bool { return d.Active() && !d.Staged() })
}

// QueuedTotalDue is the total amount due across all staged dealers,
// recomputed on every call.
func (r *Registry) QueuedTotalDue() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range r.StagedDealers() {
		due, err := d.TotalInvoiceAmount()
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(due)
	}
	return total, nil
}

// QueuedVehicleCount is the number of vehicles processed across all staged
// dealers.
func (r *Registry) QueuedVehicleCount() int {
	n := 0
	for _, d := range r.StagedDealers() {
		n += d.VehicleCount()
	}
	return n
}

// ResetQueue clears every staged dealer's work orders wholesale and lowers
// its staged flag, ending a billing run. Returns the number of dealers
// cleared.
func (r *Registry) ResetQueue() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := 0
	for _, d := range r.dealers {
		if !d.Staged() {
			continue
		}
		d.ClearWorkOrders()
		d.SetStaged(false)
		cleared++
	}
	return cleared
}

// findFold returns the dealer matching name case-insensitively. Callers
// hold the mutex.
func (r *Registry) findFold(name string) *models.Dealer {
	for _, d := range r.dealers {
		if strings.EqualFold(d.Name(), name) {
			return d
		}
	}
	return nil
}

func sortedCopy(dealers []*models.Dealer, keep func(*models.Dealer) bool) []*models.Dealer {
	out := make([]*models.Dealer, 0, len(dealers))
	for _, d := range dealers {
		if keep == nil || keep(d) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name()) < strings.ToLower(out[j].Name())
	})
	return out
}
