package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/config"
	"github.com/dealerworks/dealer-engine-api/models"
	"github.com/dealerworks/dealer-engine-api/stores"
)

// Dealer exported for testing purposes
type Dealer struct {
	Registry *stores.Registry
	Store    stores.Store
}

type dealerResponse struct {
	Name           string          `json:"name"`
	Address        []string        `json:"address"`
	Charges        []models.Charge `json:"monthlyCharges"`
	Active         bool            `json:"active"`
	Staged         bool            `json:"staged"`
	VehicleCount   int             `json:"vehicleCount"`
	WorkOrderCount int             `json:"workOrderCount"`
	TotalDue       decimal.Decimal `json:"totalDue"`
}

func newDealerResponse(d *models.Dealer) (dealerResponse, error) {
	totalDue, err := d.TotalInvoiceAmount()
	if err != nil {
		return dealerResponse{}, err
	}
	return dealerResponse{
		Name:           d.Name(),
		Address:        d.Address(),
		Charges:        d.Charges(),
		Active:         d.Active(),
		Staged:         d.Staged(),
		VehicleCount:   d.VehicleCount(),
		WorkOrderCount: d.WorkOrderCount(),
		TotalDue:       totalDue,
	}, nil
}

// ListDealersHandler returns the active dealers sorted case-insensitively
// by name. The optional staged query param filters to the queued or
// unqueued subset.
func (h Dealer) ListDealersHandler(w http.ResponseWriter, r *http.Request) {
	var dealers []*models.Dealer
	switch r.URL.Query().Get("staged") {
	case "true":
		dealers = h.Registry.StagedDealers()
	case "false":
		dealers = h.Registry.UnstagedDealers()
	default:
		dealers = h.Registry.ActiveDealers()
	}

	resp := make([]dealerResponse, 0, len(dealers))
	for _, d := range dealers {
		dr, err := newDealerResponse(d)
		if err != nil {
			config.ErrorStatus("failed to compute dealer totals", http.StatusInternalServerError, w, err)
			return
		}
		resp = append(resp, dr)
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type createDealerRequest struct {
	Name    string          `json:"name"`
	Address []string        `json:"address"`
	Charges []models.Charge `json:"monthlyCharges"`
}

// CreateDealerHandler registers a new dealer
func (h Dealer) CreateDealerHandler(w http.ResponseWriter, r *http.Request) {
	var req createDealerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := validateCharges(req.Charges); err != nil {
		config.ErrorStatus("invalid charge configuration", http.StatusBadRequest, w, err)
		return
	}

	dealer, err := models.NewDealer(req.Name)
	if err != nil {
		config.ErrorStatus("invalid dealer name", http.StatusBadRequest, w, err)
		return
	}
	dealer.SetAddress(req.Address)
	dealer.SetCharges(req.Charges)

	if err := h.Registry.Add(dealer); err != nil {
		config.ErrorStatus("failed to add dealer", http.StatusConflict, w, err)
		return
	}

	if err := h.Store.SaveDealers(h.Registry); err != nil {
		config.ErrorStatus("failed to save dealer configs", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("dealer created", "name", dealer.Name())
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Dealer created successfully",
		"name":    dealer.Name(),
	})
}

// DealerByNameHandler returns a dealer by exact name match
func (h Dealer) DealerByNameHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["dealer_name"]

	dealer, ok := h.Registry.Lookup(name)
	if !ok {
		config.ErrorStatus("failed to get dealer by name", http.StatusNotFound, w, &models.UnknownDealerError{Name: name})
		return
	}

	resp, err := newDealerResponse(dealer)
	if err != nil {
		config.ErrorStatus("failed to compute dealer totals", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type updateDealerRequest struct {
	Name    *string   `json:"name"`
	Address *[]string `json:"address"`
	Active  *bool     `json:"active"`
}

// UpdateDealerHandler renames a dealer or updates its address and active
// flag. Only fields present in the body are applied.
func (h Dealer) UpdateDealerHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["dealer_name"]

	dealer, ok := h.Registry.Lookup(name)
	if !ok {
		config.ErrorStatus("failed to get dealer by name", http.StatusNotFound, w, &models.UnknownDealerError{Name: name})
		return
	}

	var req updateDealerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.Name != nil {
		if err := h.Registry.Rename(dealer, *req.Name); err != nil {
			var dup *models.DuplicateNameError
			status := http.StatusBadRequest
			if errors.As(err, &dup) {
				status = http.StatusConflict
			}
			config.ErrorStatus("failed to rename dealer", status, w, err)
			return
		}
	}
	if req.Address != nil {
		dealer.SetAddress(*req.Address)
	}
	if req.Active != nil {
		dealer.SetActive(*req.Active)
	}

	if err := h.Store.SaveDealers(h.Registry); err != nil {
		config.ErrorStatus("failed to save dealer configs", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Dealer updated successfully",
		"name":    dealer.Name(),
	})
}

// DeleteDealerHandler removes a dealer and its work orders
func (h Dealer) DeleteDealerHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["dealer_name"]

	if !h.Registry.Remove(name) {
		config.ErrorStatus("failed to get dealer by name", http.StatusNotFound, w, &models.UnknownDealerError{Name: name})
		return
	}

	if err := h.Store.SaveDealers(h.Registry); err != nil {
		config.ErrorStatus("failed to save dealer configs", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("dealer deleted", "name", name)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Dealer deleted successfully",
	})
}

// UpdateChargesHandler replaces a dealer's configured monthly charges. The
// request order is preserved; it is the order charges print on invoices.
func (h Dealer) UpdateChargesHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["dealer_name"]

	dealer, ok := h.Registry.Lookup(name)
	if !ok {
		config.ErrorStatus("failed to get dealer by name", http.StatusNotFound, w, &models.UnknownDealerError{Name: name})
		return
	}

	var charges []models.Charge
	if err := json.NewDecoder(r.Body).Decode(&charges); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validateCharges(charges); err != nil {
		config.ErrorStatus("invalid charge configuration", http.StatusBadRequest, w, err)
		return
	}

	dealer.SetCharges(charges)

	if err := h.Store.SaveDealers(h.Registry); err != nil {
		config.ErrorStatus("failed to save dealer configs", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Charges updated successfully",
	})
}

// UnstageDealerHandler clears a dealer's pending-invoice flag after its
// invoice has been generated
func (h Dealer) UnstageDealerHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["dealer_name"]

	dealer, ok := h.Registry.Lookup(name)
	if !ok {
		config.ErrorStatus("failed to get dealer by name", http.StatusNotFound, w, &models.UnknownDealerError{Name: name})
		return
	}

	dealer.SetStaged(false)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Dealer unstaged successfully",
	})
}

// InvoiceHandler returns the computed invoice model for a dealer. The
// optional date query param (YYYY-MM-DD) sets the report date; it defaults
// to today.
func (h Dealer) InvoiceHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["dealer_name"]

	dealer, ok := h.Registry.Lookup(name)
	if !ok {
		config.ErrorStatus("failed to get dealer by name", http.StatusNotFound, w, &models.UnknownDealerError{Name: name})
		return
	}

	reportDate := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			config.ErrorStatus("failed to parse report date", http.StatusBadRequest, w, err)
			return
		}
		reportDate = parsed
	}

	invoice, err := dealer.Invoice(reportDate)
	if err != nil {
		config.ErrorStatus("failed to compute invoice", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(invoice)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func validateCharges(charges []models.Charge) error {
	for _, c := range charges {
		if !c.Type.Valid() {
			return &models.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown charge type %q", string(c.Type))}
		}
	}
	return nil
}
