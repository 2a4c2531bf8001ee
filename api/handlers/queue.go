package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dealerworks/dealer-engine-api/config"
	"github.com/dealerworks/dealer-engine-api/stores"
)

// Queue exported for testing purposes
type Queue struct {
	Registry *stores.Registry
}

type queueSummaryResponse struct {
	Dealers      []string        `json:"dealers"`
	VehicleCount int             `json:"vehicleCount"`
	TotalDue     decimal.Decimal `json:"totalDue"`
}

// QueueSummaryHandler reports the dealers staged for invoicing with their
// combined vehicle count and total due
func (h Queue) QueueSummaryHandler(w http.ResponseWriter, r *http.Request) {
	staged := h.Registry.StagedDealers()

	totalDue, err := h.Registry.QueuedTotalDue()
	if err != nil {
		config.ErrorStatus("failed to compute queued total due", http.StatusInternalServerError, w, err)
		return
	}

	resp := queueSummaryResponse{
		Dealers:      make([]string, 0, len(staged)),
		VehicleCount: h.Registry.QueuedVehicleCount(),
		TotalDue:     totalDue,
	}
	for _, d := range staged {
		resp.Dealers = append(resp.Dealers, d.Name())
	}

	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ResetQueueHandler discards the work orders of every staged dealer and
// clears their staged flags, emptying the invoice queue
func (h Queue) ResetQueueHandler(w http.ResponseWriter, r *http.Request) {
	cleared := h.Registry.ResetQueue()
	zap.S().Infow("invoice queue reset", "dealersCleared", cleared)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":        "Queue reset successfully",
		"dealersCleared": cleared,
	})
}
