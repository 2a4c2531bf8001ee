package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the computed billing model for one dealer as of a report date.
// It is everything the document renderer consumes: totals, the enabled
// charge lines in configured order, and per-date work summaries with their
// vehicle line items.
type Invoice struct {
	DealerName    string              `json:"dealerName"`
	FileName      string              `json:"fileName"`
	ReportDate    time.Time           `json:"reportDate"`
	TotalDue      decimal.Decimal     `json:"totalDue"`
	MonthlyTotal  decimal.Decimal     `json:"monthlyTotal"`
	OnTheLotTotal decimal.Decimal     `json:"onTheLotTotal"`
	Charges       []InvoiceChargeLine `json:"charges"`
	WorkOrders    []InvoiceWorkOrder  `json:"workOrders"`
}

// InvoiceChargeLine is one enabled monthly charge with its computed amount.
type InvoiceChargeLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceWorkOrder summarizes one work order on the invoice.
type InvoiceWorkOrder struct {
	Date     time.Time            `json:"date"`
	Total    decimal.Decimal      `json:"total"`
	Vehicles []InvoiceVehicleLine `json:"vehicles"`
}

// InvoiceVehicleLine is one vehicle line item on a work summary page.
type InvoiceVehicleLine struct {
	Stock       string          `json:"stock"`
	Condition   string          `json:"condition"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Invoice computes the dealer's invoice model for the given report date.
func (d *Dealer) Invoice(reportDate time.Time) (*Invoice, error) {
	monthly, err := d.TotalMonthlyCharges()
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		DealerName:    d.Name(),
		FileName:      d.FileName(),
		ReportDate:    dateOnly(reportDate),
		MonthlyTotal:  monthly,
		OnTheLotTotal: d.TotalOTLCharges(),
		TotalDue:      monthly.Add(d.TotalOTLCharges()),
		Charges:       []InvoiceChargeLine{},
		WorkOrders:    []InvoiceWorkOrder{},
	}

	for _, c := range d.Charges() {
		if !c.Enabled {
			continue
		}
		amount, err := d.CalculateMonthlyCharge(c)
		if err != nil {
			return nil, err
		}
		inv.Charges = append(inv.Charges, InvoiceChargeLine{Name: c.Name, Amount: amount})
	}

	for _, date := range d.WorkOrderDates() {
		wo := d.WorkOrder(date)
		summary := InvoiceWorkOrder{
			Date:     date,
			Total:    wo.Total(),
			Vehicles: make([]InvoiceVehicleLine, 0, wo.Len()),
		}
		for _, v := range wo.Vehicles() {
			summary.Vehicles = append(summary.Vehicles, InvoiceVehicleLine{
				Stock:       v.Stock,
				Condition:   v.Condition.String(),
				Description: v.DisplayDescription(),
				Price:       v.Price,
			})
		}
		inv.WorkOrders = append(inv.WorkOrders, summary)
	}

	return inv, nil
}
