package operation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const UnspecifiedCustomer = "unspecified customer"

var hundred = decimal.NewFromInt(100)

// Line holds the computed financial values for one service line.
type Line struct {
	Amount               float64
	CommissionPercentage float64
	PaidAmount           float64
	Points               int
}

// ComputeLine prices a service line at the current catalog and commission
// values. Missing or non-finite numbers count as zero.
func ComputeLine(svc *models.Service, commissionPercentage float64) Line {
	amount := 0.0
	if svc.Price != nil {
		amount = finite(*svc.Price)
	}
	commission := finite(commissionPercentage)

	points := 0
	if svc.PointValue != nil {
		points = *svc.PointValue
	}

	paid := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(commission)).
		Div(hundred)

	return Line{
		Amount:               amount,
		CommissionPercentage: commission,
		PaidAmount:           paid.InexactFloat64(),
		Points:               points,
	}
}

func Describe(serviceName, customerName string, appointmentID uint) string {
	if customerName == "" {
		customerName = UnspecifiedCustomer
	}
	return fmt.Sprintf("%s performed - %s (Appointment #%d)", serviceName, customerName, appointmentID)
}

// Apply copies the computed values of l into op.
func (l Line) Apply(op *models.Operation) {
	op.Amount = l.Amount
	op.CommissionPercentage = l.CommissionPercentage
	op.PaidAmount = l.PaidAmount
	op.Points = l.Points
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
