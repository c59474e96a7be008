package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BillingPeriod is how often a plan charges.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "MONTHLY"
	BillingYearly  BillingPeriod = "YEARLY"
)

// Label returns the display suffix for the period.
func (p BillingPeriod) Label() string {
	if p == BillingYearly {
		return "ano"
	}
	return "mês"
}

// UnlimitedDailyLimit marks a plan with no daily cap.
const UnlimitedDailyLimit = -1

// ServiceLimit caps usage of one backend service.
type ServiceLimit struct {
	ServiceName  string `json:"serviceName"`
	DailyLimit   int    `json:"dailyLimit"`
	MonthlyLimit *int   `json:"monthlyLimit"`
}

// Plan is a subscription offer. Price is in centavos.
type Plan struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Description      *string        `json:"description"`
	Price            int64          `json:"price"`
	BillingPeriod    BillingPeriod  `json:"billingPeriod"`
	Features         []ServiceLimit `json:"features"`
	GlobalDailyLimit *int           `json:"globalDailyLimit"`
	IsActive         bool           `json:"isActive"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// Free reports whether the plan costs nothing.
func (p Plan) Free() bool {
	return p.Price == 0
}

// DescriptionText returns the description or "".
func (p Plan) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// FormatPrice renders centavos as Brazilian reais, or "Gratuito" for zero.
func FormatPrice(centavos int64) string {
	if centavos == 0 {
		return "Gratuito"
	}
	sign := ""
	if centavos < 0 {
		sign = "-"
		centavos = -centavos
	}
	reais := centavos / 100
	cents := centavos % 100
	return fmt.Sprintf("%sR$ %s,%02d", sign, groupThousands(reais), cents)
}

func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// LimitText describes a plan's global daily limit.
func LimitText(limit *int) string {
	switch {
	case limit == nil:
		return "Sem limite global"
	case *limit == UnlimitedDailyLimit:
		return "Ilimitado"
	default:
		return fmt.Sprintf("%d sessões diárias", *limit)
	}
}
