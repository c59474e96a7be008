package cli

import (
	"fmt"
	"io"

	billingApp "github.com/felixgeelhaar/arcana/internal/billing/application"
	billingDomain "github.com/felixgeelhaar/arcana/internal/billing/domain"
)

// PrintPlans writes the plan list, marking the caller's current plan.
func PrintPlans(out io.Writer, overview *billingApp.Overview) {
	if overview == nil || len(overview.Plans) == 0 {
		fmt.Fprintln(out, "No plans available.")
		return
	}
	for _, p := range overview.Plans {
		marker := " "
		if p.Current {
			marker = "*"
		}
		price := billingDomain.FormatPrice(p.Price)
		if !p.Free() {
			price += "/" + p.BillingPeriod.Label()
		}
		fmt.Fprintf(out, "%s %-12s %-20s %s\n", marker, p.ID, p.Name, price)
		if desc := p.DescriptionText(); desc != "" {
			fmt.Fprintf(out, "    %s\n", desc)
		}
		fmt.Fprintf(out, "    %s\n", billingDomain.LimitText(p.GlobalDailyLimit))
	}
}
