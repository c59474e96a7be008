package billing

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/arcana/adapter/cli"
	billingApp "github.com/felixgeelhaar/arcana/internal/billing/application"
	billingDomain "github.com/felixgeelhaar/arcana/internal/billing/domain"
)

var (
	subscribeMethod  string
	subscribeCpfCnpj string
	subscribeQRFile  string
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <plan-id>",
	Short: "Subscribe to a plan",
	Long: `Subscribe to a plan.

Free plans are activated at once. Paid plans are charged by PIX unless
--method says otherwise; card details are prompted for card payments.

Examples:
  arcana plans subscribe free
  arcana plans subscribe pro --cpf-cnpj 12345678900 --qr-file pix.png
  arcana plans subscribe pro --method credit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := billingService()
		if err != nil {
			return err
		}

		method, err := parseMethod(subscribeMethod)
		if err != nil {
			return err
		}
		opts := billingApp.SubscribeOptions{Method: method, CpfCnpj: subscribeCpfCnpj}
		if method == billingDomain.PaymentCreditCard || method == billingDomain.PaymentDebitCard {
			card, err := promptCard(cli.NewPrompter(cmd))
			if err != nil {
				return err
			}
			opts.Card = card
		}

		outcome, err := svc.SubscribeByID(cmd.Context(), args[0], opts)
		if errors.Is(err, billingDomain.ErrAlreadySubscribed) {
			fmt.Fprintln(cmd.OutOrStdout(), "You are already on this plan.")
			return nil
		}
		if err != nil {
			return err
		}

		return printOutcome(cmd.OutOrStdout(), outcome)
	},
}

func init() {
	subscribeCmd.Flags().StringVar(&subscribeMethod, "method", "", "payment method: pix, credit or debit (default pix)")
	subscribeCmd.Flags().StringVar(&subscribeCpfCnpj, "cpf-cnpj", "", "CPF or CNPJ of the payer")
	subscribeCmd.Flags().StringVar(&subscribeQRFile, "qr-file", "", "save the PIX QR code PNG to this path")
}

func parseMethod(s string) (billingDomain.PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "pix":
		return billingDomain.PaymentPIX, nil
	case "credit", "credit_card":
		return billingDomain.PaymentCreditCard, nil
	case "debit", "debit_card":
		return billingDomain.PaymentDebitCard, nil
	default:
		return "", fmt.Errorf("unknown payment method %q: use pix, credit or debit", s)
	}
}

func promptCard(prompt *cli.Prompter) (*billingDomain.CardData, error) {
	number, err := prompt.Line("Card number")
	if err != nil {
		return nil, err
	}
	holder, err := prompt.Line("Name on card")
	if err != nil {
		return nil, err
	}
	expiry, err := prompt.Line("Expiry (MM/YYYY)")
	if err != nil {
		return nil, err
	}
	month, year, err := parseExpiry(expiry)
	if err != nil {
		return nil, err
	}
	cvv, err := prompt.Password("CVV")
	if err != nil {
		return nil, err
	}
	return &billingDomain.CardData{
		CardNumber:      strings.ReplaceAll(number, " ", ""),
		CardHolderName:  holder,
		ExpirationMonth: month,
		ExpirationYear:  year,
		CVV:             cvv,
	}, nil
}

func parseExpiry(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expiry must look like MM/YYYY")
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid expiry month %q", parts[0])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid expiry year %q", parts[1])
	}
	if year < 100 {
		year += 2000
	}
	return month, year, nil
}

func printOutcome(out io.Writer, outcome *billingApp.SubscribeOutcome) error {
	res := outcome.Result
	sub := res.Subscription
	if outcome.Subscription != nil {
		sub = *outcome.Subscription
	}
	name := res.Plan.Name
	if name == "" {
		name = sub.PlanID
	}
	fmt.Fprintf(out, "Plan: %s\n", name)
	fmt.Fprintf(out, "Status: %s\n", sub.Status.Label())

	if p := res.Payment; p != nil {
		fmt.Fprintf(out, "Payment: %s (%s)\n", p.PaymentID, p.Status)
		if p.Message != "" {
			fmt.Fprintln(out, p.Message)
		}
		if p.PixCode != "" {
			fmt.Fprintf(out, "\nPIX copy-and-paste code:\n%s\n", p.PixCode)
		}
		if subscribeQRFile != "" && p.QRCode != "" {
			if err := billingApp.SaveQRCode(p, subscribeQRFile); err != nil {
				return fmt.Errorf("save QR code: %w", err)
			}
			fmt.Fprintf(out, "QR code saved to %s\n", subscribeQRFile)
		}
	}

	if outcome.Pending {
		fmt.Fprintln(out, "\nYour plan activates once the payment clears. Run 'arcana plans status' to check.")
	}
	return nil
}
