package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// Client wraps the Stripe API for the platform's collect-then-transfer
// model: the platform charges the customer in full, keeps an
// application fee, and transfers the remainder to the provider's
// Connect account.
type Client struct {
	api *client.API
}

func NewClient(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

// ConnectAccountStatus is a snapshot of a Connect account's readiness.
type ConnectAccountStatus struct {
	AccountID             string   `json:"account_id"`
	OnboardingCompleted   bool     `json:"onboarding_completed"`
	ChargesEnabled        bool     `json:"charges_enabled"`
	PayoutsEnabled        bool     `json:"payouts_enabled"`
	DetailsSubmitted      bool     `json:"details_submitted"`
	RequirementsCurrently []string `json:"requirements_currently_due"`
	RequirementsEventual  []string `json:"requirements_eventually_due"`
}

// --------------------------------------------------
// Connect Express accounts
// --------------------------------------------------

// CreateConnectAccount creates an Express account for a shop or
// technician. Stripe handles onboarding and compliance for Express.
func (c *Client) CreateConnectAccount(entityID, email, businessName, country string) (string, error) {
	if country == "" {
		country = "US"
	}

	params := &stripe.AccountParams{
		Type:         stripe.String(string(stripe.AccountTypeExpress)),
		Country:      stripe.String(country),
		Email:        stripe.String(email),
		BusinessType: stripe.String("company"),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			Name: stripe.String(businessName),
		},
	}
	params.AddMetadata("entity_id", entityID)
	params.AddMetadata("platform", "luber")

	account, err := c.api.Accounts.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create Connect account: %w", err)
	}
	return account.ID, nil
}

// CreateAccountLink generates the hosted onboarding link where the
// account holder completes verification and bank details.
func (c *Client) CreateAccountLink(accountID, refreshURL, returnURL string) (string, error) {
	link, err := c.api.AccountLinks.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
		Collect:    stripe.String("eventually_due"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create account link: %w", err)
	}
	return link.URL, nil
}

// GetConnectAccountStatus reports whether the account can accept
// charges and payouts yet.
func (c *Client) GetConnectAccountStatus(accountID string) (*ConnectAccountStatus, error) {
	account, err := c.api.Accounts.GetByID(accountID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account status: %w", err)
	}

	status := &ConnectAccountStatus{
		AccountID:           account.ID,
		OnboardingCompleted: account.DetailsSubmitted,
		ChargesEnabled:      account.ChargesEnabled,
		PayoutsEnabled:      account.PayoutsEnabled,
		DetailsSubmitted:    account.DetailsSubmitted,
	}
	if account.Requirements != nil {
		status.RequirementsCurrently = account.Requirements.CurrentlyDue
		status.RequirementsEventual = account.Requirements.EventuallyDue
	}
	return status, nil
}

// DisconnectAccount deletes a Connect account, e.g. when a shop
// closes their subscription.
func (c *Client) DisconnectAccount(accountID string) error {
	if _, err := c.api.Accounts.Del(accountID, nil); err != nil {
		return fmt.Errorf("failed to disconnect account: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Payments
// --------------------------------------------------

// CreatePaymentIntent creates an unconfirmed payment intent for a
// consumer job. Confirmation happens when the job completes.
func (c *Client) CreatePaymentIntent(amountCents int64, paymentMethodID string, metadata map[string]string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Confirm:  stripe.Bool(false),
	}
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent, nil
}

// CreatePaymentIntentWithTransfer creates a destination-charge intent
// for a B2B booking: the application fee stays with the platform and
// the rest settles on the shop's Connect account.
func (c *Client) CreatePaymentIntentWithTransfer(totalCents int64, accountID string, tier Tier, bookingID, shopID string) (*stripe.PaymentIntent, error) {
	split, err := CalculateSplit(totalCents, tier)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(totalCents),
		Currency:             stripe.String(string(stripe.CurrencyUSD)),
		ApplicationFeeAmount: stripe.Int64(split.PlatformFeeCents),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(accountID),
		},
		Description: stripe.String("Luber B2B - Mobile oil change service"),
	}
	params.AddMetadata("booking_id", bookingID)
	params.AddMetadata("shop_id", shopID)
	params.AddMetadata("subscription_tier", string(tier))
	params.AddMetadata("platform_fee", fmt.Sprintf("%d", split.PlatformFeeCents))
	params.AddMetadata("shop_payout", fmt.Sprintf("%d", split.ShopPayoutCents))

	intent, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent, nil
}

// ConfirmPaymentIntent captures a previously created intent.
func (c *Client) ConfirmPaymentIntent(intentID string) error {
	if _, err := c.api.PaymentIntents.Confirm(intentID, nil); err != nil {
		return fmt.Errorf("failed to confirm payment intent: %w", err)
	}
	return nil
}

// CancelPaymentIntent voids an intent, used when the job row fails to
// insert after the intent was created.
func (c *Client) CancelPaymentIntent(intentID string) error {
	if _, err := c.api.PaymentIntents.Cancel(intentID, nil); err != nil {
		return fmt.Errorf("failed to cancel payment intent: %w", err)
	}
	return nil
}

// CreateTransfer moves earnings to a Connect account. transferGroup
// ties the transfer back to the job that earned it.
func (c *Client) CreateTransfer(amountCents int64, accountID, transferGroup, description string) (string, error) {
	transfer, err := c.api.Transfers.New(&stripe.TransferParams{
		Amount:        stripe.Int64(amountCents),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		Destination:   stripe.String(accountID),
		TransferGroup: stripe.String(transferGroup),
		Description:   stripe.String(description),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create transfer: %w", err)
	}
	return transfer.ID, nil
}

// --------------------------------------------------
// Billing
// --------------------------------------------------

// CreateSubscription starts a shop's plan with the standard trial.
func (c *Client) CreateSubscription(customerID, priceID string, tier Tier) (*stripe.Subscription, error) {
	plan, ok := PlanForTier(tier)
	if !ok {
		return nil, fmt.Errorf("invalid subscription tier: %q", tier)
	}

	sub, err := c.api.Subscriptions.New(&stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
		TrialPeriodDays: stripe.Int64(plan.TrialPeriodDays),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return sub, nil
}
