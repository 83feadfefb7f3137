package dto

// CreateIntentRequest payload for payment intents.
type CreateIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateIntentResponse mirrors the payment provider's intent shape.
type CreateIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Status          string `json:"status"`
}

// WebhookRequest is the provider callback payload.
type WebhookRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Status          string `json:"status"`
}
