package response

type InitiateResponse struct {
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
}
