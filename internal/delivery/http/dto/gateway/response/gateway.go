package response

import "time"

// GatewayResponse never carries the store password.
type GatewayResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsLive    bool      `json:"isLive"`
	Enabled   bool      `json:"enabled"`
	HasSecret bool      `json:"hasSecret"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GatewaysResponse struct {
	Gateways []GatewayResponse `json:"gateways"`
}
