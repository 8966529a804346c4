package request

type CreateGatewayRequest struct {
	Name          string `json:"name"`
	StorePassword string `json:"storePassword"`
	IsLive        bool   `json:"isLive"`
	Enabled       bool   `json:"enabled"`
}

// UpdateGatewayRequest is a partial update: omitted fields keep their stored values.
type UpdateGatewayRequest struct {
	Name          string `json:"name,omitempty"`
	StorePassword string `json:"storePassword,omitempty"`
	IsLive        *bool  `json:"isLive,omitempty"`
	Enabled       *bool  `json:"enabled,omitempty"`
}
