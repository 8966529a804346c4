package gatewaydto

type CreateGatewayInput struct {
	Name          string
	StorePassword string
	IsLive        bool
	Enabled       bool
}

// UpdateGatewayInput only changes what is set: blank strings and nil flags keep the stored values.
type UpdateGatewayInput struct {
	ID            string
	Name          string
	StorePassword string
	IsLive        *bool
	Enabled       *bool
}
