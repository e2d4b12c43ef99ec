package employee

type (
	AddressRequest struct {
		Country string `json:"country"`
		City    string `json:"city"`
		Street  string `json:"street"`
		Active  *bool  `json:"active,omitempty"`
	}
	Request struct {
		Name      string           `json:"name"`
		Country   string           `json:"country"`
		Email     string           `json:"email"`
		Gender    string           `json:"gender,omitempty"`
		Addresses []AddressRequest `json:"addresses,omitempty"`
	}
)
