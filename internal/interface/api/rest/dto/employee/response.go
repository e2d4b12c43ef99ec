package employee

type (
	Address struct {
		ID      uint64 `json:"id"`
		Active  bool   `json:"active"`
		Country string `json:"country"`
		City    string `json:"city"`
		Street  string `json:"street"`
	}
	Employee struct {
		ID          uint64    `json:"id"`
		Name        string    `json:"name"`
		Country     string    `json:"country"`
		Email       string    `json:"email"`
		Gender      *string   `json:"gender,omitempty"`
		Addresses   []Address `json:"addresses,omitempty"`
		IsDeleted   *bool     `json:"is_deleted"`
		IsPrivate   *bool     `json:"is_private"`
		IsConfirmed bool      `json:"is_confirmed"`
	}
	Employees    []Employee
	ResponseData struct {
		Data Employees `json:"data"`
	}
	ElapsedResponse struct {
		ElapsedMs int64 `json:"elapsed_ms"`
	}
)
