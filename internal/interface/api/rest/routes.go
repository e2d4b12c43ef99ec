package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteEmployees     = RouteApiV1 + "/employees"
	RouteEmployee      = RouteEmployees + "/:employee_id"
	RouteEmployeesPage = RouteEmployees + "/p"

	// query engine
	RouteByCountry       = RouteEmployees + "/country"
	RouteCountries       = RouteEmployees + "/countries"
	RouteSortedCountries = RouteCountries + "/sorted"
	RouteFirstComEmail   = RouteEmployees + "/emails/first-com"
	RouteByGender        = RouteEmployees + "/by-gender"
	RouteActiveAddress   = RouteEmployees + "/has-active-address"
	RouteProcIsDeleted   = RouteEmployees + "/proc-is-deleted"
	RouteProcIsPrivate   = RouteEmployees + "/proc-is-private"
	RouteActive          = RouteEmployees + "/active"
	RouteDeleted         = RouteEmployees + "/deleted"

	// confirmation workflow
	RouteConfirmRequest = RouteEmployee + "/confirm-request"
	RouteConfirm        = RouteEmployee + "/confirm"

	// bulk
	RouteGenerate   = RouteEmployees + "/generate/:quantity"
	RouteMassUpdate = RouteEmployees + "/mass-test-update"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
