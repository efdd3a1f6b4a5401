package controller

// ErrorResponse is the uniform failure envelope. Details carries the raw
// upstream body when one exists, so the front end can still inspect gateway
// error causes.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Step    int    `json:"step,omitempty"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusResponse answers the health probe with process liveness and the set
// of reachable endpoints.
type StatusResponse struct {
	Success   bool     `json:"success"`
	Service   string   `json:"service"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}
