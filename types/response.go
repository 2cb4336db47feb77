package types

// ApiResponse is the JSON envelope every handler returns.
type ApiResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for failures without a data payload.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}
