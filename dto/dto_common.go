package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResp struct {
	Message string `json:"message"`
}
