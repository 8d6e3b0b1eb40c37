package errors

import "net/http"

// Default messages for the status codes the API reports.
const (
	MsgBadRequest       = "Bad Request"
	MsgNotFound         = "Resource Not Found"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgUnprocessable    = "Unprocessable"
	MsgInternalError    = "Internal Server Error"
	MsgUpstreamError    = "Upstream Error"
)

var defaultMessages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusNotFound:            MsgNotFound,
	http.StatusMethodNotAllowed:    MsgMethodNotAllowed,
	http.StatusUnprocessableEntity: MsgUnprocessable,
	http.StatusInternalServerError: MsgInternalError,
	http.StatusBadGateway:          MsgUpstreamError,
}

// Message returns the default envelope message for a status code.
func Message(status int) string {
	if msg, ok := defaultMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
