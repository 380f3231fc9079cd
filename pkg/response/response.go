package response

// Response is the envelope every endpoint writes
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // mirrors the HTTP status
	Data       interface{} `json:"data,omitempty"`
	Meta       interface{} `json:"meta,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps data in a success envelope
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Paged wraps one page of results together with its paging metadata
func Paged(statusCode int, data, meta interface{}) Response {
	r := Success(statusCode, data)
	r.Meta = meta
	return r
}

// ID is the payload of create and delete endpoints
type ID struct {
	ID string `json:"id"`
}

// Error wraps a message in an error envelope
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
