package model

// UploadResponse is the grant returned on a successful request.
type UploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	Bucket    string `json:"bucket"`
}

// ErrorResponse is returned for any failed request. Message is omitted for
// validation failures that carry no detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
