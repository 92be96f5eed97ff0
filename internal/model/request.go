package model

// UploadRequest is the JSON payload sent by clients asking for an upload URL.
// ContentType is accepted but not used when signing.
type UploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType,omitempty"`
}
