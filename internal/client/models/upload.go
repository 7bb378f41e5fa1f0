package models

// UploadedFile is one server-confirmed upload from the batch response,
// matched back to a candidate by filename.
type UploadedFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// UploadResponse is the JSON body returned by the upload endpoint on success.
type UploadResponse struct {
	UploadedFiles []UploadedFile `json:"uploaded_files"`
}
