package dto

import "net/http"

// TextSearchRequest carries free text describing a search.
type TextSearchRequest struct {
	Text string `json:"text"`
}

// Bind leaves blank text to the extraction service, which owns that error.
func (t *TextSearchRequest) Bind(r *http.Request) error {
	return nil
}

// AudioUpload is an audio file received from a multipart form.
type AudioUpload struct {
	Filename string
	Size     int64
	Data     []byte
}

// VoiceSearchResponse is the structured reading of a spoken search.
type VoiceSearchResponse struct {
	Transcription string        `json:"transcription"`
	Summary       string        `json:"summary"`
	ExtractedData SearchRequest `json:"extracted_data"`
	Confidence    string        `json:"confidence"`
	MissingFields []string      `json:"missing_fields"`
}
