package dto

// FeedbackRequest captures a user rating submission.
type FeedbackRequest struct {
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment,omitempty"`
	ServiceID *string `json:"service_id,omitempty"`
}
