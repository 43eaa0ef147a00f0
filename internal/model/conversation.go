package model

// Conversation is computed per viewer from an application and its messages.
// It is never stored.
type Conversation struct {
	ApplicationID     int64          `json:"application_id"`
	ApplicationStatus string         `json:"application_status"`
	JobID             int64          `json:"job_id"`
	JobTitle          string         `json:"job_title"`
	Company           CompanySummary `json:"company"`
	Applicant         Participant    `json:"applicant"`
	LastMessage       *Message       `json:"last_message,omitempty"`
	UnreadCount       int64          `json:"unread_count"`
}
