package model

import "time"

type MessageKind string

const (
	MessageKindText  MessageKind = "TEXT"
	MessageKindFile  MessageKind = "FILE"
	MessageKindImage MessageKind = "IMAGE"
)

func (k MessageKind) IsValid() bool {
	switch k {
	case MessageKindText, MessageKindFile, MessageKindImage:
		return true
	default:
		return false
	}
}

// RequiresFile reports whether messages of this kind must carry a file URL.
func (k MessageKind) RequiresFile() bool {
	return k == MessageKindFile || k == MessageKindImage
}

// Message is a single entry in an application conversation. Only IsRead
// changes after creation.
type Message struct {
	ID            int64        `json:"id"`
	ApplicationID int64        `json:"application_id"`
	SenderID      int64        `json:"sender_id"`
	Content       string       `json:"content"`
	Kind          MessageKind  `json:"kind"`
	FileURL       *string      `json:"file_url,omitempty"`
	IsRead        bool         `json:"is_read"`
	CreatedAt     time.Time    `json:"created_at"`
	Sender        *Participant `json:"sender,omitempty"`
}
