package model

type NotificationKind string

const (
	NotificationTicketCreated                 NotificationKind = "ticket_created"
	NotificationTicketMessageFromApplicant    NotificationKind = "ticket_message_from_applicant"
	NotificationTicketReplyFromCompany        NotificationKind = "ticket_reply_from_company"
	NotificationApplicationMessageToCompany   NotificationKind = "application_message_to_company"
	NotificationApplicationMessageToApplicant NotificationKind = "application_message_to_applicant"
)

// Notification is a rendered email ready to be handed to the outbox.
type Notification struct {
	Kind    NotificationKind
	To      string
	Subject string
	Body    string
}
