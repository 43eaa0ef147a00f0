package example

type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
)

type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "OPEN"
	TicketStatusClosed TicketStatus = "CLOSED"
)

type MessageKind string

const (
	MessageKindText MessageKind = "TEXT"
)

type Member struct {
	Role Role
}

type Ticket struct {
	Status TicketStatus
}

type Message struct {
	Kind MessageKind
}

func bad() {
	m := &Member{}
	m.Role = "SUPERUSER" // want "enum field Role assigned string literal"

	t := &Ticket{}
	t.Status = "PENDING" // want "enum field Status assigned string literal"

	_ = Message{Kind: "VIDEO"} // want "enum field Kind assigned string literal"
}

func good() {
	m := &Member{}
	m.Role = RoleOwner

	t := &Ticket{Status: TicketStatusClosed}
	t.Status = TicketStatusOpen

	_ = Message{Kind: MessageKindText}
}

func alsoGood() {
	// Variables are fine, only literals are flagged.
	role := RoleMember
	m := &Member{Role: role}
	_ = m
}
