package types

import "encoding/json"

// Status codes as reported by the backend in sw_status.
const (
	StatusAbierto    = 1
	StatusAsignado   = 2
	StatusEnProgreso = 3
	StatusEntregado  = 4
	StatusDevuelto   = 5
	StatusResuelto   = 6
	StatusCerrado    = 7
)

const (
	RolUsuario = 1
	RolAgente  = 2
	RolAdmin   = 3
)

const (
	PrioridadBaja  = 1
	PrioridadMedia = 2
	PrioridadAlta  = 3
)

type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	RolID      int    `json:"rol_id"`
	SwActive   int    `json:"sw_active"`
	JobTitle   string `json:"job_title"`
	PictureURL string `json:"picture_url"`
	CreatedAt  string `json:"created_at"`
}

// TicketUser is the denormalized user object the backend attaches to
// tickets, history entries and messages.
type TicketUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	RolID int    `json:"rol_id,omitempty"`
}

type Category struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type Priority struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type TicketHistoryItem struct {
	ID             string      `json:"id"`
	SwStatus       int         `json:"sw_status"`
	AssignedUserID string      `json:"assigned_user_id,omitempty"`
	UpdatedAt      string      `json:"updated_at,omitempty"`
	Description    string      `json:"description,omitempty"`
	TicketHeaderID int         `json:"ticket_header_id"`
	User           *TicketUser `json:"tb_user,omitempty"`
}

type Ticket struct {
	ID          int                 `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	CreatedAt   string              `json:"created_at"`
	SwStatus    int                 `json:"sw_status"`
	CategoryID  int                 `json:"category_id"`
	PriorityID  int                 `json:"priority_id"`
	UserID      string              `json:"user_id"`
	AgenteID    string              `json:"agente_id,omitempty"`
	Category    Category            `json:"tb_category"`
	Priority    Priority            `json:"tb_priority"`
	User        TicketUser          `json:"tb_user"`
	Agente      *TicketUser         `json:"tb_agente,omitempty"`
	History     []TicketHistoryItem `json:"history,omitempty"`
}

// Returnable reports whether the owning user may return the ticket to
// re-open it. Only resolved or closed tickets can be returned.
func (t Ticket) Returnable() bool {
	return t.SwStatus == StatusResuelto || t.SwStatus == StatusCerrado
}

// Claimable reports whether an agent may self-assign the ticket.
func (t Ticket) Claimable() bool {
	return t.SwStatus == StatusAbierto || t.SwStatus == StatusDevuelto
}

type Message struct {
	ID             int    `json:"id"`
	ConversationID int    `json:"conversation_id"`
	UserID         string `json:"user_id"`
	Content        string `json:"content"`
	SentAt         string `json:"sent_at"`
	// Sender is the denormalized author. The backend emitted this object
	// under "user" before a mid-project rename to "tb_user"; both wire
	// names are accepted on decode, "tb_user" is canonical.
	Sender *TicketUser `json:"tb_user,omitempty"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		*alias
		LegacySender *TicketUser `json:"user"`
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.Sender == nil {
		m.Sender = aux.LegacySender
	}
	return nil
}

type CreateTicketData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int    `json:"category_id"`
	PriorityID  int    `json:"priority_id"`
}

type UpdateProfileData struct {
	Name     string `json:"name,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
}
