package conversation

import "helpdesk/types"

// IsSelf reports whether a message was authored by the session user.
func IsSelf(msg types.Message, current types.User) bool {
	return msg.UserID == current.ID
}

// SenderName resolves the display name from the denormalized sender,
// falling back to a generic label when the backend attached none.
func SenderName(msg types.Message) string {
	if msg.Sender != nil && msg.Sender.Name != "" {
		return msg.Sender.Name
	}
	return "Usuario"
}

// SenderRole resolves the role id shown next to a message. Self-authored
// messages use the live session role, so a promoted or demoted user always
// sees their current role; everyone else uses the role embedded in the
// message, defaulting to plain user.
func SenderRole(msg types.Message, current types.User) int {
	if IsSelf(msg, current) {
		return current.RolID
	}
	if msg.Sender != nil && msg.Sender.RolID != 0 {
		return msg.Sender.RolID
	}
	return types.RolUsuario
}

// RoleLabel is SenderRole rendered through the fixed role table.
func RoleLabel(msg types.Message, current types.User) string {
	return types.RoleName(SenderRole(msg, current))
}
