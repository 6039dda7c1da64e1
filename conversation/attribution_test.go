package conversation

import (
	"testing"

	"helpdesk/types"
)

func TestIsSelf(t *testing.T) {
	current := types.User{ID: "u1", RolID: types.RolUsuario}
	if !IsSelf(types.Message{UserID: "u1"}, current) {
		t.Fatalf("message from the session user must be self")
	}
	if IsSelf(types.Message{UserID: "u2"}, current) {
		t.Fatalf("message from another user must not be self")
	}
}

func TestSenderNameFallback(t *testing.T) {
	if got := SenderName(types.Message{Sender: &types.TicketUser{Name: "Ana"}}); got != "Ana" {
		t.Fatalf("SenderName = %q", got)
	}
	if got := SenderName(types.Message{}); got != "Usuario" {
		t.Fatalf("missing sender should render as Usuario, got %q", got)
	}
	if got := SenderName(types.Message{Sender: &types.TicketUser{}}); got != "Usuario" {
		t.Fatalf("empty sender name should render as Usuario, got %q", got)
	}
}

func TestSelfRoleUsesLiveSessionRole(t *testing.T) {
	// The message was sent while the user was a plain user; they have been
	// promoted to agent since. Their own messages must show the live role.
	msg := types.Message{UserID: "u1", Sender: &types.TicketUser{ID: "u1", RolID: types.RolUsuario}}
	current := types.User{ID: "u1", RolID: types.RolAgente}

	if got := SenderRole(msg, current); got != types.RolAgente {
		t.Fatalf("self role = %d, want live session role", got)
	}
	if got := RoleLabel(msg, current); got != "Agente" {
		t.Fatalf("self role label = %q", got)
	}
}

func TestOtherRoleUsesEmbeddedSenderRole(t *testing.T) {
	current := types.User{ID: "u1", RolID: types.RolAdmin}

	msg := types.Message{UserID: "u2", Sender: &types.TicketUser{ID: "u2", RolID: types.RolAgente}}
	if got := SenderRole(msg, current); got != types.RolAgente {
		t.Fatalf("other role = %d, want embedded role", got)
	}

	noRole := types.Message{UserID: "u3", Sender: &types.TicketUser{ID: "u3"}}
	if got := SenderRole(noRole, current); got != types.RolUsuario {
		t.Fatalf("missing embedded role should default to Usuario, got %d", got)
	}
}
