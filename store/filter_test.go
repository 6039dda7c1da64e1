package store

import (
	"testing"

	"helpdesk/types"
)

func sampleTickets() []types.Ticket {
	return []types.Ticket{
		{ID: 1, Title: "Impresora atascada", Description: "papel", SwStatus: types.StatusAbierto, PriorityID: types.PrioridadBaja},
		{ID: 2, Title: "Sin acceso VPN", Description: "remoto", SwStatus: types.StatusAsignado, PriorityID: types.PrioridadAlta},
		{ID: 3, Title: "Correo lento", Description: "impresora mencionada", SwStatus: types.StatusDevuelto, PriorityID: types.PrioridadMedia},
		{ID: 4, Title: "Teclado roto", Description: "hardware", SwStatus: types.StatusCerrado, PriorityID: types.PrioridadBaja},
	}
}

func ids(tickets []types.Ticket) []int {
	out := make([]int, len(tickets))
	for i, t := range tickets {
		out[i] = t.ID
	}
	return out
}

func TestFilterSearchMatchesTitleAndDescription(t *testing.T) {
	got := Filter{Search: "IMPRESORA"}.Apply(sampleTickets())
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("search matched %v", ids(got))
	}
}

func TestFilterSearchDoesNotSpanFields(t *testing.T) {
	tickets := []types.Ticket{
		{ID: 1, Title: "Sin im", Description: "presora en la oficina"},
		{ID: 2, Title: "Impresora dañada", Description: "no enciende"},
	}
	got := Filter{Search: "impresora"}.Apply(tickets)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("search matched across field boundary: %v", ids(got))
	}
}

func TestFilterStatusAndPriority(t *testing.T) {
	got := Filter{Status: types.StatusAsignado}.Apply(sampleTickets())
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("status filter matched %v", ids(got))
	}

	got = Filter{Priority: types.PrioridadBaja}.Apply(sampleTickets())
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("priority filter matched %v", ids(got))
	}

	got = Filter{Search: "roto", Priority: types.PrioridadBaja}.Apply(sampleTickets())
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("combined filter matched %v", ids(got))
	}
}

func TestZeroFilterKeepsEverything(t *testing.T) {
	if got := (Filter{}).Apply(sampleTickets()); len(got) != 4 {
		t.Fatalf("zero filter dropped tickets: %v", ids(got))
	}
}

func TestAssignedQueueAndClaimPool(t *testing.T) {
	queue := AssignedQueue(sampleTickets())
	if len(queue) != 1 || queue[0].ID != 2 {
		t.Fatalf("assigned queue = %v", ids(queue))
	}

	pool := ClaimPool(sampleTickets())
	if len(pool) != 2 || pool[0].ID != 1 || pool[1].ID != 3 {
		t.Fatalf("claim pool = %v", ids(pool))
	}
}
