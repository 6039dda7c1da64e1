package types

// StatusText maps a sw_status code to its display label. Any code outside
// 1-7 renders as "Desconocido" instead of failing.
func StatusText(swStatus int) string {
	switch swStatus {
	case StatusAbierto:
		return "Abierto"
	case StatusAsignado:
		return "Asignado"
	case StatusEnProgreso:
		return "En Progreso"
	case StatusEntregado:
		return "Entregado"
	case StatusDevuelto:
		return "Devuelto"
	case StatusResuelto:
		return "Resuelto"
	case StatusCerrado:
		return "Cerrado"
	default:
		return "Desconocido"
	}
}

// RoleName maps a rol_id to its display label, defaulting to "Usuario" for
// anything unrecognized (including a missing sender role).
func RoleName(rolID int) string {
	switch rolID {
	case RolUsuario:
		return "Usuario"
	case RolAgente:
		return "Agente"
	case RolAdmin:
		return "Admin"
	default:
		return "Usuario"
	}
}

func PriorityText(priorityID int) string {
	switch priorityID {
	case PrioridadBaja:
		return "Baja"
	case PrioridadMedia:
		return "Media"
	case PrioridadAlta:
		return "Alta"
	default:
		return "Desconocida"
	}
}

// StatusOptions lists every known status in code order, for selection
// controls.
func StatusOptions() []int {
	return []int{
		StatusAbierto,
		StatusAsignado,
		StatusEnProgreso,
		StatusEntregado,
		StatusDevuelto,
		StatusResuelto,
		StatusCerrado,
	}
}

func PriorityOptions() []int {
	return []int{PrioridadBaja, PrioridadMedia, PrioridadAlta}
}
