package mealstatus

// Presentation is the badge rendered for a status: a color token, an icon
// token and user-facing texts. The table is a fixed constant, not runtime
// configurable.
type Presentation struct {
	Status  Status `json:"status"`
	Color   string `json:"color"`
	Icon    string `json:"icon"`
	Label   string `json:"label"`
	Tooltip string `json:"tooltip"`
}

var presentations = map[Status]Presentation{
	StatusAvailable: {
		Status:  StatusAvailable,
		Color:   "green-300",
		Icon:    "circulo-check",
		Label:   "Disponível",
		Tooltip: "Você pode reservar esta refeição.",
	},
	StatusClosed: {
		Status:  StatusClosed,
		Color:   "gray-600",
		Icon:    "relogio-x",
		Label:   "Encerrado",
		Tooltip: "O horário de reservas já foi ultrapassado.",
	},
	StatusBlocked: {
		Status:  StatusBlocked,
		Color:   "yellow-200",
		Icon:    "cadeado",
		Label:   "Bloqueado",
		Tooltip: "Esta refeição não está liberada para você.",
	},
	StatusCanceled: {
		Status:  StatusCanceled,
		Color:   "red-400",
		Icon:    "tag-x",
		Label:   "Cancelado",
		Tooltip: "Você cancelou esta refeição.",
	},
	StatusReserved: {
		Status:  StatusReserved,
		Color:   "green-300",
		Icon:    "circulo-check",
		Label:   "Reservado",
		Tooltip: "Você reservou esta refeição.",
	},
	StatusUnavailable: {
		Status:  StatusUnavailable,
		Color:   "gray-600",
		Icon:    "relogio-x",
		Label:   "Indisponível",
		Tooltip: "Está muito cedo ou muito tarde para reservar esta refeição.",
	},
}

// PresentationFor returns the badge for a status. Unknown statuses fall back
// to the unavailable badge, keeping the lookup total.
func PresentationFor(s Status) Presentation {
	if p, ok := presentations[s]; ok {
		return p
	}
	return presentations[StatusUnavailable]
}

// Legend lists all six presentations in a stable order for the UI.
func Legend() []Presentation {
	order := []Status{
		StatusAvailable,
		StatusReserved,
		StatusCanceled,
		StatusBlocked,
		StatusClosed,
		StatusUnavailable,
	}
	legend := make([]Presentation, 0, len(order))
	for _, s := range order {
		legend = append(legend, presentations[s])
	}
	return legend
}
