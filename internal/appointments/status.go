package appointments

// Transitions maps each status to the statuses it may move to. A status
// missing from the map has no exits.
type Transitions map[Status][]Status

// Allowed reports whether moving from one status to another is permitted.
// Staying in place is always allowed.
func (t Transitions) Allowed(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Permissive allows any move between the known statuses. This matches how
// front-desk staff actually work: a no-show gets corrected to completed
// when the patient turns up late, a cancellation gets reinstated.
func Permissive() Transitions {
	all := []Status{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}
	t := make(Transitions, len(all))
	for _, s := range all {
		t[s] = all
	}
	return t
}

// ForwardOnly locks appointments once they leave the scheduled state.
// Clinics that treat completed visits as billing records opt into this.
func ForwardOnly() Transitions {
	return Transitions{
		StatusScheduled: {StatusCompleted, StatusCancelled, StatusNoShow},
	}
}

// Table selects the transition policy from configuration.
func Table(strict bool) Transitions {
	if strict {
		return ForwardOnly()
	}
	return Permissive()
}
