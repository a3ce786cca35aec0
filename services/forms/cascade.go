package forms

// Cascade auto-fills dependent fields when a reference entity is selected.
// Lookup resolves the selected id to the values to write; a miss leaves
// every dependent field untouched (fail silent, not an error).
type Cascade struct {
	// Trigger is the select field whose value drives the lookup.
	Trigger string

	// Lookup resolves an id from the reference catalog.
	Lookup func(id string) (Values, bool)
}

// resolve returns the dependent values for a trigger edit, or nil when the
// edit does not hit any cascade.
func resolveCascades(cascades []Cascade, name string, value any) Values {
	id, ok := value.(string)
	if !ok {
		return nil
	}
	for _, c := range cascades {
		if c.Trigger != name {
			continue
		}
		if filled, ok := c.Lookup(id); ok {
			return filled
		}
	}
	return nil
}
