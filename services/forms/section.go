package forms

// Section is the static descriptor for one step of a wizard: identity,
// display copy, its fields, and any auto-fill cascades. Sections are
// defined per wizard kind and never change at runtime.
type Section struct {
	ID          string
	Title       string
	Description string
	Fields      []Field
	Cascades    []Cascade
}

// ValidityListener receives the aggregate validity after every change.
type ValidityListener func(valid bool)

// DataListener receives a fresh snapshot of the value map after every
// change, whether or not validity moved.
type DataListener func(values Values)

// Controller owns one section's field values and recomputes aggregate
// validity whenever any field changes. Only the aggregate bool crosses the
// controller boundary; per-field messages stay here for rendering.
type Controller struct {
	section Section
	values  Values
	errors  map[string][]string
	valid   bool

	onValidity ValidityListener
	onData     DataListener
}

// NewController builds a controller seeded with initialData (may be nil for
// a first visit). Both listeners fire once during construction so the
// parent starts with a current snapshot.
func NewController(section Section, initialData Values, onValidity ValidityListener, onData DataListener) *Controller {
	c := &Controller{
		section:    section,
		onValidity: onValidity,
		onData:     onData,
	}
	c.Reset(initialData)
	return c
}

// Reset replaces the controller's entire state with initialData. No
// merging with prior state takes place.
func (c *Controller) Reset(initialData Values) {
	if initialData == nil {
		c.values = make(Values)
	} else {
		c.values = initialData.Clone()
	}
	c.recompute()
	c.emit()
}

// Set applies a single field edit. If the field triggers an auto-fill
// cascade, the dependent fields are written in the same update so the
// parent observes one atomic snapshot.
func (c *Controller) Set(name string, value any) {
	if f, ok := c.field(name); ok {
		value = normalize(f, value)
	}
	c.values[name] = value

	if filled := resolveCascades(c.section.Cascades, name, value); filled != nil {
		for k, v := range filled {
			c.values[k] = v
		}
	}

	c.recompute()
	c.emit()
}

// Apply performs one Set per entry. Used by the HTTP layer to replay a
// batch of edits from the frontend.
func (c *Controller) Apply(edits Values) {
	for name, value := range edits {
		c.Set(name, value)
	}
}

// Valid reports the current aggregate validity: every visible required
// field passes its rule. Optional fields never block. A section with zero
// fields is vacuously valid.
func (c *Controller) Valid() bool {
	return c.valid
}

// Values returns a snapshot of the current value map.
func (c *Controller) Values() Values {
	return c.values.Clone()
}

// FieldErrors returns the per-field messages for the visible surface,
// keyed by field name. Used for inline rendering only.
func (c *Controller) FieldErrors() map[string][]string {
	out := make(map[string][]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// VisibleFields returns the fields whose visibility predicate currently
// holds, in declaration order.
func (c *Controller) VisibleFields() []Field {
	out := make([]Field, 0, len(c.section.Fields))
	for _, f := range c.section.Fields {
		if f.Visible(c.values) {
			out = append(out, f)
		}
	}
	return out
}

// Section returns the static descriptor this controller was built from.
func (c *Controller) Section() Section {
	return c.section
}

func (c *Controller) field(name string) (Field, bool) {
	for _, f := range c.section.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// recompute re-evaluates every visible field. Hidden fields keep whatever
// stale value they hold but are excluded from validity.
func (c *Controller) recompute() {
	c.errors = make(map[string][]string)
	c.valid = true

	for _, f := range c.section.Fields {
		if !f.Visible(c.values) {
			continue
		}
		errs := f.Rule.Evaluate(c.values[f.Name], c.values)
		if len(errs) == 0 {
			continue
		}
		c.errors[f.Name] = errs
		if f.Rule.Required || f.Rule.RequireFile {
			c.valid = false
		}
	}
}

// emit notifies the parent: data first so the validity signal always refers
// to the latest snapshot.
func (c *Controller) emit() {
	if c.onData != nil {
		c.onData(c.values.Clone())
	}
	if c.onValidity != nil {
		c.onValidity(c.valid)
	}
}
