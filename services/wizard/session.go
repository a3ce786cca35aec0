package wizard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"nanofi-platform/api/services/forms"
)

// Validity is the tri-state validation status of one section. Unknown is
// distinct from invalid: a section that was never evaluated blocks forward
// navigation exactly like a failing one.
type Validity int

const (
	ValidityUnknown Validity = iota
	ValidityInvalid
	ValidityValid
)

func (v Validity) String() string {
	switch v {
	case ValidityInvalid:
		return "invalid"
	case ValidityValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Navigation and submission outcomes surfaced to the HTTP layer.
var (
	ErrSectionIncomplete = errors.New("complete the required fields before continuing")
	ErrAtFirstSection    = errors.New("already at the first section")
	ErrAtLastSection     = errors.New("already at the last section")
	ErrNotAtFinalSection = errors.New("submission is only available on the final section")
	ErrSubmitInFlight    = errors.New("a submission is already in progress")
	ErrAlreadySubmitted  = errors.New("this session has already been submitted")
)

// Submitter finalizes a wizard session's accumulated answers. Implemented
// by Finalizer in production and by fakes in tests.
type Submitter interface {
	Submit(ctx context.Context, kind, submittedBy string, answers map[string]forms.Values) (*Receipt, error)
}

// Session is one in-progress walk through a wizard: the ordered section
// list fixed at construction, the current index, the tri-state validity
// map, the monotonically growing completed set, and the accumulated answer
// map. Sessions live in memory only; abandoning one discards all progress.
//
// All operations hold the session mutex end to end, preserving the
// one-event-at-a-time discipline the engine assumes: the validity snapshot
// read by Next is always the latest one emitted by the controller.
type Session struct {
	ID          uuid.UUID
	Kind        string
	SubmittedBy string
	CreatedAt   time.Time

	mu         sync.Mutex
	wizard     forms.Wizard
	index      int
	validity   map[string]Validity
	completed  map[string]struct{}
	answers    map[string]forms.Values
	controller *forms.Controller
	submitting bool
	receipt    *Receipt
}

// NewSession starts a wizard at section 0 with everything unknown and
// empty, then mounts the first section's controller.
func NewSession(w forms.Wizard, submittedBy string) *Session {
	s := &Session{
		ID:          uuid.New(),
		Kind:        w.Kind,
		SubmittedBy: submittedBy,
		CreatedAt:   time.Now(),
		wizard:      w,
		validity:    make(map[string]Validity, len(w.Sections)),
		completed:   make(map[string]struct{}),
		answers:     make(map[string]forms.Values, len(w.Sections)),
	}
	s.mountController()
	return s
}

// mountController attaches a fresh controller for the current section,
// seeded with any answers saved from a previous visit. The controller's
// construction callbacks refresh this session's validity and answer
// snapshot for that section.
func (s *Session) mountController() {
	sec := s.wizard.Sections[s.index]
	s.controller = forms.NewController(sec, s.answers[sec.ID],
		func(valid bool) {
			if valid {
				s.validity[sec.ID] = ValidityValid
			} else {
				s.validity[sec.ID] = ValidityInvalid
			}
		},
		func(values forms.Values) {
			s.answers[sec.ID] = values
		},
	)
}

// UpdateData applies a batch of field edits to the current section.
func (s *Session) UpdateData(edits forms.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.receipt != nil {
		return ErrAlreadySubmitted
	}
	if s.submitting {
		return ErrSubmitInFlight
	}

	s.controller.Apply(edits)
	return nil
}

// Next advances to the following section. The gate is strict: only a
// section whose validity is exactly ValidityValid passes, while unknown and
// invalid both block without moving the index. On success the current
// section joins the completed set (idempotent) before the index moves.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.receipt != nil {
		return ErrAlreadySubmitted
	}
	if s.submitting {
		return ErrSubmitInFlight
	}

	cur := s.wizard.Sections[s.index]
	if s.validity[cur.ID] != ValidityValid {
		return ErrSectionIncomplete
	}

	s.completed[cur.ID] = struct{}{}

	if s.index >= len(s.wizard.Sections)-1 {
		return ErrAtLastSection
	}

	s.index++
	s.mountController()
	return nil
}

// Previous steps back one section. Always permitted above index 0,
// regardless of validity; the completed set is never shrunk.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.receipt != nil {
		return ErrAlreadySubmitted
	}
	if s.submitting {
		return ErrSubmitInFlight
	}

	if s.index == 0 {
		return ErrAtFirstSection
	}

	s.index--
	s.mountController()
	return nil
}

// Submit finalizes the session. Only available on the last section; the
// submitting flag gives at-most-one in-flight call. On failure the answer
// map is untouched so the user can retry the same action. Success is
// terminal: the receipt is recorded and every further operation reports
// ErrAlreadySubmitted.
func (s *Session) Submit(ctx context.Context, fin Submitter) (*Receipt, error) {
	s.mu.Lock()
	if s.receipt != nil {
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if s.index != len(s.wizard.Sections)-1 {
		s.mu.Unlock()
		return nil, ErrNotAtFinalSection
	}

	s.submitting = true
	kind, submittedBy := s.Kind, s.SubmittedBy
	answers := make(map[string]forms.Values, len(s.answers))
	for id, vals := range s.answers {
		answers[id] = vals.Clone()
	}
	s.mu.Unlock()

	// The finalizer call is the only suspension point in the engine; the
	// lock is released so reads of the session stay responsive.
	receipt, err := fin.Submit(ctx, kind, submittedBy, answers)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		return nil, err
	}
	s.receipt = receipt
	return receipt, nil
}

// Progress is the derived completion percentage.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.index+1) / float64(len(s.wizard.Sections)) * 100
}

// FieldView is the render shape for one visible field.
type FieldView struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	ReadOnly bool     `json:"readOnly"`
	Options  []string `json:"options,omitempty"`
}

// SectionView is the render shape for the current section.
type SectionView struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Fields      []FieldView         `json:"fields"`
	Values      forms.Values        `json:"values"`
	Errors      map[string][]string `json:"errors"`
	Validity    string              `json:"validity"`
}

// View is the full session state returned by the session endpoint.
type View struct {
	ID         uuid.UUID   `json:"id"`
	Kind       string      `json:"kind"`
	Title      string      `json:"title"`
	Step       int         `json:"step"`
	TotalSteps int         `json:"totalSteps"`
	Progress   float64     `json:"progress"`
	Completed  []string    `json:"completed"`
	Submitting bool        `json:"submitting"`
	Receipt    *Receipt    `json:"receipt,omitempty"`
	Section    SectionView `json:"section"`
}

// View assembles the serializable state of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := s.wizard.Sections[s.index]

	fields := make([]FieldView, 0, len(sec.Fields))
	for _, f := range s.controller.VisibleFields() {
		fields = append(fields, FieldView{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     string(f.Kind),
			Required: f.Rule.Required || f.Rule.RequireFile,
			ReadOnly: f.AutoFill,
			Options:  f.Options,
		})
	}

	completed := make([]string, 0, len(s.completed))
	for id := range s.completed {
		completed = append(completed, id)
	}
	sort.Strings(completed)

	return View{
		ID:         s.ID,
		Kind:       s.Kind,
		Title:      s.wizard.Title,
		Step:       s.index + 1,
		TotalSteps: len(s.wizard.Sections),
		Progress:   float64(s.index+1) / float64(len(s.wizard.Sections)) * 100,
		Completed:  completed,
		Submitting: s.submitting,
		Receipt:    s.receipt,
		Section: SectionView{
			ID:          sec.ID,
			Title:       sec.Title,
			Description: sec.Description,
			Fields:      fields,
			Values:      s.controller.Values(),
			Errors:      s.controller.FieldErrors(),
			Validity:    s.validity[sec.ID].String(),
		},
	}
}
