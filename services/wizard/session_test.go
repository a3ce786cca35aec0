package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanofi-platform/api/services/forms"
)

// testWizard is a compact three-section wizard exercising the full
// transition surface without dragging in the production catalogs.
func testWizard() forms.Wizard {
	return forms.Wizard{
		Kind:  "test",
		Title: "Test Wizard",
		Sections: []forms.Section{
			{
				ID: "one",
				Fields: []forms.Field{
					{Name: "a", Kind: forms.KindText, Rule: forms.Rule{Required: true}},
					{Name: "b", Kind: forms.KindText, Rule: forms.Rule{Required: true}},
					{Name: "c", Kind: forms.KindText, Rule: forms.Rule{Required: true}},
				},
			},
			{
				ID: "two",
				Fields: []forms.Field{
					{Name: "x", Kind: forms.KindText, Rule: forms.Rule{Required: true}},
				},
			},
			{
				ID: "three",
				Fields: []forms.Field{
					{Name: "confirmed", Kind: forms.KindToggle, Rule: forms.Rule{Required: true}},
				},
			},
		},
	}
}

// fakeSubmitter is a controllable Submitter for session tests.
type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	err     error
	block   chan struct{} // when set, Submit waits until closed
	receipt *Receipt
}

func (f *fakeSubmitter) Submit(_ context.Context, _, _ string, _ map[string]forms.Values) (*Receipt, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.receipt != nil {
		return f.receipt, nil
	}
	return &Receipt{ApplicationID: uuid.New(), TxHash: "0xabc", SubmittedAt: time.Now()}, nil
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// completeSection fills every field of the current test-wizard section.
func completeSection(t *testing.T, s *Session, sectionID string) {
	t.Helper()
	switch sectionID {
	case "one":
		require.NoError(t, s.UpdateData(forms.Values{"a": "1", "b": "2", "c": "3"}))
	case "two":
		require.NoError(t, s.UpdateData(forms.Values{"x": "value"}))
	case "three":
		require.NoError(t, s.UpdateData(forms.Values{"confirmed": true}))
	}
}

func TestSessionStrictGating(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")

	// All three fields empty: invalid, Next blocks, index unchanged.
	require.ErrorIs(t, s.Next(), ErrSectionIncomplete)
	assert.Equal(t, 1, s.View().Step)

	// Two of three is not good enough.
	require.NoError(t, s.UpdateData(forms.Values{"a": "1", "b": "2"}))
	require.ErrorIs(t, s.Next(), ErrSectionIncomplete)
	assert.Equal(t, 1, s.View().Step)
	assert.Empty(t, s.View().Completed)

	// All three valid: the transition goes through.
	require.NoError(t, s.UpdateData(forms.Values{"c": "3"}))
	require.NoError(t, s.Next())
	assert.Equal(t, 2, s.View().Step)
	assert.Equal(t, []string{"one"}, s.View().Completed)
}

func TestSessionUnknownValidityBlocks(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")

	// Force the tri-state back to unknown: the gate must treat it exactly
	// like invalid, not as a falsy value that happens to pass.
	s.mu.Lock()
	s.validity["one"] = ValidityUnknown
	s.mu.Unlock()

	require.ErrorIs(t, s.Next(), ErrSectionIncomplete)
	assert.Equal(t, 1, s.View().Step)
}

func TestSessionCompletionIsMonotonic(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")

	completeSection(t, s, "one")
	require.NoError(t, s.Next())
	completeSection(t, s, "two")
	require.NoError(t, s.Next())

	// Walking backwards, invalidating sections, and re-advancing never
	// removes ids from the completed set.
	require.NoError(t, s.Previous())
	require.NoError(t, s.UpdateData(forms.Values{"x": ""}))
	assert.ElementsMatch(t, []string{"one", "two"}, s.View().Completed)

	require.NoError(t, s.Previous())
	assert.ElementsMatch(t, []string{"one", "two"}, s.View().Completed)
}

func TestSessionBackwardFreedom(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	completeSection(t, s, "one")
	require.NoError(t, s.Next())

	// Previous works regardless of the current section's validity.
	require.ErrorIs(t, s.Next(), ErrSectionIncomplete)
	require.NoError(t, s.Previous())
	assert.Equal(t, 1, s.View().Step)

	require.ErrorIs(t, s.Previous(), ErrAtFirstSection)
	assert.Equal(t, 1, s.View().Step)
}

func TestSessionReentrySeedsSavedAnswers(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	completeSection(t, s, "one")
	require.NoError(t, s.Next())
	require.NoError(t, s.Previous())

	// The remounted controller is seeded from the saved answers, so the
	// section is immediately valid again and its data is intact.
	view := s.View()
	assert.Equal(t, "1", view.Section.Values["a"])
	assert.Equal(t, "valid", view.Section.Validity)
	require.NoError(t, s.Next())
}

func TestSessionProgress(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	assert.InDelta(t, 33.33, s.Progress(), 0.01)

	completeSection(t, s, "one")
	require.NoError(t, s.Next())
	assert.InDelta(t, 66.66, s.Progress(), 0.01)

	completeSection(t, s, "two")
	require.NoError(t, s.Next())
	assert.InDelta(t, 100.0, s.Progress(), 0.01)
}

func TestSessionNextBlockedAtLastSection(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	completeSection(t, s, "one")
	require.NoError(t, s.Next())
	completeSection(t, s, "two")
	require.NoError(t, s.Next())
	completeSection(t, s, "three")

	require.ErrorIs(t, s.Next(), ErrAtLastSection)
	assert.Equal(t, 3, s.View().Step)
}

func TestSessionSubmitOnlyOnFinalSection(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	_, err := s.Submit(context.Background(), &fakeSubmitter{})
	require.ErrorIs(t, err, ErrNotAtFinalSection)
}

func advanceToFinal(t *testing.T, s *Session) {
	t.Helper()
	completeSection(t, s, "one")
	require.NoError(t, s.Next())
	completeSection(t, s, "two")
	require.NoError(t, s.Next())
	completeSection(t, s, "three")
}

func TestSessionSubmitSuccessIsTerminal(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	advanceToFinal(t, s)

	fake := &fakeSubmitter{}
	receipt, err := s.Submit(context.Background(), fake)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	// Everything after success reports the terminal state.
	_, err = s.Submit(context.Background(), fake)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.ErrorIs(t, s.Next(), ErrAlreadySubmitted)
	assert.ErrorIs(t, s.Previous(), ErrAlreadySubmitted)
	assert.ErrorIs(t, s.UpdateData(forms.Values{"confirmed": false}), ErrAlreadySubmitted)
	assert.Equal(t, 1, fake.callCount())
}

func TestSessionSubmitFailurePreservesAnswers(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	advanceToFinal(t, s)

	fake := &fakeSubmitter{err: errors.New("ledger unavailable")}
	_, err := s.Submit(context.Background(), fake)
	require.Error(t, err)

	// The answer map is untouched; the same action can be retried and
	// succeed without re-entering data.
	view := s.View()
	assert.Equal(t, true, view.Section.Values["confirmed"])

	fake.err = nil
	receipt, err := s.Submit(context.Background(), fake)
	require.NoError(t, err)
	assert.NotNil(t, receipt)
	assert.Equal(t, 2, fake.callCount())
}

func TestSessionAtMostOneInFlightSubmit(t *testing.T) {
	t.Parallel()

	s := NewSession(testWizard(), "ada@example.com")
	advanceToFinal(t, s)

	block := make(chan struct{})
	fake := &fakeSubmitter{block: block}

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background(), fake)
		done <- err
	}()

	// Wait for the first submit to be in flight.
	require.Eventually(t, func() bool { return fake.callCount() == 1 }, time.Second, time.Millisecond)

	// A concurrent second submit is rejected without reaching the finalizer.
	_, err := s.Submit(context.Background(), fake)
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.ErrorIs(t, s.UpdateData(forms.Values{"confirmed": false}), ErrSubmitInFlight)

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, fake.callCount())
}

func TestSessionStore(t *testing.T) {
	t.Parallel()

	store := NewSessionStore()
	s := NewSession(testWizard(), "ada@example.com")

	store.Add(s)
	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, store.Len())

	store.Remove(s.ID)
	_, ok = store.Get(s.ID)
	assert.False(t, ok)

	// Removing an unknown id is a no-op.
	store.Remove(uuid.New())
}
