package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"nanofi-platform/api/pkg/clients/chain"
	"nanofi-platform/api/pkg/clients/email"
	"nanofi-platform/api/services/forms"
	"nanofi-platform/api/services/storage"
)

// ErrEmptyAnswers is returned when a session reaches finalization with no
// collected data. The orchestrator's gating normally makes this unreachable.
var ErrEmptyAnswers = errors.New("no answers to submit")

// Receipt is returned to the user after a successful submission.
type Receipt struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	TxHash        string    `json:"txHash"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// Finalizer packages a session's accumulated answers into a persisted
// VaultApplication, anchors the submission on the (stub) ledger, and
// acknowledges it by email. Failures are returned to the caller untouched;
// there is no retry here, the user retries the submit action manually.
type Finalizer struct {
	store storage.Storage
	chain chain.Client
	email email.Client
}

// NewFinalizer wires the finalizer's dependencies.
func NewFinalizer(store storage.Storage, chainClient chain.Client, emailClient email.Client) (*Finalizer, error) {
	if store == nil {
		return nil, fmt.Errorf("finalizer: store cannot be nil")
	}
	if chainClient == nil {
		return nil, fmt.Errorf("finalizer: chain client cannot be nil")
	}
	if emailClient == nil {
		return nil, fmt.Errorf("finalizer: email client cannot be nil")
	}
	return &Finalizer{store: store, chain: chainClient, email: emailClient}, nil
}

// Submit persists the answers as a pending application and anchors it.
// The acknowledgement email is best-effort: a logging stub today, and even
// a real provider failing should not fail a stored submission.
func (f *Finalizer) Submit(ctx context.Context, kind, submittedBy string, answers map[string]forms.Values) (*Receipt, error) {
	if len(answers) == 0 {
		return nil, ErrEmptyAnswers
	}

	formData := make(map[string]map[string]any, len(answers))
	for sectionID, vals := range answers {
		formData[sectionID] = map[string]any(vals)
	}

	app := &storage.VaultApplication{
		ID:          uuid.New(),
		Kind:        kind,
		SubmittedBy: submittedBy,
		SubmittedAt: time.Now(),
		Status:      storage.StatusPending,
		FormData:    formData,
	}

	id, err := f.store.SaveApplication(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("save application: %w", err)
	}

	anchor, err := f.chain.AnchorSubmission(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("anchor submission: %w", err)
	}

	if _, err := f.email.Send(ctx, email.Message{
		To:      submittedBy,
		Subject: "Your " + kind + " submission was received",
		Body:    fmt.Sprintf("Application %s is pending SPV review. Anchor tx: %s", id, anchor.TxHash),
	}); err != nil {
		slog.Warn("failed to send submission acknowledgement", "applicationId", id, "error", err)
	}

	return &Receipt{
		ApplicationID: id,
		TxHash:        anchor.TxHash,
		SubmittedAt:   app.SubmittedAt,
	}, nil
}
