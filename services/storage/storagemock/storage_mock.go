package storagemock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nanofi-platform/api/services/storage"
)

// StorageMock implements storage.Storage with overridable func fields.
// Unset fields fall back to a plausible default so handler tests only
// stub what they assert on.
type StorageMock struct {
	SaveApplicationMock  func(ctx context.Context, app *storage.VaultApplication) (uuid.UUID, error)
	ListApplicationsMock func(ctx context.Context) ([]storage.VaultApplication, error)
	GetApplicationMock   func(ctx context.Context, id uuid.UUID) (*storage.VaultApplication, error)
	UpdateStatusMock     func(ctx context.Context, id uuid.UUID, status storage.Status, reviewer, reason string) (bool, error)
}

// Sample returns a pending application usable as a default fixture.
func Sample(id uuid.UUID) *storage.VaultApplication {
	return &storage.VaultApplication{
		ID:          id,
		Kind:        "patent-vault",
		SubmittedBy: "inventor@example.com",
		SubmittedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Status:      storage.StatusPending,
		FormData: map[string]map[string]any{
			"applicant": {"fullName": "Ada Example", "email": "inventor@example.com"},
		},
	}
}

func (m *StorageMock) SaveApplication(ctx context.Context, app *storage.VaultApplication) (uuid.UUID, error) {
	if m != nil && m.SaveApplicationMock != nil {
		return m.SaveApplicationMock(ctx, app)
	}
	return app.ID, nil
}

func (m *StorageMock) ListApplications(ctx context.Context) ([]storage.VaultApplication, error) {
	if m != nil && m.ListApplicationsMock != nil {
		return m.ListApplicationsMock(ctx)
	}
	return []storage.VaultApplication{*Sample(uuid.New())}, nil
}

func (m *StorageMock) GetApplication(ctx context.Context, id uuid.UUID) (*storage.VaultApplication, error) {
	if m != nil && m.GetApplicationMock != nil {
		return m.GetApplicationMock(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *StorageMock) UpdateStatus(ctx context.Context, id uuid.UUID, status storage.Status, reviewer, reason string) (bool, error) {
	if m != nil && m.UpdateStatusMock != nil {
		return m.UpdateStatusMock(ctx, id, status, reviewer, reason)
	}
	return true, nil
}
