package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanofi-platform/api/pkg/clients/chain"
	"nanofi-platform/api/pkg/clients/email"
	"nanofi-platform/api/services/forms"
	"nanofi-platform/api/services/storage"
	"nanofi-platform/api/services/storage/storagemock"
)

// failingChain always errors, standing in for a transient ledger outage.
type failingChain struct{}

func (failingChain) AnchorSubmission(context.Context, string) (*chain.Anchor, error) {
	return nil, errors.New("rpc node unreachable")
}

func sampleAnswers() map[string]forms.Values {
	return map[string]forms.Values{
		"applicant": {"fullName": "Ada Example", "email": "ada@example.com"},
		"review":    {"confirmed": true},
	}
}

func TestNewFinalizerNilDeps(t *testing.T) {
	t.Parallel()

	store := &storagemock.StorageMock{}
	chainClient := chain.NewStubClient(0)
	emailClient := email.NewStubClient("no-reply@test")

	_, err := NewFinalizer(nil, chainClient, emailClient)
	assert.Error(t, err)
	_, err = NewFinalizer(store, nil, emailClient)
	assert.Error(t, err)
	_, err = NewFinalizer(store, chainClient, nil)
	assert.Error(t, err)
	_, err = NewFinalizer(store, chainClient, emailClient)
	assert.NoError(t, err)
}

func TestFinalizerSubmit(t *testing.T) {
	t.Parallel()

	var saved *storage.VaultApplication
	store := &storagemock.StorageMock{
		SaveApplicationMock: func(_ context.Context, app *storage.VaultApplication) (uuid.UUID, error) {
			saved = app
			return app.ID, nil
		},
	}

	fin, err := NewFinalizer(store, chain.NewStubClient(0), email.NewStubClient("no-reply@test"))
	require.NoError(t, err)

	receipt, err := fin.Submit(context.Background(), "patent-vault", "ada@example.com", sampleAnswers())
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.NotEqual(t, uuid.Nil, receipt.ApplicationID)
	assert.NotEmpty(t, receipt.TxHash)

	// The persisted record carries the full answer map as pending.
	require.NotNil(t, saved)
	assert.Equal(t, storage.StatusPending, saved.Status)
	assert.Equal(t, "patent-vault", saved.Kind)
	assert.Equal(t, "ada@example.com", saved.SubmittedBy)
	assert.Equal(t, "Ada Example", saved.FormData["applicant"]["fullName"])
}

func TestFinalizerSubmitEmptyAnswers(t *testing.T) {
	t.Parallel()

	fin, err := NewFinalizer(&storagemock.StorageMock{}, chain.NewStubClient(0), email.NewStubClient("no-reply@test"))
	require.NoError(t, err)

	_, err = fin.Submit(context.Background(), "patent-vault", "ada@example.com", nil)
	assert.ErrorIs(t, err, ErrEmptyAnswers)
}

func TestFinalizerSubmitStorageFailure(t *testing.T) {
	t.Parallel()

	store := &storagemock.StorageMock{
		SaveApplicationMock: func(context.Context, *storage.VaultApplication) (uuid.UUID, error) {
			return uuid.Nil, errors.New("connection refused")
		},
	}
	fin, err := NewFinalizer(store, chain.NewStubClient(0), email.NewStubClient("no-reply@test"))
	require.NoError(t, err)

	_, err = fin.Submit(context.Background(), "patent-vault", "ada@example.com", sampleAnswers())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save application")
}

func TestFinalizerSubmitChainFailure(t *testing.T) {
	t.Parallel()

	fin, err := NewFinalizer(&storagemock.StorageMock{}, failingChain{}, email.NewStubClient("no-reply@test"))
	require.NoError(t, err)

	_, err = fin.Submit(context.Background(), "patent-vault", "ada@example.com", sampleAnswers())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anchor submission")
}
