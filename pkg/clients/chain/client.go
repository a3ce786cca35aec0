package chain

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"
)

// Anchor holds the outcome of anchoring a submission on the ledger.
type Anchor struct {
	TxHash      string
	ConfirmedAt time.Time
}

// Client defines the interface for anchoring application fingerprints
// on a ledger. Implementations can be swapped between a stub (for dev and
// testing) and a real chain integration.
type Client interface {
	AnchorSubmission(ctx context.Context, applicationID string) (*Anchor, error)
}

// StubClient simulates on-chain anchoring with a fixed delay and a random
// transaction hash. No network calls are made.
type StubClient struct {
	Delay time.Duration
}

// NewStubClient creates a chain client that simulates confirmation latency.
func NewStubClient(delay time.Duration) *StubClient {
	return &StubClient{Delay: delay}
}

func (c *StubClient) AnchorSubmission(ctx context.Context, applicationID string) (*Anchor, error) {
	select {
	case <-time.After(c.Delay):
	case <-ctx.Done():
		return nil, fmt.Errorf("anchoring cancelled: %w", ctx.Err())
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate tx hash: %w", err)
	}
	hash := "0x" + hex.EncodeToString(buf)

	slog.Info("anchored submission (stub)", "applicationId", applicationID, "txHash", hash)
	return &Anchor{
		TxHash:      hash,
		ConfirmedAt: time.Now(),
	}, nil
}
