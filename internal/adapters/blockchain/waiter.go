package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sethvargo/go-retry"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

var errReverted = errors.New("transaction reverted")

// ConfirmationWaiter polls for a receipt until it is buried under enough blocks
type ConfirmationWaiter struct {
	connector     *Connector
	confirmations uint64
	pollInterval  time.Duration
	timeout       time.Duration
	log           *slog.Logger
}

// NewConfirmationWaiter creates a waiter using the deploy settings
func NewConfirmationWaiter(cfg *config.RuntimeConfig, connector *Connector, log *slog.Logger) *ConfirmationWaiter {
	return &ConfirmationWaiter{
		connector:     connector,
		confirmations: cfg.Deploy.Confirmations,
		pollInterval:  cfg.Deploy.PollInterval,
		timeout:       cfg.Timeout,
		log:           log.With("component", "ConfirmationWaiter"),
	}
}

// AwaitConfirmation waits for a proxy deployment transaction
func (w *ConfirmationWaiter) AwaitConfirmation(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	return w.Await(ctx, tx, domain.StageProxy)
}

// Await blocks until tx has the configured number of confirmations. A
// reverted receipt is a *domain.DeploymentRejectedError for stage; running
// out of time is a *domain.ConfirmationTimeoutError.
func (w *ConfirmationWaiter) Await(ctx context.Context, tx *types.Transaction, stage domain.DeploymentStage) (*types.Receipt, error) {
	backend, _, err := w.connector.Connect(ctx)
	if err != nil {
		return nil, err
	}

	confirmations := w.confirmations
	if confirmations == 0 {
		confirmations = 1
	}

	backoff, err := retry.NewConstant(w.pollInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	hash := tx.Hash()
	w.log.Debug("waiting for confirmation", "tx", hash.Hex(), "confirmations", confirmations)

	var (
		receipt *types.Receipt
		lastErr error
	)
	err = retry.Do(waitCtx, backoff, func(ctx context.Context) error {
		r, err := backend.TransactionReceipt(ctx, hash)
		if err != nil {
			// ethereum.NotFound while the transaction is pending
			lastErr = err
			return retry.RetryableError(err)
		}
		if r.Status == types.ReceiptStatusFailed {
			receipt = r
			return &domain.DeploymentRejectedError{Stage: stage, TxHash: hash, Err: errReverted}
		}

		head, err := backend.BlockNumber(ctx)
		if err != nil {
			lastErr = err
			return retry.RetryableError(err)
		}

		mined := r.BlockNumber.Uint64()
		var depth uint64
		if head >= mined {
			depth = head - mined + 1
		}
		if depth < confirmations {
			lastErr = fmt.Errorf("%d of %d confirmations", depth, confirmations)
			return retry.RetryableError(lastErr)
		}

		receipt = r
		return nil
	})

	var rejected *domain.DeploymentRejectedError
	switch {
	case err == nil:
		w.log.Debug("transaction confirmed", "tx", hash.Hex(), "block", receipt.BlockNumber)
		return receipt, nil
	case errors.As(err, &rejected):
		return nil, err
	case ctx.Err() != nil:
		return nil, fmt.Errorf("stopped waiting for %s: %w", hash.Hex(), ctx.Err())
	case errors.Is(waitCtx.Err(), context.DeadlineExceeded):
		return nil, &domain.ConfirmationTimeoutError{
			TxHash:        hash,
			Timeout:       w.timeout,
			Confirmations: confirmations,
			LastErr:       lastErr,
		}
	default:
		return nil, err
	}
}

var _ usecase.ConfirmationWaiter = (*ConfirmationWaiter)(nil)
