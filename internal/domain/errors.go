package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInitializer is returned when initializer data cannot be built from the ABI and args
	ErrInvalidInitializer = errors.New("invalid initializer")

	// ErrInvalidProxyKind is returned for proxy kinds other than uups/transparent/auto
	ErrInvalidProxyKind = errors.New("invalid proxy kind")

	// ErrNoSigner is returned when no deployer key is configured
	ErrNoSigner = errors.New("no signer configured")

	// ErrNoNetwork is returned when a command needs a network and none was selected
	ErrNoNetwork = errors.New("no network configured")

	// ErrChainIDMismatch is returned when the RPC endpoint reports a different chain than expected
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// ArtifactNotFoundError means no compiled artifact matches the requested name.
type ArtifactNotFoundError struct {
	Name        string
	Suggestions []string
	Reason      string
}

func (e *ArtifactNotFoundError) Error() string {
	var b strings.Builder
	if e.Name == "" {
		b.WriteString("artifact not found: no contract name given")
	} else {
		fmt.Fprintf(&b, "artifact not found: %s", e.Name)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, " (%s)", e.Reason)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, "; did you mean %s?", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *ArtifactNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousArtifactError is returned when a bare name matches several artifacts
// and no interactive selection is possible.
type AmbiguousArtifactError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousArtifactError) Error() string {
	lines := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		lines[i] = "  - " + m
	}
	return fmt.Sprintf("multiple artifacts match %q - use path:Name to disambiguate:\n%s",
		e.Name, strings.Join(lines, "\n"))
}

// DeploymentStage names the step at which a deployment was rejected.
type DeploymentStage string

const (
	StageImplementation DeploymentStage = "implementation"
	StageProxy          DeploymentStage = "proxy"
)

// DeploymentRejectedError means the network or the signer refused a deployment
// transaction, or the transaction was mined but reverted.
type DeploymentRejectedError struct {
	Stage  DeploymentStage
	TxHash common.Hash
	Err    error
}

func (e *DeploymentRejectedError) Error() string {
	if e.TxHash != (common.Hash{}) {
		return fmt.Sprintf("%s deployment rejected (tx %s): %v", e.Stage, e.TxHash.Hex(), e.Err)
	}
	return fmt.Sprintf("%s deployment rejected: %v", e.Stage, e.Err)
}

func (e *DeploymentRejectedError) Unwrap() error { return e.Err }

// ConfirmationTimeoutError means a submitted transaction did not reach the
// required confirmation depth before the timeout elapsed.
type ConfirmationTimeoutError struct {
	TxHash        common.Hash
	Timeout       time.Duration
	Confirmations uint64
	// LastErr is the last error seen while polling, if any.
	LastErr error
}

func (e *ConfirmationTimeoutError) Error() string {
	msg := fmt.Sprintf("transaction %s not confirmed (%d confirmations) within %s",
		e.TxHash.Hex(), e.Confirmations, e.Timeout)
	if e.LastErr != nil {
		msg += ": " + e.LastErr.Error()
	}
	return msg
}

func (e *ConfirmationTimeoutError) Unwrap() error { return e.LastErr }
