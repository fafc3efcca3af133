package blockchain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/hoist/internal/domain"
)

// NewTransactor builds signing options for a hex private key on chainID
func NewTransactor(privateKey string, chainID uint64) (*bind.TransactOpts, common.Address, error) {
	privateKey = strings.TrimSpace(privateKey)
	if privateKey == "" {
		return nil, common.Address{}, fmt.Errorf("%w: set HOIST_PRIVATE_KEY or private_key in foundry.toml", domain.ErrNoSigner)
	}
	if strings.Contains(privateKey, "${") {
		return nil, common.Address{}, fmt.Errorf("%w: private key references an unset variable", domain.ErrNoSigner)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, new(big.Int).SetUint64(chainID))
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to create transactor: %w", err)
	}
	return opts, crypto.PubkeyToAddress(key.PublicKey), nil
}
