package blockchain

import (
	"context"
	"errors"
)

// ErrWalletNotFound is returned when a patient has no stored wallet yet.
var ErrWalletNotFound = errors.New("wallet not found")

// WalletRepository is the persistence boundary for patient wallets.
type WalletRepository interface {
	Insert(ctx context.Context, w *Wallet) error
	FindByPatient(ctx context.Context, patientID string) (*Wallet, error)
}
