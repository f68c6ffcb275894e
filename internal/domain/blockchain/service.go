package blockchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omnihealth/guardian/internal/domain/alert"
	"github.com/omnihealth/guardian/internal/domain/patient"
	"github.com/omnihealth/guardian/internal/platform/chain"
)

// PatientGetter resolves a patient. Satisfied by the patient repository.
type PatientGetter interface {
	Get(ctx context.Context, id string) (*patient.Patient, error)
}

// AlertGetter resolves an alert. Satisfied by the alert repository.
type AlertGetter interface {
	Get(ctx context.Context, id string) (*alert.Alert, error)
}

// Service implements the blockchain endpoints on top of the simulated chain
// client.
type Service struct {
	wallets  WalletRepository
	patients PatientGetter
	alerts   AlertGetter
	chain    *chain.Client
}

// NewService wires the blockchain service.
func NewService(wallets WalletRepository, patients PatientGetter, alerts AlertGetter, chainClient *chain.Client) *Service {
	return &Service{wallets: wallets, patients: patients, alerts: alerts, chain: chainClient}
}

// VerifyTx returns the simulated confirmation receipt for a hash.
func (s *Service) VerifyTx(txHash string) chain.Receipt {
	return s.chain.VerifyTx(txHash)
}

// Contracts returns the deployment document, or a NOT_DEPLOYED marker when
// no registry is loaded.
func (s *Service) Contracts() interface{} {
	if dep := s.chain.Deployment(); dep != nil {
		return dep
	}
	return NotDeployed{
		Status:  "NOT_DEPLOYED",
		Message: "Contracts not deployed. Provide deployment_result.json to enable on-chain anchoring.",
	}
}

// Wallet returns the patient's smart-contract wallet, deriving and storing
// it on first access. The derivation is deterministic, so the stored wallet
// and a re-derived one always agree.
func (s *Service) Wallet(ctx context.Context, patientID string) (*WalletView, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	w, err := s.wallets.FindByPatient(ctx, patientID)
	if errors.Is(err, ErrWalletNotFound) {
		factoryAddr, deployed := s.chain.ContractAddress(chain.ContractPatientWalletFactory)
		w = &Wallet{
			ID:              uuid.NewString(),
			PatientID:       p.ID,
			PatientName:     p.Name,
			WalletAddress:   chain.WalletAddress(fmt.Sprintf("%s-%s-omnihealth", p.ID, p.Name)),
			FactoryAddress:  factoryAddr,
			DeployedOnChain: deployed,
			Network:         chain.Network,
			ChainID:         chain.ChainID,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.wallets.Insert(ctx, w); err != nil {
			return nil, fmt.Errorf("store wallet: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	return &WalletView{
		PatientID:       w.PatientID,
		WalletAddress:   w.WalletAddress,
		DeployedOnChain: w.DeployedOnChain,
		Network:         chain.Network,
		ExplorerURL:     chain.ExplorerAddressURL(w.WalletAddress),
	}, nil
}

// RecordAlert anchors an alert's hash on the HealthAudit contract, or
// reports the simulated outcome when the contract is not deployed.
func (s *Service) RecordAlert(ctx context.Context, alertID string) (*RecordResult, error) {
	a, err := s.alerts.Get(ctx, alertID)
	if err != nil {
		return nil, err
	}

	result := &RecordResult{
		AlertID:     alertID,
		SHA256Hash:  a.SHA256Hash,
		TxHash:      a.BlockchainTxHash,
		ExplorerURL: chain.ExplorerTxURL(a.BlockchainTxHash),
	}
	if addr, ok := s.chain.ContractAddress(chain.ContractHealthAudit); ok {
		result.Status = "recorded"
		result.ContractAddress = &addr
	} else {
		result.Status = "simulated"
		result.Message = "HealthAudit contract not deployed"
	}
	return result, nil
}
