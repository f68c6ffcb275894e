// Package blockchain exposes the on-chain surface: transaction verification,
// the contract registry, patient smart-contract wallets, and alert anchoring
// on the HealthAudit contract. Everything runs against the simulated chain
// client.
package blockchain

import "time"

// Wallet is a patient's smart-contract wallet document.
type Wallet struct {
	ID              string    `bson:"id" json:"id"`
	PatientID       string    `bson:"patient_id" json:"patient_id"`
	PatientName     string    `bson:"patient_name" json:"patient_name"`
	WalletAddress   string    `bson:"wallet_address" json:"wallet_address"`
	FactoryAddress  string    `bson:"factory_address" json:"factory_address"`
	DeployedOnChain bool      `bson:"deployed_on_chain" json:"deployed_on_chain"`
	Network         string    `bson:"network" json:"network"`
	ChainID         int64     `bson:"chain_id" json:"chain_id"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// WalletView is the wallet endpoint response.
type WalletView struct {
	PatientID       string `json:"patient_id"`
	WalletAddress   string `json:"wallet_address"`
	DeployedOnChain bool   `json:"deployed_on_chain"`
	Network         string `json:"network"`
	ExplorerURL     string `json:"explorer_url"`
}

// RecordResult is the record-alert endpoint response. ContractAddress is a
// pointer so the simulated case serializes an explicit null.
type RecordResult struct {
	Status          string  `json:"status"`
	AlertID         string  `json:"alert_id"`
	SHA256Hash      string  `json:"sha256_hash"`
	ContractAddress *string `json:"contract_address"`
	Message         string  `json:"message,omitempty"`
	TxHash          string  `json:"tx_hash"`
	ExplorerURL     string  `json:"explorer_url"`
}

// NotDeployed is the contracts endpoint response when no registry is loaded.
type NotDeployed struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
