// Package user implements login with find-or-create semantics and the
// deterministic smart-contract wallet attached to every account.
package user

import "time"

// User is one account. Every account gets a wallet address derived from its
// email at first login.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	Name          string    `bson:"name" json:"name"`
	Role          string    `bson:"role" json:"role"`
	WalletAddress string    `bson:"wallet_address" json:"wallet_address"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// Wallet is the account-abstraction view returned at login.
type Wallet struct {
	Address          string `json:"address"`
	Type             string `json:"type"`
	PaymasterEnabled bool   `json:"paymaster_enabled"`
	Network          string `json:"network"`
}

// WalletTypeSmartContract marks wallets managed by the paymaster.
const WalletTypeSmartContract = "smart_contract_wallet"

// Demo defaults applied when the login body omits fields.
const (
	DefaultEmail = "demo@omnihealth.io"
	DefaultName  = "Demo User"
)

// LoginRequest is the POST /auth/login body. All fields are optional.
type LoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse carries the account, its wallet view, and a signed token.
type LoginResponse struct {
	User   *User   `json:"user"`
	Wallet *Wallet `json:"wallet"`
	Token  string  `json:"token"`
}
