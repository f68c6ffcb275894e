package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/omnihealth/guardian/internal/platform/auth"
	"github.com/omnihealth/guardian/internal/platform/chain"
)

// ErrInvalidRole is returned when the login body names an unknown role.
var ErrInvalidRole = errors.New("invalid role")

var validRoles = map[string]bool{
	auth.RolePatient:      true,
	auth.RoleDoctor:       true,
	auth.RoleOrganization: true,
}

// Service implements login. Accounts are created on first login and reused
// afterwards; a later login never rewrites the stored name or role.
type Service struct {
	users  Repository
	secret string
	ttl    time.Duration
}

// NewService wires the login service with the token signing secret and TTL.
func NewService(users Repository, secret string, ttl time.Duration) *Service {
	return &Service{users: users, secret: secret, ttl: ttl}
}

// Login finds or creates the account for the given email and returns it with
// its wallet view and a signed token. Empty fields fall back to the demo
// defaults.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := req.Email
	if email == "" {
		email = DefaultEmail
	}
	name := req.Name
	if name == "" {
		name = DefaultName
	}
	role := req.Role
	if role == "" {
		role = auth.RolePatient
	}
	if !validRoles[role] {
		return nil, ErrInvalidRole
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		u = &User{
			ID:            uuid.NewString(),
			Email:         email,
			Name:          name,
			Role:          role,
			WalletAddress: chain.WalletAddress(email),
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.users.Insert(ctx, u); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	token, err := auth.Mint(s.secret, s.ttl, u.ID, u.Role, u.WalletAddress)
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	return &LoginResponse{
		User: u,
		Wallet: &Wallet{
			Address:          u.WalletAddress,
			Type:             WalletTypeSmartContract,
			PaymasterEnabled: true,
			Network:          chain.Network,
		},
		Token: token,
	}, nil
}
