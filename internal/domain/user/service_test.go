package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type mockUserRepo struct {
	byEmail map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: make(map[string]*User)}
}

func (m *mockUserRepo) Insert(_ context.Context, u *User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, "test-secret", time.Hour)
}

func TestLogin_CreatesAccountWithDefaults(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.User.Email != DefaultEmail {
		t.Errorf("expected default email, got %s", resp.User.Email)
	}
	if resp.User.Name != DefaultName {
		t.Errorf("expected default name, got %s", resp.User.Name)
	}
	if resp.User.Role != "patient" {
		t.Errorf("expected default role patient, got %s", resp.User.Role)
	}
	if resp.User.ID == "" {
		t.Error("expected assigned user id")
	}
	if resp.User.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if len(resp.User.WalletAddress) != 42 || !strings.HasPrefix(resp.User.WalletAddress, "0x") {
		t.Errorf("malformed wallet address %q", resp.User.WalletAddress)
	}
	if resp.Token == "" {
		t.Error("expected signed token")
	}
}

func TestLogin_WalletView(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "alice@example.com", Name: "Alice Chen"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	w := resp.Wallet
	if w.Address != resp.User.WalletAddress {
		t.Errorf("wallet address %s does not match user %s", w.Address, resp.User.WalletAddress)
	}
	if w.Type != WalletTypeSmartContract {
		t.Errorf("unexpected wallet type %s", w.Type)
	}
	if !w.PaymasterEnabled {
		t.Error("expected paymaster_enabled")
	}
	if w.Network != "opBNB Testnet" {
		t.Errorf("unexpected network %s", w.Network)
	}
}

func TestLogin_IdempotentPerEmail(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestService(repo)

	first, err := svc.Login(context.Background(), LoginRequest{Email: "bob@example.com", Name: "Bob Martinez", Role: "doctor"})
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := svc.Login(context.Background(), LoginRequest{Email: "bob@example.com", Name: "Someone Else", Role: "organization"})
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Errorf("expected same account, got %s and %s", first.User.ID, second.User.ID)
	}
	if second.User.Name != "Bob Martinez" {
		t.Errorf("stored name rewritten to %s", second.User.Name)
	}
	if second.User.Role != "doctor" {
		t.Errorf("stored role rewritten to %s", second.User.Role)
	}
	if len(repo.byEmail) != 1 {
		t.Errorf("expected 1 stored account, got %d", len(repo.byEmail))
	}
}

func TestLogin_DeterministicWallet(t *testing.T) {
	a, err := newTestService(newMockUserRepo()).Login(context.Background(), LoginRequest{Email: "carol@example.com"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	b, err := newTestService(newMockUserRepo()).Login(context.Background(), LoginRequest{Email: "carol@example.com"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if a.User.WalletAddress != b.User.WalletAddress {
		t.Errorf("wallet not deterministic: %s vs %s", a.User.WalletAddress, b.User.WalletAddress)
	}
}

func TestLogin_InvalidRole(t *testing.T) {
	svc := newTestService(newMockUserRepo())
	_, err := svc.Login(context.Background(), LoginRequest{Role: "admin"})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}
