package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prathm201999/auth-service/internal/common"
	"github.com/prathm201999/auth-service/internal/server/config"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "test-secret",
		Algorithm:                    "HS256",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}
}

func TestIssueAccessToken_VerifiesImmediately(t *testing.T) {
	t.Parallel()

	ts := NewTokenService(newFakeLedger(), testConfig())

	tok, err := ts.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected non-empty token")
	}

	subject, err := ts.VerifyAccessToken(tok)
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("subject mismatch: %q", subject)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AccessTokenValidityDuration = -1 * time.Second
	ts := NewTokenService(newFakeLedger(), cfg)

	tok, err := ts.IssueAccessToken("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccessToken error: %v", err)
	}

	_, err = ts.VerifyAccessToken(tok)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for expired token, got %v", err)
	}
}

func TestIssueRefreshToken_RecordedBeforeReturn(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	ts := NewTokenService(ledger, testConfig())

	tok, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	row, ok := ledger.rows[tok]
	if !ok {
		t.Fatalf("issued token not recorded in ledger")
	}
	if row.UserEmail != "alice@example.com" || row.Revoked {
		t.Fatalf("unexpected ledger row: %+v", row)
	}
	if row.ExpiresAt.Before(time.Now()) {
		t.Fatalf("ledger expiry already passed: %v", row.ExpiresAt)
	}
}

func TestIssueRefreshToken_LedgerWriteFailureFailsMint(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	ledger.createErr = errors.New("connection refused")
	ts := NewTokenService(ledger, testConfig())

	tok, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if tok != "" {
		t.Fatalf("no token may be handed out when the ledger write fails")
	}
	if !errors.Is(err, common.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestIssueRefreshToken_ConflictSurfaced(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	ledger.createErr = common.ErrConflict
	ts := NewTokenService(ledger, testConfig())

	_, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestIssueRefreshToken_SameSubjectNeverEqual(t *testing.T) {
	t.Parallel()

	ts := NewTokenService(newFakeLedger(), testConfig())

	a, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	b, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	if a == b {
		t.Fatalf("two refresh tokens for the same subject are byte-identical")
	}
}

func TestVerifyRefreshToken_Success(t *testing.T) {
	t.Parallel()

	ts := NewTokenService(newFakeLedger(), testConfig())

	tok, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	subject, err := ts.VerifyRefreshToken(context.Background(), tok)
	if err != nil {
		t.Fatalf("VerifyRefreshToken error: %v", err)
	}
	if subject != "alice@example.com" {
		t.Fatalf("subject mismatch: %q", subject)
	}
}

func TestVerifyRefreshToken_RevokedFailsDespiteValidSignature(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	ts := NewTokenService(ledger, testConfig())

	tok, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	if err := ledger.Revoke(context.Background(), tok); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}

	_, err = ts.VerifyRefreshToken(context.Background(), tok)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for revoked token, got %v", err)
	}
}

func TestVerifyRefreshToken_StoredExpiryPassed(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	ts := NewTokenService(ledger, testConfig())

	tok, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}
	// backdate the ledger row; the signed claim is still in the future
	ledger.rows[tok].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = ts.VerifyRefreshToken(context.Background(), tok)
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for expired ledger row, got %v", err)
	}
}

func TestVerifyRefreshToken_Forged(t *testing.T) {
	t.Parallel()

	ts := NewTokenService(newFakeLedger(), testConfig())

	_, err := ts.VerifyRefreshToken(context.Background(), "not.a.jwt")
	if !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized for forged token, got %v", err)
	}
}

func TestVerifyRefreshToken_LedgerDownIsUnavailableNotUnauthorized(t *testing.T) {
	t.Parallel()

	ledger := newFakeLedger()
	ts := NewTokenService(ledger, testConfig())

	tok, err := ts.IssueRefreshToken(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefreshToken error: %v", err)
	}

	ledger.findErr = errors.New("connection refused")

	_, err = ts.VerifyRefreshToken(context.Background(), tok)
	if !errors.Is(err, common.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
	if errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("a revocation check failure must not read as unauthorized")
	}
}
