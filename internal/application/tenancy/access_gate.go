package tenancy

import (
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/bizsuite/backend/internal/domain/tenancy"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccessGate decides whether switching to a tenant requires a credential
// challenge and validates supplied credentials. The secret is compared
// server-side against a bcrypt hash; no rate limiting or lockout here.
type AccessGate struct{}

// NewAccessGate creates a new access gate
func NewAccessGate() *AccessGate {
	return &AccessGate{}
}

// RequiresChallenge returns true iff the tenant is protected and is not
// already the current tenant of the session
func (g *AccessGate) RequiresChallenge(tenant *tenancy.Tenant, currentTenantID *uuid.UUID) bool {
	if !tenant.IsProtected() {
		return false
	}
	if currentTenantID != nil && *currentTenantID == tenant.ID {
		return false
	}
	return true
}

// Challenge validates a supplied secret against the tenant's stored hash
func (g *AccessGate) Challenge(tenant *tenancy.Tenant, secret string) error {
	if !tenant.IsProtected() {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(tenant.Protection.SecretHash), []byte(secret)); err != nil {
		return shared.NewDomainError("INVALID_CREDENTIAL", "Invalid credential")
	}
	return nil
}

// HashSecret hashes a cleartext protection secret for storage
func (g *AccessGate) HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", shared.NewValidationError("secret", "Protection secret cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
