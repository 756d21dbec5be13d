package service

import (
	"crypto/subtle"
	"errors"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialVerifier checks a username/password pair and resolves its role.
// The policy is injectable so swapping the static table for a real backend
// does not touch any call site.
type CredentialVerifier interface {
	Verify(username, password string) (domain.Role, error)
}

// AuthService defines the interface for session authentication
type AuthService interface {
	Login(username, password string) (domain.Session, error)
}

type authService struct {
	verifier CredentialVerifier
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(verifier CredentialVerifier) AuthService {
	return &authService{verifier: verifier}
}

// Login verifies the credential pair and returns the session to persist
func (s *authService) Login(username, password string) (domain.Session, error) {
	role, err := s.verifier.Verify(username, password)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{Username: username, Role: role}, nil
}

type staticCredential struct {
	password string
	role     domain.Role
}

// StaticVerifier verifies against a fixed in-memory credential table
type StaticVerifier struct {
	creds map[string]staticCredential
}

// NewStaticVerifier creates the verifier with the two built-in POS accounts
func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{
		creds: map[string]staticCredential{
			"kikiadmin": {password: "kiki@admin", role: domain.RoleAdmin},
			"kikishop":  {password: "kiki@user", role: domain.RoleUser},
		},
	}
}

// Verify checks the pair against the static table in constant time
func (v *StaticVerifier) Verify(username, password string) (domain.Role, error) {
	cred, ok := v.creds[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(cred.password), []byte(password)) != 1 {
		return "", ErrInvalidCredentials
	}
	return cred.role, nil
}

type hashedCredential struct {
	hash []byte
	role domain.Role
}

// BcryptVerifier verifies against bcrypt password hashes, for deployments
// that do not want plaintext credentials in the binary
type BcryptVerifier struct {
	creds map[string]hashedCredential
}

// NewBcryptVerifier creates a verifier from username -> (bcrypt hash, role)
func NewBcryptVerifier(hashes map[string]string, roles map[string]domain.Role) *BcryptVerifier {
	creds := make(map[string]hashedCredential, len(hashes))
	for username, hash := range hashes {
		creds[username] = hashedCredential{hash: []byte(hash), role: roles[username]}
	}
	return &BcryptVerifier{creds: creds}
}

// Verify checks the pair against the stored bcrypt hash
func (v *BcryptVerifier) Verify(username, password string) (domain.Role, error) {
	cred, ok := v.creds[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return cred.role, nil
}
