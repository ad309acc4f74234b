package account

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/account/entity"
	accountrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/account/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var (
	ErrEmailTaken     = errors.New("user exists")
	ErrBadCredentials = errors.New("invalid credentials")
)

// Service handles signup and credential checks.
type Service struct {
	repo   accountrepo.Repository
	hasher PasswordHasher
	newID  func() string

	// decoy is verified when the email is unknown so both failure paths
	// cost one hash comparison.
	decoyOnce sync.Once
	decoy     string
}

func NewService(r accountrepo.Repository, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	return &Service{repo: r, hasher: hasher, newID: utilities.NewSnowflakeID}
}

// Create registers a user. Email is stored exactly as received.
func (s *Service) Create(ctx context.Context, email, password, name string) (*entity.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email/password required", utilities.ErrValidation)
	}
	if _, found, err := s.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if found {
		return nil, ErrEmailTaken
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{ID: s.newID(), Email: email, PasswordHash: hash, Name: name}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// FindByEmail looks a user up by exact email. A missing user is reported
// through found, not as an error.
func (s *Service) FindByEmail(ctx context.Context, email string) (*entity.User, bool, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("find user: %w", err)
	}
	return u, true, nil
}

// VerifyCredentials returns the user when password matches. Unknown email
// and wrong password both yield ErrBadCredentials.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	u, found, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found {
		s.hasher.Verify(s.decoyHash(), password)
		return nil, ErrBadCredentials
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

func (s *Service) decoyHash() string {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.hasher.Hash(utilities.NewKSUID())
	})
	return s.decoy
}
