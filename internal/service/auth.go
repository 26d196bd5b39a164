package service

import (
	"context"                            // Request scoped calls
	"reservation_system/internal/apperr" // Application error kinds
	"reservation_system/internal/domain" // Importing domain models
	"strings"                            // Input trimming

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Messages shared with the API layer and tests
const (
	MsgEmailRegistered     = "Email already registered"
	MsgMissingCredentials  = "Please provide email and password"
	MsgInvalidCredentials  = "Incorrect email or password"
	MsgTooManyLoginAttempt = "Too many failed login attempts, try again later"
)

// UserStore is the credential store used by the auth flows
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer issues bearer tokens bound to a user
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AttemptLimiter throttles repeated failed logins for one email
type AttemptLimiter interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// RegisterInput is the registration payload
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
	Role     string `json:"role" validate:"omitempty,oneof=guest staff"` // Optional, defaults to guest
}

// AuthService implements registration and login
type AuthService struct {
	users   UserStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	limiter AttemptLimiter     // Optional, nil disables throttling
	log     logrus.FieldLogger // Operational log
	audit   logrus.FieldLogger // Authentication failure log
}

// NewAuthService creates an auth service. limiter may be nil.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, limiter AttemptLimiter, log, audit logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, limiter: limiter, log: log, audit: audit}
}

// Register validates input, creates the user and returns it with a fresh token
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = domain.NormalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		s.auditFailure("register", in.Email, err)
		return nil, "", err
	}
	// Check email uniqueness before creating
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		err := apperr.New(apperr.DuplicateEmail, MsgEmailRegistered)
		s.auditFailure("register", in.Email, err)
		return nil, "", err
	} else if !apperr.IsKind(err, apperr.NotFound) {
		return nil, "", s.internal("register", "failed to look up user", err)
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", s.internal("register", "failed to hash password", err)
	}
	user := &domain.User{
		Username: in.Username,          // Display name
		Email:    in.Email,             // Normalised email
		Password: hash,                 // Only the digest is stored
		Role:     domain.Role(in.Role), // Empty defaults to guest on insert
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Unique index caught a concurrent registration
		if apperr.IsKind(err, apperr.DuplicateEmail) {
			err := apperr.New(apperr.DuplicateEmail, MsgEmailRegistered)
			s.auditFailure("register", in.Email, err)
			return nil, "", err
		}
		return nil, "", s.internal("register", "failed to create user", err)
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", s.internal("register", "failed to generate token", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User registered")
	return user, token, nil
}

// Login checks credentials and returns a token for the matching user
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		err := apperr.New(apperr.MissingCredentials, MsgMissingCredentials)
		s.auditFailure("login", email, err)
		return "", err
	}
	if s.limiter != nil {
		allowed, err := s.limiter.Allowed(ctx, email)
		if err != nil {
			// Limiter outages must not block logins
			s.log.WithError(err).Warn("Login limiter unavailable")
		} else if !allowed {
			err := apperr.New(apperr.TooManyAttempts, MsgTooManyLoginAttempt)
			s.auditFailure("login", email, err)
			return "", err
		}
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !apperr.IsKind(err, apperr.NotFound) {
		return "", s.internal("login", "failed to look up user", err)
	}
	// Unknown email and wrong password share one message
	if user == nil || !s.hasher.Verify(password, user.Password) {
		reason := "wrong password"
		if user == nil {
			reason = "unknown email"
		}
		s.recordFailure(ctx, email)
		s.audit.WithFields(logrus.Fields{"action": "login", "email": email, "reason": reason}).Warn(MsgInvalidCredentials)
		return "", apperr.New(apperr.InvalidCredentials, MsgInvalidCredentials)
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", s.internal("login", "failed to generate token", err)
	}
	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.WithError(err).Warn("Failed to reset login limiter")
		}
	}
	s.log.WithField("user_id", user.ID).Info("User logged in")
	return token, nil
}

// recordFailure counts a failed login when a limiter is configured
func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.WithError(err).Warn("Failed to record login failure")
	}
}

// auditFailure writes a rejected auth attempt to the audit log
func (s *AuthService) auditFailure(action, email string, err error) {
	s.audit.WithFields(logrus.Fields{
		"action": action,                     // register or login
		"email":  email,                      // Email attempted
		"reason": string(apperr.KindOf(err)), // Failure kind
	}).Warn(err.Error())
}

// internal logs an unexpected failure and returns an Internal error
func (s *AuthService) internal(action, message string, err error) error {
	s.log.WithFields(logrus.Fields{"action": action, "error": err.Error()}).Error(message)
	s.audit.WithFields(logrus.Fields{"action": action, "reason": string(apperr.Internal)}).Error(message)
	return apperr.Wrap(apperr.Internal, message, err)
}
