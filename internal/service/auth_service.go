package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mira/handwriting-trainer/internal/config"
	"github.com/mira/handwriting-trainer/internal/domain"
	"github.com/mira/handwriting-trainer/internal/email"
	"github.com/mira/handwriting-trainer/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
)

const verificationTokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.VerificationTokenRepository
	mailer    email.Sender
	cfg       *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.VerificationTokenRepository, mailer email.Sender, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
		cfg:       cfg,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User        *domain.User
	AccessToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hashedPassword),
		SessionID:    uuid.New().String(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sendVerificationEmail(ctx, user); err != nil {
		// Registration still succeeds; the user can request a resend.
		log.Printf("ERROR [AuthService.Register] failed to send verification email: %v", err)
	}

	return s.issueToken(user)
}

// Login checks credentials and rotates the user's session ID before signing
// a fresh token. The rotation is what turns every previously issued token
// stale: Validate compares the embedded session ID against the stored one.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.New().String()
	if err := s.userRepo.UpdateSessionID(ctx, user.ID, sessionID); err != nil {
		return nil, err
	}
	user.SessionID = sessionID

	return s.issueToken(user)
}

// Logout rotates the session ID without issuing a token, so an access token
// replayed after logout fails with ErrStaleSession rather than remaining
// valid until expiry. Cookie clearing alone would leave the token live.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.UpdateSessionID(ctx, userID, uuid.New().String())
}

// Validate is the authorization boundary for every protected route. It is
// read-only: it never refreshes or extends the token.
//
// Failure kinds, in check order:
//   - ErrUnauthenticated: missing, malformed, forged, or expired token.
//     Deliberately one opaque class so callers cannot probe which it was.
//   - ErrUserNotFound: token verifies but the subject no longer exists.
//   - ErrStaleSession: subject exists but a later login rotated the session
//     ID, superseding this token.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*domain.User, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// A concurrent login may have rotated the stored session ID between the
	// parse above and this read; either value can be observed, and a
	// mismatch always fails closed.
	if claims.SessionID != user.SessionID {
		return nil, domain.ErrStaleSession
	}

	user.PasswordHash = ""
	return user, nil
}

// RequireVerified gates privileged writes on the verified flag. Kept as a
// distinct failure kind so clients can prompt "verify your email" instead
// of "log in again".
func (s *AuthService) RequireVerified(user *domain.User) error {
	if !user.IsVerified {
		return domain.ErrNotVerified
	}
	return nil
}

// VerifyEmail consumes an emailed verification token and flips the
// verified flag.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	sum := sha256.Sum256([]byte(token))
	record, err := s.tokenRepo.GetByHash(ctx, hex.EncodeToString(sum[:]))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidVerifyToken
		}
		return err
	}

	if time.Now().After(record.ExpiresAt) {
		return ErrInvalidVerifyToken
	}

	if err := s.userRepo.SetVerified(ctx, record.UserID); err != nil {
		return err
	}

	return s.tokenRepo.DeleteByUserID(ctx, record.UserID)
}

// ResendVerification issues a fresh verification token for an unverified user.
func (s *AuthService) ResendVerification(ctx context.Context, user *domain.User) error {
	if user.IsVerified {
		return nil
	}
	if err := s.tokenRepo.DeleteByUserID(ctx, user.ID); err != nil {
		return err
	}
	return s.sendVerificationEmail(ctx, user)
}

type UpdateProfileInput struct {
	DisplayName *string
	Password    *string
}

// UpdateProfile changes display name and/or password. A password change does
// not rotate the session; the user stays logged in on this device.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	now := time.Now()
	claims := &domain.AccessClaims{
		UserID:    user.ID,
		SessionID: user.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &AuthResult{User: user, AccessToken: signed}, nil
}

func (s *AuthService) parseClaims(tokenString string) (*domain.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*domain.AccessClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.UserID == uuid.Nil || claims.SessionID == "" {
		return nil, errors.New("incomplete token claims")
	}
	return claims, nil
}

func (s *AuthService) sendVerificationEmail(ctx context.Context, user *domain.User) error {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}
	token := hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(token))

	record := &domain.VerificationToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hex.EncodeToString(sum[:]),
		ExpiresAt: time.Now().Add(verificationTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return err
	}

	return s.mailer.SendVerification(ctx, user.Email, token)
}
