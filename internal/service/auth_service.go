package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// Claims is the JWT payload. Subject carries the user id as a string;
// the explicit fields let handlers avoid a lookup for the common path.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

// AuthService handles registration, login, verification and tokens.
type AuthService struct {
	users      UserStore
	cache      *redis.Client
	mailer     Mailer
	jwtSecret  []byte
	jwtExpiry  time.Duration
	bcryptCost int
	codeTTL    time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, cache *redis.Client, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		users:      users,
		cache:      cache,
		mailer:     mailer,
		jwtSecret:  []byte(cfg.JWTSecret),
		jwtExpiry:  cfg.JWTExpiry,
		bcryptCost: cfg.BcryptCost,
		codeTTL:    cfg.CodeTTL,
	}
}

// Register creates an unverified account and emails a verification code.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperr.New(apperr.StateConflict, "Username already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.New(apperr.StateConflict, "Email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.Role(req.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.issueCode(ctx, config.CacheKey.VerificationCodeKey(user.Email), user.Email, s.mailer.SendVerificationCode); err != nil {
		// The account exists; the user can request a fresh code later.
		log.Warn().Err(err).Str("email", user.Email).Msg("failed to deliver verification code")
	}
	return user, nil
}

// Verify confirms the emailed code and marks the account verified.
func (s *AuthService) Verify(ctx context.Context, req *model.VerifyRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return fmt.Errorf("get user: %w", err)
	}
	if user.IsVerified {
		return apperr.New(apperr.StateConflict, "Account already verified")
	}

	key := config.CacheKey.VerificationCodeKey(req.Email)
	if err := s.consumeCode(ctx, key, req.Code); err != nil {
		return err
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Login checks credentials and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.Unauthenticated, "Invalid username or password")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid username or password")
	}
	if user.IsBlocked {
		return nil, apperr.New(apperr.Forbidden, "Account is blocked")
	}
	if !user.IsVerified {
		return nil, apperr.New(apperr.Forbidden, "Account is not verified")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &model.LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// RequestReset emails a password reset code. It reports success even for
// unknown emails so the endpoint cannot be used to probe accounts.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}
	return s.issueCode(ctx, config.CacheKey.PasswordResetKey(email), email, s.mailer.SendPasswordResetCode)
}

// ResetPassword consumes a reset code and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) error {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "User not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	key := config.CacheKey.PasswordResetKey(req.Email)
	if err := s.consumeCode(ctx, key, req.Code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// GenerateToken signs an HS256 token for the user.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.Unauthenticated, "Invalid or expired token", err)
	}
	return claims, nil
}

// ResolveUser loads the token's user and confirms the account is still
// usable. A token issued before a block or deletion stops working here.
func (s *AuthService) ResolveUser(ctx context.Context, claims *Claims) (*model.User, error) {
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.Unauthenticated, "Invalid or expired token")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Username != claims.Username {
		return nil, apperr.New(apperr.Unauthenticated, "Invalid or expired token")
	}
	if user.IsBlocked {
		return nil, apperr.New(apperr.Forbidden, "Account is blocked")
	}
	return user, nil
}

func (s *AuthService) issueCode(ctx context.Context, key, email string, send func(context.Context, string, string) error) error {
	code, err := randomCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.cache.Set(ctx, key, code, s.codeTTL).Err(); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	return send(ctx, email, code)
}

func (s *AuthService) consumeCode(ctx context.Context, key, code string) error {
	stored, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperr.New(apperr.Validation, "Invalid or expired code")
		}
		return fmt.Errorf("read code: %w", err)
	}
	if stored != code {
		return apperr.New(apperr.Validation, "Invalid or expired code")
	}
	// Single use.
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	return nil
}

// randomCode returns a 6-digit numeric code.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
