package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/marketledger-backend/internal/logger"
	"github.com/yungbote/marketledger-backend/internal/repos"
	"github.com/yungbote/marketledger-backend/internal/requestdata"
	"github.com/yungbote/marketledger-backend/internal/types"
)

type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	walletService WalletService
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	walletService WalletService,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		walletService: walletService,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, email, password, displayName string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	displayName = strings.TrimSpace(displayName)
	if email == "" {
		return nil, fmt.Errorf("an email is required to register")
	}
	if password == "" {
		return nil, fmt.Errorf("a password is required to register")
	}
	if displayName == "" {
		return nil, fmt.Errorf("a display name is required to register")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password")
	}

	user := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hashed),
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		// Every identity can receive transfers, so the wallet account is
		// created alongside the user.
		return as.walletService.CreateAccount(ctx, tx, user.ID)
	}); err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", user.ID)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", "", fmt.Errorf("email and password are required to login")
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", "", fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return "", "", fmt.Errorf("invalid email or password")
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid email or password")
	}

	return as.issueTokens(ctx, user.ID)
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", fmt.Errorf("refresh token required")
	}
	stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored == nil || stored.ExpiresAt.Before(time.Now()) {
		return "", "", fmt.Errorf("refresh token invalid or expired")
	}
	return as.issueTokens(ctx, stored.UserID)
}

func (as *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to delete user tokens: %w", err)
	}
	return nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return ctx, fmt.Errorf("token missing subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("token subject is not a user id")
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

// issueTokens rotates the user's token row: one active refresh token per user.
func (as *authService) issueTokens(ctx context.Context, userID uuid.UUID) (string, string, error) {
	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("failed to clear previous tokens: %w", err)
		}
		tok, err := as.generateAccessToken(userID)
		if err != nil {
			return fmt.Errorf("generate access token error: %w", err)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := &types.UserToken{
			ID:           uuid.New(),
			UserID:       userID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
			return fmt.Errorf("failed to store user token: %w", err)
		}
		return nil
	}); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) generateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
