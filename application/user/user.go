package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/olekhymko/contacts-api/cmd/config"
	"github.com/olekhymko/contacts-api/constant"
	"github.com/olekhymko/contacts-api/model"
	redisrepo "github.com/olekhymko/contacts-api/repository/redis"
	userrepo "github.com/olekhymko/contacts-api/repository/user"
	"github.com/olekhymko/contacts-api/thirdparty/rabbitmq"
	"github.com/olekhymko/contacts-api/utils/errors"
	"github.com/olekhymko/contacts-api/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
	audienceEmail   = "email"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	RefreshToken(ctx context.Context, req *model.RefreshRequest) (*model.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (uint64, error)
	ConfirmEmail(ctx context.Context, token string) error
	UpdateAvatar(ctx context.Context, userID uint64, url string) (*model.UserEntity, error)
}

// ConfirmationPublisher queues confirmation mails for the worker.
type ConfirmationPublisher interface {
	PublishEmailConfirmation(msg rabbitmq.EmailConfirmationMessage) error
}

type UserAppImpl struct {
	config    *config.Config
	userRepo  userrepo.UserRepository
	redisRepo redisrepo.Repository
	publisher ConfirmationPublisher
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository, publisher ConfirmationPublisher) UserApp {
	return &UserAppImpl{
		config:    config,
		userRepo:  userRepo,
		redisRepo: redisRepo,
		publisher: publisher,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	// Check if user exists by email or username
	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	existingUser, err = s.userRepo.Get(ctx, &model.UserFilter{Username: req.Username})
	if err != nil {
		logger.Error("[Register] err userRepo.Get username", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("[Register] err bcrypt.GenerateFromPassword", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	avatar := gravatarURL(req.Email)
	userEntity := &model.UserEntity{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Avatar:       &avatar,
	}

	// Save to database
	userEntity, err = s.userRepo.Create(ctx, userEntity)
	if err != nil {
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Queue the confirmation mail; registration succeeds even if the broker is down
	if s.publisher != nil {
		confirmToken, err := s.generateEmailToken(userEntity.Email)
		if err != nil {
			logger.Error("[Register] err generateEmailToken", zap.String("error", err.Error()))
		} else if err := s.publisher.PublishEmailConfirmation(rabbitmq.EmailConfirmationMessage{
			Email:    userEntity.Email,
			Username: userEntity.Username,
			Token:    confirmToken,
		}); err != nil {
			logger.Error("[Register] err PublishEmailConfirmation", zap.String("error", err.Error()))
		}
	}

	return &model.RegisterResponse{
		Username: userEntity.Username,
		Email:    userEntity.Email,
		Avatar:   avatar,
	}, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: req.Email})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	// Verify password
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	return s.issueTokens(ctx, user)
}

func (s *UserAppImpl) RefreshToken(ctx context.Context, req *model.RefreshRequest) (*model.LoginResponse, error) {
	claims, err := s.parseToken(req.RefreshToken, audienceRefresh)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[RefreshToken] err userRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	// The presented token must be the one on record; a stale or revoked
	// token clears the stored one so it cannot be replayed.
	if user.RefreshToken == nil || *user.RefreshToken != req.RefreshToken {
		if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			logger.Error("[RefreshToken] err clear refresh token", zap.String("error", err.Error()))
		}
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	return s.issueTokens(ctx, user)
}

func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (uint64, error) {
	claims, err := s.parseToken(tokenString, audienceAccess)
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id in token")
	}

	jti := claims.ID
	if jti == "" {
		return 0, fmt.Errorf("token missing jti")
	}

	// Check Redis session key
	redisUserID, err := s.redisRepo.GetSession(ctx, jti)
	if err != nil {
		return 0, fmt.Errorf("invalid or expired session")
	}

	if redisUserID != userID {
		return 0, fmt.Errorf("token does not match user session")
	}

	return userID, nil
}

func (s *UserAppImpl) ConfirmEmail(ctx context.Context, token string) error {
	claims, err := s.parseToken(token, audienceEmail)
	if err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}

	email := claims.Subject
	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[ConfirmEmail] err userRepo.Get", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if user.Confirmed {
		return nil
	}

	if err := s.userRepo.ConfirmEmail(ctx, email); err != nil {
		logger.Error("[ConfirmEmail] err userRepo.ConfirmEmail", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

func (s *UserAppImpl) UpdateAvatar(ctx context.Context, userID uint64, url string) (*model.UserEntity, error) {
	user, err := s.userRepo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		logger.Error("[UpdateAvatar] err userRepo.UpdateAvatar", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return user, nil
}

// issueTokens creates the access/refresh pair, stores the session in Redis
// and persists the refresh token.
func (s *UserAppImpl) issueTokens(ctx context.Context, user *model.UserEntity) (*model.LoginResponse, error) {
	token, jti, err := s.generateJWT(user.ID)
	if err != nil {
		logger.Error("[issueTokens] err generateJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	refreshToken, err := s.generateRefreshJWT(user.ID)
	if err != nil {
		logger.Error("[issueTokens] err generateRefreshJWT", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.redisRepo.SetSession(ctx, jti, user.ID, s.config.Auth.SessionExpTime); err != nil {
		logger.Error("[issueTokens] err SetSession", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		logger.Error("[issueTokens] err UpdateRefreshToken", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.LoginResponse{
		Username:     user.Username,
		Email:        user.Email,
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

// generateJWT creates an access token for the user
func (s *UserAppImpl) generateJWT(userID uint64) (string, string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		Audience:  jwt.ClaimStrings{audienceAccess},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.JWTExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims.ID, nil
}

func (s *UserAppImpl) generateRefreshJWT(userID uint64) (string, error) {
	newUUID, _ := uuid.NewRandom()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", userID),
		Audience:  jwt.ClaimStrings{audienceRefresh},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Auth.RefreshExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ID:        newUUID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}

func (s *UserAppImpl) generateEmailToken(email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		Audience:  jwt.ClaimStrings{audienceEmail},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign email token: %w", err)
	}
	return tokenString, nil
}

// parseToken validates signature and expiry and checks the token audience,
// so an access token cannot pass as a refresh token and vice versa.
func (s *UserAppImpl) parseToken(tokenString, audience string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}

	found := false
	for _, aud := range claims.Audience {
		if aud == audience {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unexpected token audience")
	}

	return claims, nil
}

// gravatarURL derives the avatar for a new user from their email.
func gravatarURL(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", hash)
}
