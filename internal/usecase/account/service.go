package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pixshare/internal/config"
	domainUser "pixshare/internal/domain/user"
	"pixshare/internal/logger"
	"pixshare/internal/notification"
	apperrors "pixshare/pkg/errors"
	"pixshare/pkg/utils"
)

const (
	usernamePrefix = "pixshare-"
	passwordPrefix = "password-"

	minUsernameLength = 5
	maxUsernameLength = 30
)

// Service implements the account lifecycle: signup, verification, login,
// token management and profile updates.
type Service struct {
	userRepo  domainUser.Repository
	codeRepo  domainUser.VerificationCodeRepository
	tokenRepo domainUser.RefreshTokenRepository
	notifier  notification.Gateway
	config    *config.Config
}

func NewService(
	userRepo domainUser.Repository,
	codeRepo domainUser.VerificationCodeRepository,
	tokenRepo domainUser.RefreshTokenRepository,
	notifier notification.Gateway,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:  userRepo,
		codeRepo:  codeRepo,
		tokenRepo: tokenRepo,
		notifier:  notifier,
		config:    cfg,
	}
}

func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	identifier := utils.SanitizeIdentifier(req.EmailOrPhone)
	kind, err := ClassifyIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	user := &domainUser.User{
		Role:       domainUser.RoleOrdinary,
		AuthStatus: domainUser.StatusNew,
	}

	switch kind {
	case IdentifierEmail:
		if err := s.checkDuplicate(ctx, s.userRepo.GetByEmail, identifier); err != nil {
			return nil, err
		}
		user.Email = &identifier
		user.AuthType = domainUser.AuthTypeEmail
	case IdentifierPhone:
		if err := s.checkDuplicate(ctx, s.userRepo.GetByPhone, identifier); err != nil {
			return nil, err
		}
		user.PhoneNumber = &identifier
		user.AuthType = domainUser.AuthTypePhone
	default:
		// A bare username is not a signup anchor; control of an email or
		// phone number must be provable.
		return nil, apperrors.ErrInvalidIdentifier
	}

	password := req.Password
	if password == "" {
		password = passwordPrefix + randomSuffix()
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHashed = hashed

	username, err := s.generateUsername(ctx)
	if err != nil {
		return nil, err
	}
	user.Username = username

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUserAlreadyExists) {
			return nil, apperrors.ErrDuplicateIdentifier
		}
		return nil, err
	}

	if err := s.issueAndDispatchCode(ctx, user, user.AuthType); err != nil {
		return nil, err
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("auth_type", string(user.AuthType)),
		zap.String("event", "user_signed_up"),
	)

	return &AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *Service) Verify(ctx context.Context, userID uuid.UUID, req *VerifyRequest) (*VerifyResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	confirmed, err := s.codeRepo.ConfirmMatching(ctx, userID, req.Code)
	if err != nil {
		return nil, err
	}
	if confirmed == 0 {
		logger.Warn("Verification attempt with invalid or expired code",
			zap.String("user_id", userID.String()),
			zap.String("event", "verification_failed"),
		)
		return nil, apperrors.ErrInvalidOrExpiredCode
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.AuthStatus == domainUser.StatusNew {
		user.AuthStatus = domainUser.StatusCodeVerified
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User verified",
		zap.String("user_id", user.ID.String()),
		zap.String("auth_status", string(user.AuthStatus)),
		zap.String("event", "user_verified"),
	)

	return &VerifyResponse{
		AuthStatus:   string(user.AuthStatus),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *Service) ResendCode(ctx context.Context, userID uuid.UUID) (string, error) {
	hasActive, err := s.codeRepo.HasActive(ctx, userID)
	if err != nil {
		return "", err
	}
	if hasActive {
		return "", apperrors.ErrCodeStillValid
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := s.issueAndDispatchCode(ctx, user, user.AuthType); err != nil {
		return "", err
	}

	return user.Destination(), nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	// Usernames are case-sensitive, so login input keeps its case; only
	// email lookups normalize to the lowercase form stored at signup.
	identifier := utils.SanitizeUserInput(req.UserInput)
	kind, err := ClassifyIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	var user *domainUser.User
	switch kind {
	case IdentifierUsername:
		user, err = s.userRepo.GetByUsername(ctx, identifier)
	case IdentifierEmail:
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	case IdentifierPhone:
		user, err = s.userRepo.GetByPhone(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}

	if !user.AuthStatus.CanLogin() {
		logger.Warn("Login attempt before signup completion",
			zap.String("user_id", user.ID.String()),
			zap.String("auth_status", string(user.AuthStatus)),
			zap.String("event", "login_blocked_unverified"),
		)
		return nil, apperrors.ErrAccountNotVerified
	}

	if !utils.CheckPassword(user.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, apperrors.ErrInvalidCredentials
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.RecordLogin(ctx, user.ID, now); err != nil {
		logger.Error("Failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}
	user.LastLoginAt = &now

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "login_success"),
	)

	return &AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.config.JWT.Secret)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		return nil, apperrors.ErrInvalidToken
	}

	dbToken, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if dbToken.UserID != claims.UserID || !dbToken.IsActive() {
		return nil, apperrors.ErrInvalidToken
	}

	// Rotate: the old refresh token dies with this exchange.
	if err := s.tokenRepo.Revoke(ctx, dbToken.ID); err != nil {
		logger.Error("Failed to revoke rotated refresh token",
			zap.String("token_id", dbToken.ID.String()),
			zap.Error(err),
		)
	}

	user, err := s.getUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Error("Failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return tokenPair, nil
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	dbToken, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return apperrors.ErrInvalidToken
	}
	if dbToken.UserID != userID || dbToken.Revoked {
		return apperrors.ErrInvalidToken
	}

	if err := s.tokenRepo.Revoke(ctx, dbToken.ID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logger.Info("User logged out",
		zap.String("user_id", userID.String()),
		zap.String("event", "logout"),
	)

	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if isNumeric(req.FirstName) || isNumeric(req.LastName) {
		return nil, apperrors.ErrInvalidName
	}
	if len(req.Username) < minUsernameLength || len(req.Username) > maxUsernameLength || isNumeric(req.Username) {
		return nil, apperrors.ErrInvalidUsername
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Username = req.Username
	user.PasswordHashed = hashed
	if user.AuthStatus == domainUser.StatusCodeVerified {
		user.AuthStatus = domainUser.StatusDone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domainUser.ErrUsernameTaken) {
			return nil, apperrors.NewAppError("USERNAME_TAKEN", "This username is already taken", err)
		}
		return nil, err
	}

	logger.Info("User profile updated",
		zap.String("user_id", user.ID.String()),
		zap.String("auth_status", string(user.AuthStatus)),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) UpdatePhoto(ctx context.Context, userID uuid.UUID, req *UpdatePhotoRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.PhotoPath = &req.PhotoPath
	user.AuthStatus = domainUser.StatusPhotoUploaded

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ForgotPassword locates the account by exact email or phone match and sends
// a fresh verification code on the channel matching the identifier.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	identifier := utils.SanitizeIdentifier(req.EmailOrPhone)

	user, err := s.userRepo.GetByEmail(ctx, identifier)
	if errors.Is(err, domainUser.ErrUserNotFound) {
		user, err = s.userRepo.GetByPhone(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}

	via := domainUser.AuthTypeEmail
	if user.PhoneNumber != nil && *user.PhoneNumber == identifier {
		via = domainUser.AuthTypePhone
	}

	if err := s.issueAndDispatchCode(ctx, user, via); err != nil {
		return nil, err
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("Password reset code issued",
		zap.String("user_id", user.ID.String()),
		zap.String("channel", string(via)),
		zap.String("event", "password_reset_code_issued"),
	)

	return &AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *Service) ResetPassword(ctx context.Context, userID uuid.UUID, req *ResetPasswordRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return nil, err
	}
	user.PasswordHashed = hashed

	// Outstanding sessions die with the old password.
	if err := s.tokenRepo.RevokeAllForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	tokenPair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("Password reset",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return &AuthResponse{
		User:         ToUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

func (s *Service) getUser(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) checkDuplicate(ctx context.Context, lookup func(context.Context, string) (*domainUser.User, error), identifier string) error {
	existing, err := lookup(ctx, identifier)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		logger.Warn("Signup attempt with existing identifier",
			zap.String("event", "signup_failed_duplicate_identifier"),
		)
		return apperrors.ErrDuplicateIdentifier
	}
	return nil
}

// generateUsername builds a placeholder username and re-rolls until unique.
func (s *Service) generateUsername(ctx context.Context) (string, error) {
	username := usernamePrefix + randomSuffix()
	for {
		exists, err := s.userRepo.UsernameExists(ctx, username)
		if err != nil {
			return "", err
		}
		if !exists {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", username, rand.Intn(10))
	}
}

func (s *Service) issueAndDispatchCode(ctx context.Context, user *domainUser.User, via domainUser.AuthType) error {
	code := generateCode()

	expiry := domainUser.EmailCodeExpiry
	if via == domainUser.AuthTypePhone {
		expiry = domainUser.PhoneCodeExpiry
	}

	verification := &domainUser.VerificationCode{
		UserID:           user.ID,
		Code:             code,
		VerificationType: via,
		ExpiresAt:        time.Now().Add(expiry),
	}
	if err := s.codeRepo.Create(ctx, verification); err != nil {
		return err
	}

	channel := notification.ChannelEmail
	destination := ""
	if via == domainUser.AuthTypePhone {
		channel = notification.ChannelSMS
		if user.PhoneNumber != nil {
			destination = *user.PhoneNumber
		}
	} else if user.Email != nil {
		destination = *user.Email
	}

	body := fmt.Sprintf("Your pixshare verification code: %s", code)
	if err := s.notifier.Send(ctx, channel, destination, "Your verification code", body); err != nil {
		// Best-effort delivery: the signup itself must not fail.
		logger.Warn("Failed to dispatch verification code",
			zap.String("user_id", user.ID.String()),
			zap.String("channel", string(channel)),
			zap.Error(err),
		)
	}

	return nil
}

func (s *Service) issueTokens(ctx context.Context, user *domainUser.User) (*utils.TokenPair, error) {
	tokenPair, err := utils.GenerateTokenPair(
		user.ID,
		user.Username,
		string(user.Role),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refreshToken := &domainUser.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Now().Add(time.Duration(s.config.JWT.RefreshExpiryHours) * time.Hour),
	}
	if err := s.tokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return tokenPair, nil
}

func generateCode() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

func randomSuffix() string {
	parts := strings.Split(uuid.New().String(), "-")
	return parts[len(parts)-1]
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
