package account

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"pixshare/internal/config"
	domainUser "pixshare/internal/domain/user"
	"pixshare/internal/notification"
	apperrors "pixshare/pkg/errors"
	"pixshare/pkg/utils"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domainUser.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domainUser.ErrUsernameTaken
		}
		if u.Email != nil && existing.Email != nil && *existing.Email == *u.Email {
			return domainUser.ErrUserAlreadyExists
		}
		if u.PhoneNumber != nil && existing.PhoneNumber != nil && *existing.PhoneNumber == *u.PhoneNumber {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainUser.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) findBy(match func(*domainUser.User) bool) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domainUser.User, error) {
	return r.findBy(func(u *domainUser.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	return r.findBy(func(u *domainUser.User) bool { return u.Email != nil && *u.Email == email })
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phone string) (*domainUser.User, error) {
	return r.findBy(func(u *domainUser.User) bool { return u.PhoneNumber != nil && *u.PhoneNumber == phone })
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	for id, other := range r.users {
		if id != u.ID && other.Username == u.Username {
			return domainUser.ErrUsernameTaken
		}
	}
	copied := *u
	copied.Email = stored.Email
	copied.PhoneNumber = stored.PhoneNumber
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = hash
	return nil
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes []*domainUser.VerificationCode
}

func (r *fakeCodeRepo) Create(_ context.Context, code *domainUser.VerificationCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	code.ID = uuid.New()
	code.CreatedAt = time.Now()
	copied := *code
	r.codes = append(r.codes, &copied)
	return nil
}

func (r *fakeCodeRepo) ConfirmMatching(_ context.Context, userID uuid.UUID, code string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var confirmed int64
	for _, c := range r.codes {
		if c.UserID == userID && c.Code == code && !c.Confirmed && !c.IsExpired() {
			c.Confirmed = true
			confirmed++
		}
	}
	return confirmed, nil
}

func (r *fakeCodeRepo) HasActive(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.UserID == userID && !c.Confirmed && !c.IsExpired() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCodeRepo) DeleteExpired(_ context.Context) error { return nil }

func (r *fakeCodeRepo) latestFor(userID uuid.UUID) *domainUser.VerificationCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.codes) - 1; i >= 0; i-- {
		if r.codes[i].UserID == userID {
			return r.codes[i]
		}
	}
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*domainUser.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]*domainUser.RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *domainUser.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *fakeTokenRepo) GetByToken(_ context.Context, token string) (*domainUser.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Token == token {
			copied := *t
			return &copied, nil
		}
	}
	return nil, domainUser.ErrTokenNotFound
}

func (r *fakeTokenRepo) Revoke(_ context.Context, tokenID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenID]
	if !ok {
		return domainUser.ErrTokenNotFound
	}
	now := time.Now()
	t.Revoked = true
	t.RevokedAt = &now
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context, _ time.Duration) error { return nil }

type sentMessage struct {
	Channel     notification.Channel
	Destination string
	Body        string
}

// fakeNotifier records sends synchronously so tests can inspect them.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *fakeNotifier) Send(_ context.Context, channel notification.Channel, destination, _, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{Channel: channel, Destination: destination, Body: body})
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func (n *fakeNotifier) last() sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

type testEnv struct {
	service  *Service
	users    *fakeUserRepo
	codes    *fakeCodeRepo
	tokens   *fakeTokenRepo
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	codes := &fakeCodeRepo{}
	tokens := newFakeTokenRepo()
	notifier := &fakeNotifier{}

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
	}

	return &testEnv{
		service:  NewService(users, codes, tokens, notifier, cfg),
		users:    users,
		codes:    codes,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (e *testEnv) signUp(t *testing.T, identifier string) *AuthResponse {
	t.Helper()
	resp, err := e.service.SignUp(context.Background(), &SignUpRequest{EmailOrPhone: identifier})
	if err != nil {
		t.Fatalf("SignUp(%q) failed: %v", identifier, err)
	}
	return resp
}

func TestSignUpWithEmail(t *testing.T) {
	env := newTestEnv()

	resp := env.signUp(t, "alice@example.com")

	if resp.User.Email == nil || *resp.User.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %v", resp.User.Email)
	}
	if resp.User.AuthType != string(domainUser.AuthTypeEmail) {
		t.Errorf("auth_type = %q, want via_email", resp.User.AuthType)
	}
	if resp.User.AuthStatus != string(domainUser.StatusNew) {
		t.Errorf("auth_status = %q, want new", resp.User.AuthStatus)
	}
	if !strings.HasPrefix(resp.User.Username, usernamePrefix) {
		t.Errorf("username %q missing generated prefix", resp.User.Username)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected token pair in signup response")
	}

	if env.notifier.count() != 1 {
		t.Fatalf("expected one dispatched code, got %d", env.notifier.count())
	}
	msg := env.notifier.last()
	if msg.Channel != notification.ChannelEmail || msg.Destination != "alice@example.com" {
		t.Errorf("code dispatched to %s/%s, want email/alice@example.com", msg.Channel, msg.Destination)
	}
}

func TestSignUpWithPhone(t *testing.T) {
	env := newTestEnv()

	resp := env.signUp(t, "+14155552671")

	if resp.User.AuthType != string(domainUser.AuthTypePhone) {
		t.Errorf("auth_type = %q, want via_phone", resp.User.AuthType)
	}
	msg := env.notifier.last()
	if msg.Channel != notification.ChannelSMS {
		t.Errorf("code dispatched on %s, want sms", msg.Channel)
	}

	code := env.codes.latestFor(resp.User.ID)
	if code == nil {
		t.Fatal("no verification code persisted")
	}
	window := time.Until(code.ExpiresAt)
	if window > domainUser.PhoneCodeExpiry || window < domainUser.PhoneCodeExpiry-10*time.Second {
		t.Errorf("phone code expiry window = %v, want about %v", window, domainUser.PhoneCodeExpiry)
	}
}

func TestSignUpRejectsUsernameIdentifier(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.SignUp(context.Background(), &SignUpRequest{EmailOrPhone: "just_a_username"})
	if !errors.Is(err, apperrors.ErrInvalidIdentifier) {
		t.Errorf("error = %v, want ErrInvalidIdentifier", err)
	}
}

func TestSignUpDuplicateIdentifier(t *testing.T) {
	env := newTestEnv()
	env.signUp(t, "alice@example.com")

	_, err := env.service.SignUp(context.Background(), &SignUpRequest{EmailOrPhone: "alice@example.com"})
	if !errors.Is(err, apperrors.ErrDuplicateIdentifier) {
		t.Errorf("error = %v, want ErrDuplicateIdentifier", err)
	}
}

func TestVerifyAdvancesStatusAndConsumesCode(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")
	userID := resp.User.ID

	code := env.codes.latestFor(userID)
	if code == nil {
		t.Fatal("no verification code persisted")
	}

	verifyResp, err := env.service.Verify(context.Background(), userID, &VerifyRequest{Code: code.Code})
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if verifyResp.AuthStatus != string(domainUser.StatusCodeVerified) {
		t.Errorf("auth_status = %q, want code_verified", verifyResp.AuthStatus)
	}

	// The code is single-use.
	_, err = env.service.Verify(context.Background(), userID, &VerifyRequest{Code: code.Code})
	if !errors.Is(err, apperrors.ErrInvalidOrExpiredCode) {
		t.Errorf("second verify error = %v, want ErrInvalidOrExpiredCode", err)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	code := env.codes.latestFor(resp.User.ID)
	wrong := "0000"
	if code.Code == wrong {
		wrong = "0001"
	}

	_, err := env.service.Verify(context.Background(), resp.User.ID, &VerifyRequest{Code: wrong})
	if !errors.Is(err, apperrors.ErrInvalidOrExpiredCode) {
		t.Errorf("error = %v, want ErrInvalidOrExpiredCode", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	code := env.codes.latestFor(resp.User.ID)
	code.ExpiresAt = time.Now().Add(-time.Minute)

	_, err := env.service.Verify(context.Background(), resp.User.ID, &VerifyRequest{Code: code.Code})
	if !errors.Is(err, apperrors.ErrInvalidOrExpiredCode) {
		t.Errorf("error = %v, want ErrInvalidOrExpiredCode", err)
	}
}

func TestResendCodeBlockedWhileActive(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	_, err := env.service.ResendCode(context.Background(), resp.User.ID)
	if !errors.Is(err, apperrors.ErrCodeStillValid) {
		t.Errorf("error = %v, want ErrCodeStillValid", err)
	}
}

func TestResendCodeAfterExpiry(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	env.codes.latestFor(resp.User.ID).ExpiresAt = time.Now().Add(-time.Minute)

	destination, err := env.service.ResendCode(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("ResendCode failed: %v", err)
	}
	if destination != "alice@example.com" {
		t.Errorf("destination = %q, want alice@example.com", destination)
	}
	if env.notifier.count() != 2 {
		t.Errorf("expected 2 dispatched codes, got %d", env.notifier.count())
	}
}

// completeSignup walks an account to the done state with a known password.
func completeSignup(t *testing.T, env *testEnv, identifier, password string) *UserResponse {
	t.Helper()

	resp := env.signUp(t, identifier)
	userID := resp.User.ID

	code := env.codes.latestFor(userID)
	if _, err := env.service.Verify(context.Background(), userID, &VerifyRequest{Code: code.Code}); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	profile, err := env.service.UpdateProfile(context.Background(), userID, &UpdateProfileRequest{
		FirstName:       "Alice",
		LastName:        "Nguyen",
		Username:        "alice_ng",
		Password:        password,
		ConfirmPassword: password,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	return profile
}

func TestLoginBlockedBeforeProfileCompletion(t *testing.T) {
	env := newTestEnv()
	env.signUp(t, "alice@example.com")

	_, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "whatever123A",
	})
	if !errors.Is(err, apperrors.ErrAccountNotVerified) {
		t.Errorf("error = %v, want ErrAccountNotVerified", err)
	}
}

func TestLoginAfterCompletion(t *testing.T) {
	env := newTestEnv()
	profile := completeSignup(t, env, "alice@example.com", "Sup3rSecret")

	if profile.AuthStatus != string(domainUser.StatusDone) {
		t.Fatalf("auth_status after profile completion = %q, want done", profile.AuthStatus)
	}

	for _, input := range []string{"alice@example.com", "alice_ng"} {
		resp, err := env.service.Login(context.Background(), &LoginRequest{
			UserInput: input,
			Password:  "Sup3rSecret",
		})
		if err != nil {
			t.Fatalf("Login(%q) failed: %v", input, err)
		}
		if resp.AccessToken == "" {
			t.Errorf("Login(%q) returned empty access token", input)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv()
	completeSignup(t, env, "alice@example.com", "Sup3rSecret")

	_, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "WrongPass1",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "nobody@example.com",
		Password:  "whatever123A",
	})
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("error = %v, want ErrAccountNotFound", err)
	}
}

func TestLoginWithMixedCaseUsername(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")
	userID := resp.User.ID

	code := env.codes.latestFor(userID)
	if _, err := env.service.Verify(context.Background(), userID, &VerifyRequest{Code: code.Code}); err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if _, err := env.service.UpdateProfile(context.Background(), userID, &UpdateProfileRequest{
		FirstName:       "Alice",
		LastName:        "Smith",
		Username:        "AliceSmith",
		Password:        "Sup3rSecret",
		ConfirmPassword: "Sup3rSecret",
	}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	// Usernames keep their case, so the login input must not be lowercased.
	if _, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "AliceSmith",
		Password:  "Sup3rSecret",
	}); err != nil {
		t.Fatalf("Login with mixed-case username failed: %v", err)
	}

	// Email lookups stay case-insensitive.
	if _, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "Alice@Example.COM",
		Password:  "Sup3rSecret",
	}); err != nil {
		t.Fatalf("Login with mixed-case email failed: %v", err)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")
	userID := resp.User.ID

	base := UpdateProfileRequest{
		FirstName:       "Alice",
		LastName:        "Nguyen",
		Username:        "alice_ng",
		Password:        "Sup3rSecret",
		ConfirmPassword: "Sup3rSecret",
	}

	tests := []struct {
		name    string
		mutate  func(*UpdateProfileRequest)
		wantErr error
	}{
		{"password mismatch", func(r *UpdateProfileRequest) { r.ConfirmPassword = "Different1" }, apperrors.ErrPasswordMismatch},
		{"weak password", func(r *UpdateProfileRequest) { r.Password = "alllowercase"; r.ConfirmPassword = "alllowercase" }, apperrors.ErrWeakPassword},
		{"numeric first name", func(r *UpdateProfileRequest) { r.FirstName = "12345" }, apperrors.ErrInvalidName},
		{"numeric username", func(r *UpdateProfileRequest) { r.Username = "123456" }, apperrors.ErrInvalidUsername},
		{"short username", func(r *UpdateProfileRequest) { r.Username = "abc" }, apperrors.ErrInvalidUsername},
		{"long username", func(r *UpdateProfileRequest) { r.Username = strings.Repeat("a", 31) }, apperrors.ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := env.service.UpdateProfile(context.Background(), userID, &req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdatePhotoSetsStatus(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	profile, err := env.service.UpdatePhoto(context.Background(), resp.User.ID, &UpdatePhotoRequest{
		PhotoPath: "photos/alice.jpg",
	})
	if err != nil {
		t.Fatalf("UpdatePhoto failed: %v", err)
	}
	if profile.AuthStatus != string(domainUser.StatusPhotoUploaded) {
		t.Errorf("auth_status = %q, want photo_uploaded", profile.AuthStatus)
	}
	if profile.PhotoPath == nil || *profile.PhotoPath != "photos/alice.jpg" {
		t.Errorf("photo path not stored, got %v", profile.PhotoPath)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newTestEnv()
	completeSignup(t, env, "bob@example.com", "Sup3rSecret")
	auth, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "bob@example.com",
		Password:  "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	pair, err := env.service.Refresh(context.Background(), auth.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if pair.RefreshToken == auth.RefreshToken {
		t.Error("refresh did not rotate the token")
	}

	// The old token is dead after rotation.
	if _, err := env.service.Refresh(context.Background(), auth.RefreshToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("reuse of rotated token: error = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv()
	completeSignup(t, env, "alice@example.com", "Sup3rSecret")

	auth, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := env.service.Refresh(context.Background(), auth.AccessToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv()
	completeSignup(t, env, "alice@example.com", "Sup3rSecret")

	auth, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := env.service.Logout(context.Background(), auth.User.ID, auth.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// Logging out twice with the same token fails.
	if err := env.service.Logout(context.Background(), auth.User.ID, auth.RefreshToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("second logout error = %v, want ErrInvalidToken", err)
	}

	// The revoked token cannot be redeemed either.
	if _, err := env.service.Refresh(context.Background(), auth.RefreshToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("refresh after logout: error = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	env := newTestEnv()
	completeSignup(t, env, "alice@example.com", "Sup3rSecret")
	auth, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := env.service.Logout(context.Background(), uuid.New(), auth.RefreshToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestForgotPasswordMatchesChannel(t *testing.T) {
	env := newTestEnv()
	emailUser := env.signUp(t, "alice@example.com")
	phoneUser := env.signUp(t, "+14155552671")

	// Clear pending signup codes so the reset codes are visible.
	env.codes.latestFor(emailUser.User.ID).Confirmed = true
	env.codes.latestFor(phoneUser.User.ID).Confirmed = true

	if _, err := env.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{EmailOrPhone: "alice@example.com"}); err != nil {
		t.Fatalf("ForgotPassword(email) failed: %v", err)
	}
	if msg := env.notifier.last(); msg.Channel != notification.ChannelEmail {
		t.Errorf("reset code for email account sent on %s, want email", msg.Channel)
	}

	if _, err := env.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{EmailOrPhone: "+14155552671"}); err != nil {
		t.Fatalf("ForgotPassword(phone) failed: %v", err)
	}
	if msg := env.notifier.last(); msg.Channel != notification.ChannelSMS {
		t.Errorf("reset code for phone account sent on %s, want sms", msg.Channel)
	}
}

func TestForgotPasswordUnknownIdentifier(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ForgotPassword(context.Background(), &ForgotPasswordRequest{EmailOrPhone: "ghost@example.com"})
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Errorf("error = %v, want ErrAccountNotFound", err)
	}
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv()
	completeSignup(t, env, "alice@example.com", "Sup3rSecret")
	auth, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := env.service.ResetPassword(context.Background(), auth.User.ID, &ResetPasswordRequest{
		Password:        "BrandNew9pw",
		ConfirmPassword: "BrandNew9pw",
	}); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "Sup3rSecret",
	}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("old password still accepted, error = %v", err)
	}

	if _, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "BrandNew9pw",
	}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestResetPasswordRevokesOutstandingTokens(t *testing.T) {
	env := newTestEnv()
	completeSignup(t, env, "alice@example.com", "Sup3rSecret")
	auth, err := env.service.Login(context.Background(), &LoginRequest{
		UserInput: "alice@example.com",
		Password:  "Sup3rSecret",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	reset, err := env.service.ResetPassword(context.Background(), auth.User.ID, &ResetPasswordRequest{
		Password:        "BrandNew9pw",
		ConfirmPassword: "BrandNew9pw",
	})
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	// Sessions opened under the old password die with it.
	if _, err := env.service.Refresh(context.Background(), auth.RefreshToken); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("refresh with pre-reset token: error = %v, want ErrInvalidToken", err)
	}

	// The pair issued by the reset itself stays redeemable.
	if _, err := env.service.Refresh(context.Background(), reset.RefreshToken); err != nil {
		t.Errorf("refresh with post-reset token failed: %v", err)
	}
}

func TestResetPasswordMismatch(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	_, err := env.service.ResetPassword(context.Background(), resp.User.ID, &ResetPasswordRequest{
		Password:        "BrandNew9pw",
		ConfirmPassword: "Different9pw",
	})
	if !errors.Is(err, apperrors.ErrPasswordMismatch) {
		t.Errorf("error = %v, want ErrPasswordMismatch", err)
	}
}

func TestGeneratedUsernameHasPlaceholderShape(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	if !strings.HasPrefix(resp.User.Username, usernamePrefix) {
		t.Errorf("username %q missing prefix %q", resp.User.Username, usernamePrefix)
	}
	if len(resp.User.Username) <= len(usernamePrefix) {
		t.Errorf("username %q has no random suffix", resp.User.Username)
	}
}

func TestTokenPairClaims(t *testing.T) {
	env := newTestEnv()
	resp := env.signUp(t, "alice@example.com")

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("claims.UserID = %s, want %s", claims.UserID, resp.User.ID)
	}
	if claims.TokenType != utils.TokenTypeAccess {
		t.Errorf("claims.TokenType = %q, want access", claims.TokenType)
	}
}
