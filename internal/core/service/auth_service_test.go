package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zapcrm/whatsapp-integration/internal/auth"
	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	seq       int
	createErr error
	touched   chan string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), touched: make(chan string, 16)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = "u" + strconv.Itoa(r.seq)
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetTokenHash == tokenHash && u.ResetTokenValid(now) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, ch ports.UserChanges, at time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if ch.Email != nil {
		for other, o := range r.users {
			if other != id && o.Email == *ch.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&u.Name, ch.Name)
	apply(&u.Email, ch.Email)
	apply(&u.PasswordHash, ch.PasswordHash)
	apply(&u.Phone, ch.Phone)
	apply(&u.ProfilePicture, ch.ProfilePicture)
	u.UpdatedAt = at
	return cloneUser(u), nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, tokenHash string, expiresAt, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.SetResetToken(tokenHash, expiresAt)
	u.UpdatedAt = at
	return nil
}

func (r *stubUserRepo) setActive(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsActive = active
	}
}

func (r *stubUserRepo) ConsumeResetToken(_ context.Context, tokenHash string, now time.Time, passwordHash string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetTokenHash == tokenHash && u.ResetTokenValid(now) {
			u.PasswordHash = passwordHash
			u.ClearResetToken()
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	if u, ok := r.users[id]; ok {
		u.LastLoginAt = &at
	}
	r.mu.Unlock()
	r.touched <- id
	return nil
}

type stubNotifier struct {
	err    error
	tokens chan string
}

func newStubNotifier(err error) *stubNotifier {
	return &stubNotifier{err: err, tokens: make(chan string, 4)}
}

func (n *stubNotifier) NotifyPasswordReset(_ context.Context, _ *domain.User, token string) error {
	n.tokens <- token
	return n.err
}

func (n *stubNotifier) next(t *testing.T) string {
	t.Helper()
	select {
	case token := <-n.tokens:
		return token
	case <-time.After(time.Second):
		t.Fatalf("reset token was never delivered")
		return ""
	}
}

// racingUserRepo runs onFind once, right after the first FindByID returns,
// so another operation can land between a read and the write that follows.
type racingUserRepo struct {
	*stubUserRepo
	once   sync.Once
	onFind func()
}

func (r *racingUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.stubUserRepo.FindByID(ctx, id)
	r.once.Do(r.onFind)
	return u, err
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newAuthSvc(repo ports.UserRepository, opts ...AuthOption) *AuthService {
	return NewAuthService(repo,
		auth.NewPasswordHasher(bcrypt.MinCost, 4),
		auth.NewTokenIssuer("secret", time.Hour),
		zerolog.Nop(),
		opts...,
	)
}

func mustRegister(t *testing.T, svc *AuthService, email, password, role string) *ports.AuthResult {
	t.Helper()
	res, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Test", Email: email, Password: password, Role: role})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return res
}

func TestAuthService_Register_DefaultsToAgent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	res := mustRegister(t, svc, "a@x.com", "pw1", "")
	if res.User.Role != domain.RoleAgent {
		t.Fatalf("expected agent, got %s", res.User.Role)
	}
	if !res.User.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.User.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
}

func TestAuthService_Register_KeepsExplicitRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	res := mustRegister(t, svc, "boss@x.com", "pw", domain.RoleAdmin)
	stored, _ := repo.FindByID(context.Background(), res.User.ID)
	if stored.Role != domain.RoleAdmin {
		t.Fatalf("expected stored role admin, got %s", stored.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	cases := []ports.RegisterInput{
		{Email: "a@x.com", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@x.com"},
		{Name: "A", Email: "a@x.com", Password: "pw", Role: "root"},
	}
	for _, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("input %+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())

	mustRegister(t, svc, "a@x.com", "pw", "")
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "B", Email: "a@x.com", Password: "pw2"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	// Emails are compared exactly as stored.
	mustRegister(t, svc, "A@x.com", "pw", "")
}

func TestAuthService_Register_DuplicateAtWriteTime(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = domain.ErrDuplicateEmail
	svc := newAuthSvc(repo)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Name: "A", Email: "a@x.com", Password: "pw"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	reg := mustRegister(t, svc, "a@x.com", "pw1", "")

	res, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.User.Role != domain.RoleAgent {
		t.Fatalf("expected agent, got %s", res.User.Role)
	}
	if res.User.LastLoginAt == nil {
		t.Fatalf("expected lastLoginAt on the returned user")
	}

	select {
	case id := <-repo.touched:
		if id != reg.User.ID {
			t.Fatalf("touched wrong user %s", id)
		}
	case <-time.After(time.Second):
		t.Fatalf("last login was never recorded")
	}

	id, err := auth.NewTokenIssuer("secret", time.Hour).Verify(res.Token)
	if err != nil || id != reg.User.ID {
		t.Fatalf("token does not carry user id: %q, %v", id, err)
	}
}

func TestAuthService_Login_GenericFailure(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())
	mustRegister(t, svc, "a@x.com", "pw1", "")

	_, wrongPw := svc.Login(context.Background(), "a@x.com", "nope")
	_, noUser := svc.Login(context.Background(), "ghost@x.com", "pw1")

	if !errors.Is(wrongPw, domain.ErrInvalidCredentials) || !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPw, noUser)
	}
	if wrongPw.Error() != noUser.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPw, noUser)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	reg := mustRegister(t, svc, "a@x.com", "pw1", "")

	repo.setActive(reg.User.ID, false)

	if _, err := svc.Login(context.Background(), "a@x.com", "pw1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_PasswordReset_SingleUse(t *testing.T) {
	repo := newStubUserRepo()
	notifier := newStubNotifier(nil)
	svc := newAuthSvc(repo, WithResetNotifier(notifier))
	mustRegister(t, svc, "a@x.com", "old", "")
	ctx := context.Background()

	token, err := svc.ForgotPassword(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if got := notifier.next(t); got != token {
		t.Fatalf("expected notifier to receive %q, got %q", token, got)
	}

	stored, _ := repo.FindByEmail(ctx, "a@x.com")
	if stored.ResetTokenHash == token || stored.ResetTokenHash != auth.HashResetToken(token) {
		t.Fatalf("expected only the token hash to be stored")
	}

	if err := svc.ResetPassword(ctx, token, "new"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if err := svc.ResetPassword(ctx, token, "newer"); !errors.Is(err, domain.ErrInvalidOrExpiredResetToken) {
		t.Fatalf("expected second reset to fail, got %v", err)
	}

	stored, _ = repo.FindByEmail(ctx, "a@x.com")
	if stored.ResetTokenHash != "" || stored.ResetTokenExpiresAt != nil {
		t.Fatalf("expected reset fields cleared together, got %q / %v", stored.ResetTokenHash, stored.ResetTokenExpiresAt)
	}
	if _, err := svc.Login(ctx, "a@x.com", "new"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "old"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still works: %v", err)
	}
}

func TestAuthService_PasswordReset_Expired(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, WithClock(clock.Now))
	mustRegister(t, svc, "a@x.com", "old", "")

	token, err := svc.ForgotPassword(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}

	clock.Advance(30*time.Minute + time.Second)
	if err := svc.ResetPassword(context.Background(), token, "new"); !errors.Is(err, domain.ErrInvalidOrExpiredResetToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestAuthService_PasswordReset_ConcurrentUseSucceedsOnce(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	mustRegister(t, svc, "a@x.com", "old", "")
	token, _ := svc.ForgotPassword(context.Background(), "a@x.com")

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.ResetPassword(context.Background(), token, "new")
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, domain.ErrInvalidOrExpiredResetToken):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one successful reset, got %d", ok)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())
	if _, err := svc.ForgotPassword(context.Background(), "ghost@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ForgotPassword_NotifierFailureIsNotFatal(t *testing.T) {
	notifier := newStubNotifier(errors.New("offline"))
	svc := newAuthSvc(newStubUserRepo(), WithResetNotifier(notifier))
	mustRegister(t, svc, "a@x.com", "pw", "")

	if _, err := svc.ForgotPassword(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("expected success despite notifier failure, got %v", err)
	}
	notifier.next(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	a := mustRegister(t, svc, "a@x.com", "pw", "")
	mustRegister(t, svc, "b@x.com", "pw", "")
	ctx := context.Background()

	taken := "b@x.com"
	if _, err := svc.UpdateProfile(ctx, a.User.ID, ports.UpdateProfileInput{Email: &taken}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	name, email, pw := "Alice", "alice@x.com", "fresh"
	updated, err := svc.UpdateProfile(ctx, a.User.ID, ports.UpdateProfileInput{Name: &name, Email: &email, Password: &pw})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Alice" || updated.Email != "alice@x.com" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	if _, err := svc.Login(ctx, "alice@x.com", "fresh"); err != nil {
		t.Fatalf("login after profile update: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, "missing", ports.UpdateProfileInput{Name: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())
	if _, err := svc.GetProfile(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ForgotPassword_DoesNotWaitForDelivery(t *testing.T) {
	release := make(chan struct{})
	notifier := &blockingNotifier{release: release}
	svc := newAuthSvc(newStubUserRepo(), WithResetNotifier(notifier))
	mustRegister(t, svc, "a@x.com", "pw", "")
	defer close(release)

	done := make(chan error, 1)
	go func() {
		_, err := svc.ForgotPassword(context.Background(), "a@x.com")
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("forgot password: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("forgot password blocked on reset token delivery")
	}
}

type blockingNotifier struct {
	release chan struct{}
}

func (n *blockingNotifier) NotifyPasswordReset(ctx context.Context, _ *domain.User, _ string) error {
	select {
	case <-n.release:
	case <-ctx.Done():
	}
	return nil
}

func TestAuthService_UpdateProfile_KeepsConcurrentPasswordReset(t *testing.T) {
	repo := &racingUserRepo{stubUserRepo: newStubUserRepo()}
	svc := newAuthSvc(repo)
	reg := mustRegister(t, svc, "a@x.com", "old", "")
	ctx := context.Background()

	token, err := svc.ForgotPassword(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	var resetErr error
	repo.onFind = func() { resetErr = svc.ResetPassword(ctx, token, "new") }

	name := "Renamed"
	if _, err := svc.UpdateProfile(ctx, reg.User.ID, ports.UpdateProfileInput{Name: &name}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if resetErr != nil {
		t.Fatalf("reset password: %v", resetErr)
	}

	if _, err := svc.Login(ctx, "a@x.com", "new"); err != nil {
		t.Fatalf("login with reset password: %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "old"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password restored by profile update: %v", err)
	}
	if err := svc.ResetPassword(ctx, token, "again"); !errors.Is(err, domain.ErrInvalidOrExpiredResetToken) {
		t.Fatalf("consumed token accepted again: %v", err)
	}
	stored, _ := repo.FindByID(ctx, reg.User.ID)
	if stored.Name != "Renamed" {
		t.Fatalf("expected name update to land, got %q", stored.Name)
	}
}

func TestAuthService_UpdateProfile_KeepsConcurrentResetToken(t *testing.T) {
	repo := &racingUserRepo{stubUserRepo: newStubUserRepo()}
	svc := newAuthSvc(repo)
	reg := mustRegister(t, svc, "a@x.com", "old", "")
	ctx := context.Background()

	var token string
	var forgotErr error
	repo.onFind = func() { token, forgotErr = svc.ForgotPassword(ctx, "a@x.com") }

	phone := "5511999990000"
	if _, err := svc.UpdateProfile(ctx, reg.User.ID, ports.UpdateProfileInput{Phone: &phone}); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if forgotErr != nil {
		t.Fatalf("forgot password: %v", forgotErr)
	}

	if err := svc.ResetPassword(ctx, token, "new"); err != nil {
		t.Fatalf("reset token issued during profile update was lost: %v", err)
	}
}

func TestAuthService_EmailsAreCaseSensitive(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo())
	ctx := context.Background()

	lower := mustRegister(t, svc, "a@x.com", "lower-pw", "")
	upper := mustRegister(t, svc, "A@x.com", "upper-pw", "")
	if lower.User.ID == upper.User.ID {
		t.Fatalf("expected two accounts, got one id %s", lower.User.ID)
	}

	res, err := svc.Login(ctx, "a@x.com", "lower-pw")
	if err != nil || res.User.ID != lower.User.ID {
		t.Fatalf("login a@x.com: got %v, %v", res, err)
	}
	res, err = svc.Login(ctx, "A@x.com", "upper-pw")
	if err != nil || res.User.ID != upper.User.ID {
		t.Fatalf("login A@x.com: got %v, %v", res, err)
	}
	if _, err := svc.Login(ctx, "A@x.com", "lower-pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected other account's password to be rejected, got %v", err)
	}
}
