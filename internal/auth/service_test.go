package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/company"
	"company_portal_backend/internal/session"
	"company_portal_backend/internal/shared"
	"company_portal_backend/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBackend is an in-memory shared.AuthBackend.
type fakeBackend struct {
	users      map[string]*shared.Identity // keyed by email
	signInErr  error
	signUpErr  error
	deleted    []string
	signedOut  []string
	nextUIDSeq int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{users: make(map[string]*shared.Identity)}
}

func (f *fakeBackend) VerifyIDToken(ctx context.Context, token string) (*shared.Identity, error) {
	return nil, common.ErrUnauthorized
}

func (f *fakeBackend) SignUp(ctx context.Context, email, password, displayName string) (*shared.Identity, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	if _, exists := f.users[email]; exists {
		return nil, common.ErrConflict.WithDetails("User already registered")
	}
	f.nextUIDSeq++
	identity := &shared.Identity{
		UID:           "uid-" + email,
		Email:         &email,
		DisplayName:   &displayName,
		SignInProvider: "password",
		CreatedAt:     time.Now().UTC(),
	}
	f.users[email] = identity
	return identity, nil
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (*shared.Identity, *shared.TokenResponse, error) {
	if f.signInErr != nil {
		return nil, nil, f.signInErr
	}
	identity, ok := f.users[email]
	if !ok {
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid login credentials")
	}
	tokens := &shared.TokenResponse{
		IDToken:      "id-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	return identity, tokens, nil
}

func (f *fakeBackend) SignOut(ctx context.Context, uid string) error {
	f.signedOut = append(f.signedOut, uid)
	return nil
}

func (f *fakeBackend) GetUser(ctx context.Context, uid string) (*shared.Identity, error) {
	for _, identity := range f.users {
		if identity.UID == uid {
			return identity, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeBackend) DeleteUser(ctx context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	for email, identity := range f.users {
		if identity.UID == uid {
			delete(f.users, email)
			break
		}
	}
	return nil
}

// fakeProfileRepo stores profiles in a map.
type fakeProfileRepo struct {
	profiles  map[string]*user.Profile
	createErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*user.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *user.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) FindByID(ctx context.Context, id string) (*user.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, common.ErrNotFound.WithDetails("User profile not found.")
	}
	return profile, nil
}

func (f *fakeProfileRepo) UpdateAddress(ctx context.Context, id string, update user.AddressUpdate) error {
	return nil
}

func (f *fakeProfileRepo) StampLastLogin(ctx context.Context, id string, at time.Time) error {
	return nil
}

// fakeCompanyService serves a single company id.
type fakeCompanyService struct {
	knownID int64
}

func (f *fakeCompanyService) GetAllCompanies(ctx context.Context) ([]company.Company, error) {
	return nil, nil
}

func (f *fakeCompanyService) GetCompanyByID(ctx context.Context, id int64) (*company.Company, error) {
	if id != f.knownID {
		return nil, common.ErrNotFound.WithDetails("Company not found.")
	}
	return &company.Company{ID: id, Name: "Acme Logistics", Slug: "acme-logistics"}, nil
}

func (f *fakeCompanyService) SeedDefaults(ctx context.Context) error {
	return nil
}

func validSignupRequest() SignupRequest {
	return SignupRequest{
		FullName:        "Jane Doe",
		PhoneNumber:     "+1 206 555 0100",
		Email:           "jane@example.com",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		CompanyID:       1,
		AgreeToTerms:    true,
	}
}

func newTestService() (Service, *fakeBackend, *fakeProfileRepo, *session.Gate) {
	backend := newFakeBackend()
	repo := newFakeProfileRepo()
	gate := session.NewGate(zap.NewNop())
	gate.Bootstrap(nil)
	svc := NewService(backend, repo, &fakeCompanyService{knownID: 1}, gate, zap.NewNop())
	return svc, backend, repo, gate
}

func TestSignupCreatesAccountProfileAndSession(t *testing.T) {
	svc, _, repo, gate := newTestService()
	sub := gate.Subscribe()
	defer sub.Unsubscribe()

	identity, tokens, err := svc.Signup(context.Background(), validSignupRequest())
	require.NoError(t, err)
	require.NotNil(t, identity)
	require.NotNil(t, tokens)
	assert.Equal(t, "id-token", tokens.IDToken)

	profile, err := repo.FindByID(context.Background(), identity.UID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.FullName)
	assert.Equal(t, int64(1), profile.CompanyID)

	n := <-sub.C
	assert.Equal(t, session.EventSignedUp, n.Event)

	current, loading := gate.Snapshot()
	require.NotNil(t, current)
	assert.Equal(t, identity.UID, current.UID)
	assert.False(t, loading)
}

func TestSignupRejectsInvalidFields(t *testing.T) {
	svc, backend, _, _ := newTestService()

	req := validSignupRequest()
	req.Password = "abcdefgh" // long enough but too weak
	req.ConfirmPassword = "abcdefgh"
	_, _, err := svc.Signup(context.Background(), req)
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Empty(t, backend.users, "no account may be created for invalid fields")
}

func TestSignupRejectsUnknownCompany(t *testing.T) {
	svc, backend, _, _ := newTestService()

	req := validSignupRequest()
	req.CompanyID = 42
	_, _, err := svc.Signup(context.Background(), req)
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Empty(t, backend.users)
}

func TestSignupDuplicateEmailIsConflict(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.Signup(context.Background(), validSignupRequest())
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), validSignupRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestSignupRollsBackHostedAccountWhenProfileWriteFails(t *testing.T) {
	svc, backend, repo, _ := newTestService()
	repo.createErr = common.ErrInternalServer

	_, _, err := svc.Signup(context.Background(), validSignupRequest())
	require.Error(t, err)

	require.Len(t, backend.deleted, 1)
	assert.Empty(t, backend.users, "orphaned hosted account is removed")
}

func TestLoginPublishesSignedIn(t *testing.T) {
	svc, _, _, gate := newTestService()
	_, _, err := svc.Signup(context.Background(), validSignupRequest())
	require.NoError(t, err)

	sub := gate.Subscribe()
	defer sub.Unsubscribe()

	identity, tokens, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "Abcdef1!",
	})
	require.NoError(t, err)
	require.NotNil(t, identity)
	require.NotNil(t, tokens)

	n := <-sub.C
	assert.Equal(t, session.EventSignedIn, n.Event)
}

func TestLoginValidationShortCircuitsBackend(t *testing.T) {
	svc, backend, _, _ := newTestService()
	backend.signInErr = errors.New("backend must not be reached")

	_, _, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "abc"})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 422, apiErr.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "abcdef",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
}

func TestLogoutPublishesSignedOut(t *testing.T) {
	svc, backend, _, gate := newTestService()
	_, _, err := svc.Signup(context.Background(), validSignupRequest())
	require.NoError(t, err)

	sub := gate.Subscribe()
	defer sub.Unsubscribe()

	require.NoError(t, svc.Logout(context.Background(), "uid-jane@example.com"))
	assert.Equal(t, []string{"uid-jane@example.com"}, backend.signedOut)

	n := <-sub.C
	assert.Equal(t, session.EventSignedOut, n.Event)
	assert.Nil(t, n.Identity)

	current, _ := gate.Snapshot()
	assert.Nil(t, current)
}
