package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/chirpy/internal/common"
	"github.com/dmitrijs2005/chirpy/internal/dbx"
	"github.com/dmitrijs2005/chirpy/internal/logging"
	"github.com/dmitrijs2005/chirpy/internal/server/config"
	"github.com/dmitrijs2005/chirpy/internal/server/models"
	chirpsrepo "github.com/dmitrijs2005/chirpy/internal/server/repositories/chirps"
	refreshtokensrepo "github.com/dmitrijs2005/chirpy/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/chirpy/internal/server/repositories/users"
	"github.com/dmitrijs2005/chirpy/internal/server/services"
)

// In-memory repositories backing the handler tests. Unlike the canned fakes
// in the services package these hold state, so multi-request scenarios
// (login, refresh, revoke) behave like they would against a real database.

type memStore struct {
	users   map[uuid.UUID]*models.User
	chirps  map[uuid.UUID]*models.Chirp
	tokens  map[string]*models.RefreshToken
	chirpSeq int
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[uuid.UUID]*models.User{},
		chirps: map[uuid.UUID]*models.Chirp{},
		tokens: map[string]*models.RefreshToken{},
	}
}

type memUsersRepo struct{ s *memStore }

func (r *memUsersRepo) Create(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return nil, common.ErrorConflict
		}
	}
	now := time.Now().UTC()
	u := &models.User{ID: uuid.New(), Email: email, HashedPassword: hashedPassword, CreatedAt: now, UpdatedAt: now}
	r.s.users[u.ID] = u
	out := *u
	return &out, nil
}

func (r *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUsersRepo) UpdateCredentials(ctx context.Context, id uuid.UUID, email, hashedPassword string) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Email = email
	u.HashedPassword = hashedPassword
	u.UpdatedAt = time.Now().UTC()
	out := *u
	return &out, nil
}

func (r *memUsersRepo) Upgrade(ctx context.Context, id uuid.UUID) error {
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsChirpyRed = true
	return nil
}

func (r *memUsersRepo) DeleteAll(ctx context.Context) error {
	r.s.users = map[uuid.UUID]*models.User{}
	r.s.chirps = map[uuid.UUID]*models.Chirp{}
	r.s.tokens = map[string]*models.RefreshToken{}
	return nil
}

type memRefreshRepo struct{ s *memStore }

func (r *memRefreshRepo) Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error {
	now := time.Now().UTC()
	r.s.tokens[token] = &models.RefreshToken{
		Token: token, UserID: userID, ExpiresAt: now.Add(validity), CreatedAt: now, UpdatedAt: now,
	}
	return nil
}

func (r *memRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := r.s.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

func (r *memRefreshRepo) Revoke(ctx context.Context, token string) error {
	if t, ok := r.s.tokens[token]; ok && !t.RevokedAt.Valid {
		t.RevokedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		t.UpdatedAt = t.RevokedAt.Time
	}
	return nil
}

func (r *memRefreshRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, t := range r.s.tokens {
		if t.UserID == userID && !t.RevokedAt.Valid {
			t.RevokedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
		}
	}
	return nil
}

type memChirpsRepo struct{ s *memStore }

func (r *memChirpsRepo) Create(ctx context.Context, userID uuid.UUID, body string) (*models.Chirp, error) {
	// Distinct timestamps keep ordering deterministic in list tests.
	r.s.chirpSeq++
	now := time.Now().UTC().Add(time.Duration(r.s.chirpSeq) * time.Millisecond)
	c := &models.Chirp{ID: uuid.New(), Body: body, UserID: userID, CreatedAt: now, UpdatedAt: now}
	r.s.chirps[c.ID] = c
	out := *c
	return &out, nil
}

func (r *memChirpsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Chirp, error) {
	c, ok := r.s.chirps[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *c
	return &out, nil
}

func (r *memChirpsRepo) List(ctx context.Context, opts chirpsrepo.ListOptions) ([]models.Chirp, error) {
	out := []models.Chirp{}
	for _, c := range r.s.chirps {
		if opts.AuthorID != nil && c.UserID != *opts.AuthorID {
			continue
		}
		out = append(out, *c)
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			earlier := out[j].CreatedAt.Before(out[i].CreatedAt)
			if earlier != opts.Descending {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *memChirpsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.chirps, id)
	return nil
}

type memRepoManager struct{ s *memStore }

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memRepoManager) Users(dbx.DBTX) usersrepo.Repository { return &memUsersRepo{m.s} }

func (m *memRepoManager) Chirps(dbx.DBTX) chirpsrepo.Repository { return &memChirpsRepo{m.s} }

func (m *memRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository {
	return &memRefreshRepo{m.s}
}

const (
	testJWTSecret = "test-secret"
	testPolkaKey  = "test-polka-key"
)

func newTestServer(t *testing.T) (*Server, *memStore) {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		EndpointAddr:                 "localhost:0",
		SecretKey:                    testJWTSecret,
		PolkaKey:                     testPolkaKey,
		Platform:                     "dev",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 60 * 24 * time.Hour,
	}

	store := newMemStore()
	m := &memRepoManager{s: store}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	srv := NewServer(cfg, logger,
		services.NewUserService(db, m, cfg),
		services.NewChirpService(db, m),
		services.NewWebhookService(db, m),
	)
	return srv, store
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, h http.Handler, email, password string) userResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/users",
		`{"email":"`+email+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[userResponse](t, rec)
}

func loginUser(t *testing.T, h http.Handler, email, password string) loginResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/login",
		`{"email":"`+email+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody[loginResponse](t, rec)
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
