package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/chirpy/internal/dbx"
	"github.com/dmitrijs2005/chirpy/internal/server/models"
	chirpsrepo "github.com/dmitrijs2005/chirpy/internal/server/repositories/chirps"
	refreshtokensrepo "github.com/dmitrijs2005/chirpy/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/chirpy/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- fake repositories with canned outputs ---

type fakeUsersRepo struct {
	createOut    *models.User
	createErr    error
	createdEmail string

	getByEmailOut *models.User
	getByEmailErr error

	getByIDOut *models.User
	getByIDErr error

	updateOut *models.User
	updateErr error

	upgradeErr   error
	upgradeCalls int

	deleteAllErr   error
	deleteAllCalls int
}

func (f *fakeUsersRepo) Create(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	f.createdEmail = email
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeUsersRepo) UpdateCredentials(ctx context.Context, id uuid.UUID, email, hashedPassword string) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeUsersRepo) Upgrade(ctx context.Context, id uuid.UUID) error {
	f.upgradeCalls++
	return f.upgradeErr
}

func (f *fakeUsersRepo) DeleteAll(ctx context.Context) error {
	f.deleteAllCalls++
	return f.deleteAllErr
}

type fakeRefreshRepo struct {
	createErr   error
	createCalls int
	lastToken   string

	findOut *models.RefreshToken
	findErr error

	revokeErr   error
	revokeCalls int

	revokeAllErr   error
	revokeAllCalls int
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID uuid.UUID, token string, validity time.Duration) error {
	f.createCalls++
	f.lastToken = token
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Revoke(ctx context.Context, token string) error {
	f.revokeCalls++
	return f.revokeErr
}

func (f *fakeRefreshRepo) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	f.revokeAllCalls++
	return f.revokeAllErr
}

type fakeChirpsRepo struct {
	createOut  *models.Chirp
	createErr  error
	lastBody   string
	getByIDOut *models.Chirp
	getByIDErr error

	listOut  []models.Chirp
	listErr  error
	lastOpts chirpsrepo.ListOptions

	deleteErr   error
	deleteCalls int
}

func (f *fakeChirpsRepo) Create(ctx context.Context, userID uuid.UUID, body string) (*models.Chirp, error) {
	f.lastBody = body
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeChirpsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Chirp, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDOut, nil
}

func (f *fakeChirpsRepo) List(ctx context.Context, opts chirpsrepo.ListOptions) ([]models.Chirp, error) {
	f.lastOpts = opts
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeChirpsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteCalls++
	return f.deleteErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeChirpsRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.u }

func (m *fakeRepoManager) Chirps(db dbx.DBTX) chirpsrepo.Repository { return m.c }

func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
