package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatgate/internal/catalog"
	"chatgate/internal/models/db_models"
	"chatgate/internal/models/request_models"
	"chatgate/pkg/utils"
)

type fakeAccountRepo struct {
	accounts []db_models.Account
	findErr  error
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*db_models.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.accounts {
		if f.accounts[i].Username == username {
			a := f.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			a := f.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) Insert(_ context.Context, account *db_models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	f.accounts = append(f.accounts, *account)
	return nil
}

func (f *fakeAccountRepo) ListAll(context.Context) ([]db_models.Account, error) {
	out := make([]db_models.Account, len(f.accounts))
	copy(out, f.accounts)
	return out, nil
}

func TestCreateAccountAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	accountRepo := &fakeAccountRepo{}
	svc := NewAccountService(accountRepo, newFakeSubscriptionRepo(), &fakeChatHistoryRepo{})

	err := svc.CreateAccount(context.Background(), request_models.SignUpRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{Username: "alice", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, db_models.RoleUser, resp.Role)
}

func TestCreateAccountRejectsDuplicateUsername(t *testing.T) {
	accountRepo := &fakeAccountRepo{}
	svc := NewAccountService(accountRepo, newFakeSubscriptionRepo(), &fakeChatHistoryRepo{})

	require.NoError(t, svc.CreateAccount(context.Background(), request_models.SignUpRequest{Username: "bob", Password: "pw123456"}))

	err := svc.CreateAccount(context.Background(), request_models.SignUpRequest{Username: "bob", Password: "other456"})
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	accountRepo := &fakeAccountRepo{}
	svc := NewAccountService(accountRepo, newFakeSubscriptionRepo(), &fakeChatHistoryRepo{})
	require.NoError(t, svc.CreateAccount(context.Background(), request_models.SignUpRequest{Username: "carol", Password: "secretpw"}))

	_, err := svc.Login(context.Background(), request_models.LoginRequest{Username: "carol", Password: "wrong"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestListUsersWithSubscriptionsDefaultsToFree(t *testing.T) {
	accountRepo := &fakeAccountRepo{}
	subRepo := newFakeSubscriptionRepo()
	historyRepo := &fakeChatHistoryRepo{}
	svc := NewAccountService(accountRepo, subRepo, historyRepo)

	withSub := db_models.Account{Username: "paid-user", Role: db_models.RoleUser}
	require.NoError(t, accountRepo.Insert(context.Background(), &withSub))
	withoutSub := db_models.Account{Username: "fresh-user", Role: db_models.RoleUser}
	require.NoError(t, accountRepo.Insert(context.Background(), &withoutSub))

	require.NoError(t, subRepo.Create(context.Background(), &db_models.Subscription{
		AccountID:   withSub.ID,
		PlanType:    "Premium",
		IsPaid:      true,
		TokensUsed:  123,
		TokensLimit: 50000,
	}))
	historyRepo.entries = []db_models.ChatHistory{
		{BaseModel: db_models.BaseModel{ID: uuid.New(), CreatedAt: 500}, AccountID: withSub.ID, UserMessage: "q", AiResponse: "a"},
	}

	users, err := svc.ListUsersWithSubscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "Premium", users[0].PlanType)
	assert.Equal(t, int64(123), users[0].TokensUsed)
	assert.Equal(t, int64(1), users[0].TotalChatMessages)
	require.NotNil(t, users[0].LastChatAt)
	assert.Equal(t, int64(500), *users[0].LastChatAt)

	assert.Equal(t, catalog.FreePlanName, users[1].PlanType)
	assert.Equal(t, int64(catalog.FreeTokenLimit), users[1].TokensLimit)
	assert.Nil(t, users[1].SubscriptionID)
}
