package services

import (
	"context"

	"chatgate/internal/catalog"
	"chatgate/internal/models/db_models"
	"chatgate/internal/models/request_models"
	"chatgate/internal/models/response_models"
	"chatgate/internal/repositories"
	"chatgate/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	ListUsersWithSubscriptions(ctx context.Context) ([]response_models.UserWithSubscription, error)
}

type AccountService struct {
	accountRepo repositories.IAccountRepository
	subRepo     repositories.ISubscriptionRepository
	historyRepo repositories.IChatHistoryRepository
}

func NewAccountService(
	accountRepo repositories.IAccountRepository,
	subRepo repositories.ISubscriptionRepository,
	historyRepo repositories.IChatHistoryRepository,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		subRepo:     subRepo,
		historyRepo: historyRepo,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	account, err := a.accountRepo.FindByUsername(ctx, request.Username)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.LoginResponse{
		Token:    token,
		UserID:   account.ID,
		Username: account.Username,
		Role:     account.Role,
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.accountRepo.FindByUsername(ctx, request.Username)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrUsernameTaken
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	account := &db_models.Account{
		Username:     request.Username,
		PasswordHash: hashedPassword,
		Role:         db_models.RoleUser,
	}

	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) ListUsersWithSubscriptions(ctx context.Context) ([]response_models.UserWithSubscription, error) {
	accounts, err := a.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.UserWithSubscription, 0, len(accounts))
	for _, account := range accounts {
		dto := response_models.UserWithSubscription{
			ID:          account.ID,
			Username:    account.Username,
			Role:        account.Role,
			CreatedAt:   account.CreatedAt,
			UpdatedAt:   account.UpdatedAt,
			PlanType:    catalog.FreePlanName,
			TokensLimit: catalog.FreeTokenLimit,
		}

		sub, err := a.subRepo.GetCurrent(ctx, account.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if sub != nil {
			id := sub.ID
			dto.SubscriptionID = &id
			dto.PlanType = sub.PlanType
			dto.IsPaid = sub.IsPaid
			dto.PaidAt = sub.PaidAt
			dto.ExpiresAt = sub.ExpiresAt
			dto.Amount = sub.Amount
			dto.PaymentMethod = sub.PaymentMethod
			dto.TokensUsed = sub.TokensUsed
			dto.TokensLimit = sub.TokensLimit
		}

		count, last, err := a.historyRepo.StatsByAccount(ctx, account.ID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		dto.TotalChatMessages = count
		dto.LastChatAt = last

		out = append(out, dto)
	}

	return out, nil
}
