package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Aditya-Sharma03/spendwise/internal/domain"
	"github.com/Aditya-Sharma03/spendwise/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput(userID string) (usecase.CreateWalletInput, error) {
	kind, err := domain.ParseWalletKind(r.Kind)
	if err != nil {
		return usecase.CreateWalletInput{}, err
	}

	return usecase.CreateWalletInput{
		UserID: userID,
		Name:   r.Name,
		Kind:   kind,
	}, nil
}

// RecordTransactionRequest represents income or an expense on one wallet.
// Category holds the source for incomes.
type RecordTransactionRequest struct {
	EffectiveDate *Date           `json:"date,omitempty"`
	WalletID      string          `json:"wallet_id"`
	Category      string          `json:"category"`
	Notes         string          `json:"notes,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordTransactionRequest) ToUseCaseInput(userID string) usecase.RecordTransactionInput {
	return usecase.RecordTransactionInput{
		EffectiveDate: timePtr(r.EffectiveDate),
		UserID:        userID,
		WalletID:      r.WalletID,
		Category:      r.Category,
		Notes:         r.Notes,
		Amount:        r.Amount,
	}
}

// CreateTransferRequest represents a request to move money between wallets.
type CreateTransferRequest struct {
	EffectiveDate *Date           `json:"date,omitempty"`
	FromWalletID  string          `json:"from_wallet_id"`
	ToWalletID    string          `json:"to_wallet_id"`
	Notes         string          `json:"notes,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput(userID string) usecase.TransferInput {
	return usecase.TransferInput{
		EffectiveDate: timePtr(r.EffectiveDate),
		UserID:        userID,
		FromWalletID:  r.FromWalletID,
		ToWalletID:    r.ToWalletID,
		Notes:         r.Notes,
		Amount:        r.Amount,
	}
}

// CreateDueRequest represents money lent (GIVE) or borrowed (TAKE).
type CreateDueRequest struct {
	DueDate    *Date           `json:"date,omitempty"`
	WalletID   *string         `json:"wallet_id,omitempty"`
	Type       string          `json:"type"`
	PersonName string          `json:"person_name"`
	Reason     string          `json:"reason,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDueRequest) ToUseCaseInput(userID string) (usecase.CreateDueInput, error) {
	dueType, err := domain.ParseDueType(r.Type)
	if err != nil {
		return usecase.CreateDueInput{}, err
	}

	return usecase.CreateDueInput{
		DueDate:    timePtr(r.DueDate),
		WalletID:   r.WalletID,
		UserID:     userID,
		Type:       dueType,
		PersonName: r.PersonName,
		Reason:     r.Reason,
		Amount:     r.Amount,
	}, nil
}
