package domain

import "time"

// Event types
const (
	EventTypeTransactionRecorded = "transaction.recorded"
	EventTypeTransferRecorded    = "transfer.recorded"
	EventTypeLedgerSynced        = "ledger.synced"
	EventTypeDueCreated          = "due.created"
	EventTypeDueSettled          = "due.settled"
	EventTypeWalletCreated       = "wallet.created"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeTransfer    = "transfer"
	AggregateTypeWallet      = "wallet"
	AggregateTypeDue         = "due"
)

// Event is a notification about a state change, published after the change
// has been committed.
type Event struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
}

// TransactionRecordedPayload builds the payload of a transaction.recorded event.
func TransactionRecordedPayload(t *Transaction) map[string]any {
	payload := map[string]any{
		"transaction_id": t.ID,
		"wallet_id":      t.WalletID,
		"kind":           string(t.Kind),
		"amount":         t.Amount.String(),
		"effective_date": t.EffectiveDate.UTC().Format(time.RFC3339),
		"month":          t.Month().String(),
	}

	if t.TransferID != nil {
		payload["transfer_id"] = *t.TransferID
	}

	if t.DueID != nil {
		payload["due_id"] = *t.DueID
	}

	return payload
}

// LedgerSyncedPayload builds the payload of a ledger.synced event.
func LedgerSyncedPayload(walletID string, month MonthKey, closing string, cascaded int, stale bool) map[string]any {
	return map[string]any{
		"wallet_id":       walletID,
		"month":           month.String(),
		"closing_balance": closing,
		"months_cascaded": cascaded,
		"stale":           stale,
	}
}

// DuePayload builds the payload of due.created and due.settled events.
func DuePayload(d *Due) map[string]any {
	payload := map[string]any{
		"due_id":      d.ID,
		"type":        string(d.Type),
		"status":      string(d.Status),
		"amount":      d.Amount.String(),
		"person_name": d.PersonName,
	}

	if d.WalletID != nil {
		payload["wallet_id"] = *d.WalletID
	}

	return payload
}
