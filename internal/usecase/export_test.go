package usecase

import "time"

func (uc *LedgerUseCase) SetClock(now func() time.Time)      { uc.now = now }
func (uc *TransactionUseCase) SetClock(now func() time.Time) { uc.now = now }
func (uc *DueUseCase) SetClock(now func() time.Time)         { uc.now = now }
func (uc *WalletUseCase) SetClock(now func() time.Time)      { uc.now = now }
func (uc *InsightUseCase) SetClock(now func() time.Time)     { uc.now = now }
