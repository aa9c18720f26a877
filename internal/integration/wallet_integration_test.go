package integration

import (
	"context"
	"errors"
	"math"
	"testing"

	"trading_platform/internal/domain"
	"trading_platform/internal/repository"
	"trading_platform/internal/service"
)

func TestWithdraw_FeeAndSettlement(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	fee := 0.20
	if _, err := repository.NewSettingsRepository(db).Update(ctx, &domain.SettingsUpdate{WithdrawalFee: &fee}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	user := createUser(t, db, 1, nil)
	fundWallet(t, db, user.ID, "USDT", 100)

	svc := service.NewWalletService(db, nil)

	receipt, err := svc.Withdraw(ctx, user.ID, &domain.WithdrawRequest{
		Currency: "USDT", Amount: 50, Address: "TXabc123",
	})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	// the full amount is debited; the fee comes off the payout
	if math.Abs(receipt.Fee-10) > 1e-9 || math.Abs(receipt.NetAmount-40) > 1e-9 {
		t.Fatalf("receipt fee=%v net=%v; want 10 and 40", receipt.Fee, receipt.NetAmount)
	}
	if receipt.Status != domain.TxStatusPending {
		t.Fatalf("receipt status = %s; want pending", receipt.Status)
	}
	if bal := walletBalance(t, db, user.ID, "USDT"); math.Abs(bal-50) > 1e-9 {
		t.Fatalf("balance = %v; want 50", bal)
	}

	// rejection refunds the full debit
	if err := svc.RejectWithdrawal(ctx, receipt.TransactionID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if bal := walletBalance(t, db, user.ID, "USDT"); math.Abs(bal-100) > 1e-9 {
		t.Fatalf("balance after reject = %v; want 100", bal)
	}

	// a settled withdrawal cannot be settled twice
	if err := svc.RejectWithdrawal(ctx, receipt.TransactionID); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("double reject: got %v; want ErrInvalidState", err)
	}

	receipt2, err := svc.Withdraw(ctx, user.ID, &domain.WithdrawRequest{
		Currency: "USDT", Amount: 30, Address: "TXabc123",
	})
	if err != nil {
		t.Fatalf("second withdraw: %v", err)
	}
	if err := svc.ApproveWithdrawal(ctx, receipt2.TransactionID, "0xhash"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	record, err := repository.NewTransactionRepository(db).GetByID(ctx, receipt2.TransactionID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if record.Status != domain.TxStatusCompleted || record.TxHash != "0xhash" {
		t.Fatalf("record status=%s hash=%s; want completed / 0xhash", record.Status, record.TxHash)
	}
}

func TestWithdraw_Preconditions(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	svc := service.NewWalletService(db, nil)

	unverified := createUser(t, db, 0, nil)
	_, err := svc.Withdraw(ctx, unverified.ID, &domain.WithdrawRequest{Currency: "USDT", Amount: 10, Address: "a"})
	if !errors.Is(err, service.ErrKycRequired) {
		t.Fatalf("kyc 0: got %v; want ErrKycRequired", err)
	}

	user := createUser(t, db, 1, nil)
	_, err = svc.Withdraw(ctx, user.ID, &domain.WithdrawRequest{Currency: "USDT", Amount: 10, Address: "a"})
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("no wallet: got %v; want ErrInsufficientFunds", err)
	}

	fundWallet(t, db, user.ID, "USDT", 5)
	_, err = svc.Withdraw(ctx, user.ID, &domain.WithdrawRequest{Currency: "USDT", Amount: 10, Address: "a"})
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("low balance: got %v; want ErrInsufficientFunds", err)
	}

	_, err = svc.Withdraw(ctx, user.ID, &domain.WithdrawRequest{Currency: "USDT", Amount: -1, Address: "a"})
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("negative amount: got %v; want ErrInvalidAmount", err)
	}
}

// The conditional UPDATE in DebitTx is the second line of defense behind the
// row lock; when it fires it must surface as the same error the balance
// precheck raises so the handler still maps it to a 400.
func TestDebitGuard_MatchesServiceSentinel(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createUser(t, db, 1, nil)
	fundWallet(t, db, user.ID, "USDT", 10)

	walletRepo := repository.NewWalletRepository(db)
	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	w, err := walletRepo.LockTx(ctx, tx, user.ID, "USDT")
	if err != nil || w == nil {
		t.Fatalf("lock wallet: %v", err)
	}

	if _, err := walletRepo.DebitTx(ctx, tx, w.ID, 20); !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("debit guard: got %v; want ErrInsufficientFunds", err)
	}
}

func TestSettings_SingletonDefaults(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	repo := repository.NewSettingsRepository(db)
	s, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if s.ID != 1 {
		t.Fatalf("settings id = %d; want 1", s.ID)
	}

	// partial edits leave other fields alone
	fee := 0.33
	updated, err := repo.Update(ctx, &domain.SettingsUpdate{SilverFee: &fee})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.SilverFee != 0.33 {
		t.Fatalf("silver fee = %v; want 0.33", updated.SilverFee)
	}
	if updated.GoldFee != s.GoldFee || updated.BotsEnabled != s.BotsEnabled {
		t.Fatal("unrelated fields changed by partial update")
	}

	restore := s.SilverFee
	if _, err := repo.Update(ctx, &domain.SettingsUpdate{SilverFee: &restore}); err != nil {
		t.Fatalf("restore: %v", err)
	}
}

func TestKyc_ReviewRaisesLevel(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createUser(t, db, 0, nil)
	admin := createUser(t, db, 0, nil)

	kycRepo := repository.NewKycRepository(db)
	doc := &domain.KycDocument{
		UserID:      user.ID,
		DocType:     "passport",
		FileURL:     "https://files.test.local/p.jpg",
		TargetLevel: 1,
		Status:      domain.KycPending,
	}
	if err := kycRepo.Create(ctx, doc); err != nil {
		t.Fatalf("create doc: %v", err)
	}

	reviewed, err := kycRepo.Review(ctx, doc.ID, admin.ID, true, "ok")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed == nil || reviewed.Status != domain.KycApproved {
		t.Fatalf("reviewed = %+v; want approved", reviewed)
	}

	u, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.KycLevel != 1 {
		t.Fatalf("kyc level = %d; want 1", u.KycLevel)
	}

	// already-reviewed documents cannot be reviewed again
	again, err := kycRepo.Review(ctx, doc.ID, admin.ID, false, "")
	if err != nil {
		t.Fatalf("second review: %v", err)
	}
	if again != nil {
		t.Fatal("second review succeeded; want nil")
	}

	// approving a lower target never lowers an already-higher level
	senior := createUser(t, db, 2, nil)
	lowDoc := &domain.KycDocument{
		UserID:      senior.ID,
		DocType:     "passport",
		FileURL:     "https://files.test.local/p2.jpg",
		TargetLevel: 1,
		Status:      domain.KycPending,
	}
	if err := kycRepo.Create(ctx, lowDoc); err != nil {
		t.Fatalf("create doc: %v", err)
	}
	if _, err := kycRepo.Review(ctx, lowDoc.ID, admin.ID, true, ""); err != nil {
		t.Fatalf("review: %v", err)
	}
	u2, err := repository.NewUserRepository(db).GetByID(ctx, senior.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u2.KycLevel != 2 {
		t.Fatalf("kyc level = %d; want 2 (monotonic)", u2.KycLevel)
	}
}
