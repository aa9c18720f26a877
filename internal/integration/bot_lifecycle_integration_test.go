package integration

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"trading_platform/internal/domain"
	"trading_platform/internal/repository"
	"trading_platform/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func createUser(t *testing.T, db *pgxpool.Pool, kycLevel int, referrerID *int64) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        fmt.Sprintf("u%d@test.local", time.Now().UnixNano()),
		Username:     "tester",
		PasswordHash: "x",
		KycLevel:     kycLevel,
		ReferrerID:   referrerID,
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createBot(t *testing.T, db *pgxpool.Pool, profitRange string, enabled bool) *domain.Bot {
	t.Helper()
	b := &domain.Bot{
		Name:        "test bot",
		ProfitRange: profitRange,
		RiskLevel:   "medium",
		Enabled:     enabled,
	}
	if err := repository.NewBotRepository(db).Create(context.Background(), b); err != nil {
		t.Fatalf("create bot: %v", err)
	}
	return b
}

func fundWallet(t *testing.T, db *pgxpool.Pool, userID int64, currency string, amount float64) {
	t.Helper()
	svc := service.NewWalletService(db, nil)
	if _, err := svc.Deposit(context.Background(), userID, currency, amount, ""); err != nil {
		t.Fatalf("deposit: %v", err)
	}
}

func walletBalance(t *testing.T, db *pgxpool.Pool, userID int64, currency string) float64 {
	t.Helper()
	w, err := repository.NewWalletRepository(db).Get(context.Background(), userID, currency)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w == nil {
		return 0
	}
	return w.Balance
}

func botsEnabled(t *testing.T, db *pgxpool.Pool, enabled bool) {
	t.Helper()
	repo := repository.NewSettingsRepository(db)
	if _, err := repo.Update(context.Background(), &domain.SettingsUpdate{BotsEnabled: &enabled}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
}

func TestBotLifecycle_LaunchAndStop(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	botsEnabled(t, db, true)

	user := createUser(t, db, 1, nil)
	// a fixed range makes the payout deterministic regardless of the draw
	bot := createBot(t, db, "10-10%", true)
	fundWallet(t, db, user.ID, "USDT", 100)

	svc := service.NewBotService(db, service.NewReferralService(db, ""), nil)

	pos, err := svc.Launch(ctx, user.ID, &domain.LaunchRequest{
		BotID: bot.ID, Investment: 100, Currency: "USDT",
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if pos.Status != domain.PositionActive {
		t.Fatalf("position status = %s; want active", pos.Status)
	}
	if bal := walletBalance(t, db, user.ID, "USDT"); bal != 0 {
		t.Fatalf("balance after launch = %v; want 0", bal)
	}

	res, err := svc.Stop(ctx, user.ID, pos.ID)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}

	// fresh position counts as one day: 100 * 0.10 * 1/30
	wantProfit := 100 * 0.10 / 30
	if math.Abs(res.Profit-wantProfit) > 1e-9 {
		t.Fatalf("profit = %v; want %v", res.Profit, wantProfit)
	}
	if math.Abs(res.Total-(100+wantProfit)) > 1e-9 {
		t.Fatalf("total = %v; want %v", res.Total, 100+wantProfit)
	}
	if bal := walletBalance(t, db, user.ID, "USDT"); math.Abs(bal-(100+wantProfit)) > 1e-9 {
		t.Fatalf("balance after stop = %v; want %v", bal, 100+wantProfit)
	}

	// the wallet was credited investment + profit as separate ledger entries
	txs, err := repository.NewTransactionRepository(db).GetByUserID(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	types := map[string]bool{}
	for _, tx := range txs {
		types[tx.Type] = true
	}
	for _, want := range []string{domain.TxBotInvestment, domain.TxBotReturn, domain.TxBotProfit} {
		if !types[want] {
			t.Fatalf("missing %s transaction; got %v", want, types)
		}
	}

	// a completed position cannot be stopped again
	if _, err := svc.Stop(ctx, user.ID, pos.ID); !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("second stop: got %v; want ErrInvalidState", err)
	}
}

func TestBotLifecycle_LaunchPreconditionOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := createUser(t, db, 0, nil)
	bot := createBot(t, db, "5-10%", true)
	disabledBot := createBot(t, db, "5-10%", false)

	svc := service.NewBotService(db, service.NewReferralService(db, ""), nil)

	// platform toggle wins over everything, even a nonexistent bot
	botsEnabled(t, db, false)
	_, err := svc.Launch(ctx, user.ID, &domain.LaunchRequest{BotID: 999999, Investment: 10, Currency: "USDT"})
	if !errors.Is(err, service.ErrPlatformDisabled) {
		t.Fatalf("disabled platform: got %v; want ErrPlatformDisabled", err)
	}
	botsEnabled(t, db, true)

	_, err = svc.Launch(ctx, user.ID, &domain.LaunchRequest{BotID: 999999, Investment: 10, Currency: "USDT"})
	if !errors.Is(err, service.ErrBotUnavailable) {
		t.Fatalf("missing bot: got %v; want ErrBotUnavailable", err)
	}
	_, err = svc.Launch(ctx, user.ID, &domain.LaunchRequest{BotID: disabledBot.ID, Investment: 10, Currency: "USDT"})
	if !errors.Is(err, service.ErrBotUnavailable) {
		t.Fatalf("disabled bot: got %v; want ErrBotUnavailable", err)
	}

	// unverified user is stopped before amount or balance checks
	_, err = svc.Launch(ctx, user.ID, &domain.LaunchRequest{BotID: bot.ID, Investment: 0, Currency: "USDT"})
	if !errors.Is(err, service.ErrKycRequired) {
		t.Fatalf("kyc 0: got %v; want ErrKycRequired", err)
	}

	verified := createUser(t, db, 1, nil)
	_, err = svc.Launch(ctx, verified.ID, &domain.LaunchRequest{BotID: bot.ID, Investment: 0, Currency: "USDT"})
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("zero investment: got %v; want ErrInvalidAmount", err)
	}
	_, err = svc.Launch(ctx, verified.ID, &domain.LaunchRequest{BotID: bot.ID, Investment: 10, Currency: "USDT"})
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("no wallet: got %v; want ErrInsufficientFunds", err)
	}
}

func TestBotLifecycle_ReferralCommission(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	botsEnabled(t, db, true)

	fee := 0.01
	if _, err := repository.NewSettingsRepository(db).Update(ctx, &domain.SettingsUpdate{BronzeFee: &fee}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	referrer := createUser(t, db, 1, nil)
	referred := createUser(t, db, 1, &referrer.ID)
	bot := createBot(t, db, "30-30%", true)
	fundWallet(t, db, referred.ID, "USDT", 300)

	svc := service.NewBotService(db, service.NewReferralService(db, ""), nil)

	pos, err := svc.Launch(ctx, referred.ID, &domain.LaunchRequest{
		BotID: bot.ID, Investment: 300, Currency: "USDT",
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	res, err := svc.Stop(ctx, referred.ID, pos.ID)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}

	// 300 * 0.30 / 30 days = 3 profit; bronze pays 1% of that
	wantCommission := res.Profit * fee
	if bal := walletBalance(t, db, referrer.ID, "USDT"); math.Abs(bal-wantCommission) > 1e-9 {
		t.Fatalf("referrer balance = %v; want %v", bal, wantCommission)
	}

	txs, err := repository.NewTransactionRepository(db).GetByUserID(ctx, referrer.ID, 10)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	found := false
	for _, tx := range txs {
		if tx.Type == domain.TxReferralCommission {
			found = true
			if math.Abs(tx.Amount-wantCommission) > 1e-9 {
				t.Fatalf("commission amount = %v; want %v", tx.Amount, wantCommission)
			}
		}
	}
	if !found {
		t.Fatal("no referral_commission transaction on referrer ledger")
	}
}

func TestBotLifecycle_ConcurrentLaunchSingleSuccess(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	botsEnabled(t, db, true)

	user := createUser(t, db, 1, nil)
	bot := createBot(t, db, "5-10%", true)
	fundWallet(t, db, user.ID, "USDT", 100)

	svc := service.NewBotService(db, service.NewReferralService(db, ""), nil)

	// the balance covers only one of the two launches; the row lock must
	// serialize them so exactly one wins
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Launch(ctx, user.ID, &domain.LaunchRequest{
				BotID: bot.ID, Investment: 100, Currency: "USDT",
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || insufficient != 1 {
		t.Fatalf("got %d successes, %d insufficient; want 1 and 1", ok, insufficient)
	}
	if bal := walletBalance(t, db, user.ID, "USDT"); bal != 0 {
		t.Fatalf("balance = %v; want 0", bal)
	}
}
