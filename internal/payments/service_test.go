package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/amitsingh12ap/moveassist/internal/activity"
	"github.com/amitsingh12ap/moveassist/internal/moves"
	"github.com/amitsingh12ap/moveassist/internal/notifications"
	"github.com/amitsingh12ap/moveassist/pkg/config"
	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
	pkgerrors "github.com/amitsingh12ap/moveassist/pkg/errors"
	"github.com/amitsingh12ap/moveassist/pkg/pagination"
)

type stubPaymentsRepo struct {
	payments map[uuid.UUID]*models.Payment
	quote    *models.AgentQuote
}

func newStubPaymentsRepo() *stubPaymentsRepo {
	return &stubPaymentsRepo{payments: map[uuid.UUID]*models.Payment{}}
}

func (s *stubPaymentsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubPaymentsRepo) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	stored := *payment
	s.payments[payment.ID] = &stored
	return payment, nil
}

func (s *stubPaymentsRepo) FindPayment(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, ok := s.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func (s *stubPaymentsRepo) ListByMove(ctx context.Context, moveID uuid.UUID) ([]models.Payment, error) {
	var rows []models.Payment
	for _, payment := range s.payments {
		if payment.MoveID == moveID {
			rows = append(rows, *payment)
		}
	}
	return rows, nil
}

func (s *stubPaymentsRepo) ListUnderVerification(ctx context.Context, params pagination.Params) ([]models.Payment, *pagination.Cursor, error) {
	var rows []models.Payment
	for _, payment := range s.payments {
		if payment.Status == enums.PaymentStatusUnderVerification {
			rows = append(rows, *payment)
		}
	}
	return rows, nil, nil
}

func (s *stubPaymentsRepo) UpdatePayment(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	payment, ok := s.payments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["status"].(enums.PaymentStatus); ok {
		payment.Status = v
	}
	return nil
}

func (s *stubPaymentsRepo) SumVerifiedByMove(ctx context.Context, moveID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, payment := range s.payments {
		if payment.MoveID == moveID && payment.Status == enums.PaymentStatusVerified {
			sum = sum.Add(payment.Amount)
		}
	}
	return sum, nil
}

func (s *stubPaymentsRepo) FindQuoteByMove(ctx context.Context, moveID uuid.UUID) (*models.AgentQuote, error) {
	if s.quote == nil || s.quote.MoveID != moveID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.quote, nil
}

type stubMovesRepo struct {
	move    *models.Move
	updates map[string]any
}

func (s *stubMovesRepo) WithTx(tx *gorm.DB) moves.Repository {
	return s
}

func (s *stubMovesRepo) Create(ctx context.Context, move *models.Move) (*models.Move, error) {
	panic("not implemented")
}

func (s *stubMovesRepo) Find(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	if s.move == nil || s.move.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.move, nil
}

func (s *stubMovesRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*models.Move, error) {
	return s.Find(ctx, id)
}

func (s *stubMovesRepo) FindByBoxQR(ctx context.Context, qrCode string) (*models.Move, error) {
	panic("not implemented")
}

func (s *stubMovesRepo) FindByFurnitureItem(ctx context.Context, itemID uuid.UUID) (*models.Move, error) {
	panic("not implemented")
}

func (s *stubMovesRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubMovesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	panic("not used")
}

func (s *stubMovesRepo) List(ctx context.Context, filters moves.ListFilters, params pagination.Params) ([]models.Move, *pagination.Cursor, error) {
	panic("not implemented")
}

func (s *stubMovesRepo) CountUndeliveredBoxes(ctx context.Context, moveID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubMovesRepo) ListFurnitureMissingCondition(ctx context.Context, moveID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (s *stubMovesRepo) ListFurnitureMissingAfterPhoto(ctx context.Context, moveID uuid.UUID) ([]string, error) {
	return nil, nil
}

type stubRecorder struct {
	entries []activity.RecordInput
}

func (s *stubRecorder) Record(ctx context.Context, tx *gorm.DB, input activity.RecordInput) error {
	s.entries = append(s.entries, input)
	return nil
}

func (s *stubRecorder) ListByMove(ctx context.Context, moveID uuid.UUID, params pagination.Params) (*activity.ListResult, error) {
	return &activity.ListResult{}, nil
}

type stubNotifier struct {
	sent []notifications.NotifyInput
}

func (s *stubNotifier) Notify(ctx context.Context, tx *gorm.DB, input notifications.NotifyInput) error {
	s.sent = append(s.sent, input)
	return nil
}

func (s *stubNotifier) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	panic("not implemented")
}

func (s *stubNotifier) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	panic("not implemented")
}

func (s *stubNotifier) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	panic("not implemented")
}

func (s *stubNotifier) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	panic("not implemented")
}

type stubAdmins struct {
	ids []uuid.UUID
}

func (s *stubAdmins) ListAdminIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.ids, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func pricingConfig() config.PricingConfig {
	return config.PricingConfig{TokenPercent: 10, GSTPercent: 18}
}

func newTestService(t *testing.T, repo *stubPaymentsRepo, movesRepo *stubMovesRepo) (Service, *stubRecorder, *stubNotifier) {
	t.Helper()
	recorder := &stubRecorder{}
	notifier := &stubNotifier{}
	admins := &stubAdmins{ids: []uuid.UUID{uuid.New()}}
	svc, err := NewService(repo, movesRepo, stubTxRunner{}, recorder, notifier, admins, pricingConfig())
	require.NoError(t, err)
	return svc, recorder, notifier
}

func pendingMove() *models.Move {
	return &models.Move{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Title:         "Indiranagar to Whitefield",
		Status:        enums.MoveStatusCreated,
		PaymentStatus: enums.MovePaymentStatusPending,
	}
}

func TestSetPricing(t *testing.T) {
	movesRepo := &stubMovesRepo{move: pendingMove()}
	svc, recorder, notifier := newTestService(t, newStubPaymentsRepo(), movesRepo)

	result, err := svc.SetPricing(context.Background(), SetPricingInput{
		MoveID:    movesRepo.move.ID,
		ActorID:   uuid.New(),
		ActorRole: enums.UserRoleAdmin,
		Base:      decimal.NewFromInt(9999),
		Surcharge: decimal.NewFromInt(499),
	})
	require.NoError(t, err)

	// 10498 subtotal, 18% GST = 1890, total 12388, token 1239.
	require.True(t, result.Subtotal.Equal(decimal.NewFromInt(10498)), "subtotal %s", result.Subtotal)
	require.True(t, result.Tax.Equal(decimal.NewFromInt(1890)), "tax %s", result.Tax)
	require.True(t, result.Total.Equal(decimal.NewFromInt(12388)), "total %s", result.Total)
	require.True(t, result.TokenAmount.Equal(decimal.NewFromInt(1239)), "token %s", result.TokenAmount)
	require.True(t, len(result.InvoiceNumber) > 3 && result.InvoiceNumber[:3] == "MA-")

	require.Equal(t, enums.MoveStatusPaymentPending, movesRepo.updates["status"])
	require.Equal(t, enums.MovePaymentStatusPending, movesRepo.updates["payment_status"])

	require.Len(t, recorder.entries, 1)
	require.Equal(t, enums.ActivityTypePriceSet, recorder.entries[0].Type)
	require.Len(t, notifier.sent, 1)
	require.Equal(t, movesRepo.move.UserID, notifier.sent[0].UserID)
}

func TestSetPricingForbiddenForCustomers(t *testing.T) {
	movesRepo := &stubMovesRepo{move: pendingMove()}
	svc, _, _ := newTestService(t, newStubPaymentsRepo(), movesRepo)

	_, err := svc.SetPricing(context.Background(), SetPricingInput{
		MoveID:    movesRepo.move.ID,
		ActorID:   uuid.New(),
		ActorRole: enums.UserRoleCustomer,
		Base:      decimal.NewFromInt(9999),
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestInitiateTokenGuards(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusPaymentPending
	movesRepo := &stubMovesRepo{move: move}
	svc, _, _ := newTestService(t, newStubPaymentsRepo(), movesRepo)

	// Pricing not set yet.
	_, err := svc.InitiateToken(context.Background(), InitiateTokenInput{
		MoveID: move.ID,
		UserID: move.UserID,
		Mode:   enums.PaymentModeCash,
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodePriceNotSet, pkgerrors.As(err).Code())

	// Token already settled.
	move.TokenAmount = decimal.NewFromInt(1239)
	move.TokenPaid = true
	_, err = svc.InitiateToken(context.Background(), InitiateTokenInput{
		MoveID: move.ID,
		UserID: move.UserID,
		Mode:   enums.PaymentModeCash,
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeTokenAlreadyPaid, pkgerrors.As(err).Code())
}

func TestInitiateTokenQueuedForManualModes(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusPaymentPending
	move.TokenAmount = decimal.NewFromInt(1239)
	movesRepo := &stubMovesRepo{move: move}
	repo := newStubPaymentsRepo()
	svc, _, notifier := newTestService(t, repo, movesRepo)

	payment, err := svc.InitiateToken(context.Background(), InitiateTokenInput{
		MoveID: move.ID,
		UserID: move.UserID,
		Mode:   enums.PaymentModeBankTransfer,
	})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentStatusUnderVerification, payment.Status)
	require.Equal(t, enums.PaymentTypeToken, payment.PaymentType)

	require.Equal(t, enums.MoveStatusPaymentUnderVerification, movesRepo.updates["status"])
	require.Equal(t, enums.MovePaymentStatusUnderVerification, movesRepo.updates["payment_status"])
	require.Len(t, notifier.sent, 1)
}

func TestInitiateTokenAutoVerified(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusPaymentPending
	move.TokenAmount = decimal.NewFromInt(1239)
	movesRepo := &stubMovesRepo{move: move}
	repo := newStubPaymentsRepo()
	svc, _, _ := newTestService(t, repo, movesRepo)

	payment, err := svc.InitiateToken(context.Background(), InitiateTokenInput{
		MoveID: move.ID,
		UserID: move.UserID,
		Mode:   enums.PaymentModeUPI,
	})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentStatusVerified, payment.Status)

	require.Equal(t, enums.MoveStatusActive, movesRepo.updates["status"])
	require.Equal(t, enums.MovePaymentStatusTokenVerified, movesRepo.updates["payment_status"])
	require.Equal(t, true, movesRepo.updates["token_paid"])
	paid, ok := movesRepo.updates["amount_paid"].(decimal.Decimal)
	require.True(t, ok)
	require.True(t, paid.Equal(decimal.NewFromInt(1239)), "paid %s", paid)
}

func TestVerifyTokenApprove(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusPaymentUnderVerification
	move.PaymentStatus = enums.MovePaymentStatusUnderVerification
	move.TokenAmount = decimal.NewFromInt(1239)
	movesRepo := &stubMovesRepo{move: move}
	repo := newStubPaymentsRepo()
	svc, recorder, notifier := newTestService(t, repo, movesRepo)

	payment := &models.Payment{
		MoveID:      move.ID,
		UserID:      move.UserID,
		Amount:      decimal.NewFromInt(1239),
		Mode:        enums.PaymentModeBankTransfer,
		Status:      enums.PaymentStatusUnderVerification,
		PaymentType: enums.PaymentTypeToken,
	}
	_, err := repo.CreatePayment(context.Background(), payment)
	require.NoError(t, err)

	err = svc.VerifyToken(context.Background(), VerifyInput{
		PaymentID: payment.ID,
		AdminID:   uuid.New(),
		Approve:   true,
	})
	require.NoError(t, err)

	require.Equal(t, enums.MoveStatusActive, movesRepo.updates["status"])
	require.Equal(t, enums.MovePaymentStatusTokenVerified, movesRepo.updates["payment_status"])
	require.Equal(t, true, movesRepo.updates["token_paid"])
	paid, ok := movesRepo.updates["amount_paid"].(decimal.Decimal)
	require.True(t, ok)
	require.True(t, paid.Equal(decimal.NewFromInt(1239)), "paid %s", paid)

	require.Len(t, recorder.entries, 1)
	require.Equal(t, enums.ActivityTypePaymentVerified, recorder.entries[0].Type)
	require.Len(t, notifier.sent, 1)
	require.Equal(t, enums.NotificationTypePaymentVerified, notifier.sent[0].Type)
}

func TestVerifyTokenReject(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusPaymentUnderVerification
	move.PaymentStatus = enums.MovePaymentStatusUnderVerification
	movesRepo := &stubMovesRepo{move: move}
	repo := newStubPaymentsRepo()
	svc, _, notifier := newTestService(t, repo, movesRepo)

	payment := &models.Payment{
		MoveID:      move.ID,
		UserID:      move.UserID,
		Amount:      decimal.NewFromInt(1239),
		Mode:        enums.PaymentModeCash,
		Status:      enums.PaymentStatusUnderVerification,
		PaymentType: enums.PaymentTypeToken,
	}
	_, err := repo.CreatePayment(context.Background(), payment)
	require.NoError(t, err)

	err = svc.VerifyToken(context.Background(), VerifyInput{
		PaymentID: payment.ID,
		AdminID:   uuid.New(),
		Approve:   false,
	})
	require.NoError(t, err)

	require.Equal(t, enums.MoveStatusPaymentPending, movesRepo.updates["status"])
	require.Equal(t, enums.MovePaymentStatusFailed, movesRepo.updates["payment_status"])
	require.Len(t, notifier.sent, 1)
	require.Equal(t, enums.NotificationTypePaymentRejected, notifier.sent[0].Type)
}

func TestVerifyTokenRequiresTokenPayment(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusPaymentUnderVerification
	movesRepo := &stubMovesRepo{move: move}
	repo := newStubPaymentsRepo()
	svc, _, _ := newTestService(t, repo, movesRepo)

	payment := &models.Payment{
		MoveID:      move.ID,
		UserID:      move.UserID,
		Amount:      decimal.NewFromInt(5000),
		Mode:        enums.PaymentModeCash,
		Status:      enums.PaymentStatusUnderVerification,
		PaymentType: enums.PaymentTypeBalance,
	}
	_, err := repo.CreatePayment(context.Background(), payment)
	require.NoError(t, err)

	err = svc.VerifyToken(context.Background(), VerifyInput{
		PaymentID: payment.ID,
		AdminID:   uuid.New(),
		Approve:   true,
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestPayBalanceNoBalanceDue(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusActive
	move.PaymentStatus = enums.MovePaymentStatusTokenVerified
	move.AmountTotal = decimal.NewFromInt(12388)
	move.AmountPaid = decimal.NewFromInt(12388)
	movesRepo := &stubMovesRepo{move: move}
	svc, _, _ := newTestService(t, newStubPaymentsRepo(), movesRepo)

	_, err := svc.PayBalance(context.Background(), PayBalanceInput{
		MoveID: move.ID,
		UserID: move.UserID,
		Mode:   enums.PaymentModeBankTransfer,
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNoBalanceDue, pkgerrors.As(err).Code())
}

func TestPayBalanceUsesFinalAmount(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusActive
	move.PaymentStatus = enums.MovePaymentStatusTokenVerified
	move.AmountTotal = decimal.NewFromInt(12388)
	move.AmountPaid = decimal.NewFromInt(1239)
	final := decimal.NewFromInt(14000)
	move.FinalAmount = &final
	movesRepo := &stubMovesRepo{move: move}
	svc, _, _ := newTestService(t, newStubPaymentsRepo(), movesRepo)

	payment, err := svc.PayBalance(context.Background(), PayBalanceInput{
		MoveID: move.ID,
		UserID: move.UserID,
		Mode:   enums.PaymentModeBankTransfer,
	})
	require.NoError(t, err)
	require.True(t, payment.Amount.Equal(decimal.NewFromInt(12761)), "amount %s", payment.Amount)
	require.Equal(t, enums.MoveStatusPaymentUnderVerification, movesRepo.updates["status"])
}

func TestPayOnlinePartial(t *testing.T) {
	move := pendingMove()
	move.Status = enums.MoveStatusActive
	move.PaymentStatus = enums.MovePaymentStatusTokenVerified
	move.TokenPaid = true
	move.AmountTotal = decimal.NewFromInt(12388)
	move.AmountPaid = decimal.NewFromInt(1239)
	movesRepo := &stubMovesRepo{move: move}
	svc, _, _ := newTestService(t, newStubPaymentsRepo(), movesRepo)

	_, err := svc.PayOnline(context.Background(), PayOnlineInput{
		MoveID: move.ID,
		UserID: move.UserID,
		Amount: decimal.NewFromInt(5000),
		Mode:   enums.PaymentModeUPI,
	})
	require.NoError(t, err)
	require.Equal(t, enums.MovePaymentStatusPartial, movesRepo.updates["payment_status"])
	_, statusChanged := movesRepo.updates["status"]
	require.False(t, statusChanged)
}

func TestMarkCashReceived(t *testing.T) {
	agentID := uuid.New()
	move := pendingMove()
	move.Status = enums.MoveStatusActive
	move.PaymentStatus = enums.MovePaymentStatusTokenVerified
	move.AgentID = &agentID
	move.TokenPaid = true
	move.AmountPaid = decimal.NewFromInt(1239)
	movesRepo := &stubMovesRepo{move: move}
	repo := newStubPaymentsRepo()
	repo.quote = &models.AgentQuote{
		MoveID: move.ID,
		Total:  decimal.NewFromInt(14000),
	}
	svc, _, notifier := newTestService(t, repo, movesRepo)

	// Off by more than a rupee.
	_, err := svc.MarkCashReceived(context.Background(), MarkCashInput{
		MoveID:  move.ID,
		AgentID: agentID,
		Amount:  decimal.NewFromInt(12000),
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	payment, err := svc.MarkCashReceived(context.Background(), MarkCashInput{
		MoveID:  move.ID,
		AgentID: agentID,
		Amount:  decimal.NewFromInt(12761),
	})
	require.NoError(t, err)
	require.Equal(t, enums.PaymentStatusVerified, payment.Status)
	require.Equal(t, enums.MoveStatusInProgress, movesRepo.updates["status"])
	require.Equal(t, enums.MovePaymentStatusFullyPaid, movesRepo.updates["payment_status"])
	require.Len(t, notifier.sent, 1)
	require.Equal(t, move.UserID, notifier.sent[0].UserID)
}

func TestMarkCashRequiresAssignedAgent(t *testing.T) {
	agentID := uuid.New()
	move := pendingMove()
	move.Status = enums.MoveStatusActive
	move.AgentID = &agentID
	movesRepo := &stubMovesRepo{move: move}
	svc, _, _ := newTestService(t, newStubPaymentsRepo(), movesRepo)

	_, err := svc.MarkCashReceived(context.Background(), MarkCashInput{
		MoveID:  move.ID,
		AgentID: uuid.New(),
		Amount:  decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}
