package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/mansionmuse/backend/internal/config"
	"github.com/mansionmuse/backend/internal/dtos"
	"github.com/mansionmuse/backend/internal/middleware"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

// BillingService handles plan purchases through Razorpay: order creation,
// payment signature verification and plan activation.
type BillingService struct {
	cfg       *config.Config
	client    *razorpay.Client
	planRepo  repositories.PlanRepository
	ownerRepo repositories.OwnerRepository
	txnRepo   repositories.TransactionRepository
	planGate  *middleware.PlanGate
	email     *EmailService
}

func NewBillingService(
	cfg *config.Config,
	planRepo repositories.PlanRepository,
	ownerRepo repositories.OwnerRepository,
	txnRepo repositories.TransactionRepository,
	planGate *middleware.PlanGate,
	email *EmailService,
) *BillingService {
	return &BillingService{
		cfg:       cfg,
		client:    razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		planRepo:  planRepo,
		ownerRepo: ownerRepo,
		txnRepo:   txnRepo,
		planGate:  planGate,
		email:     email,
	}
}

// CreateOrder opens a gateway order for one month of the given plan and
// records a pending transaction against it.
func (s *BillingService) CreateOrder(ctx context.Context, ownerID uuid.UUID, req dtos.CreateOrderRequest) (*dtos.CreateOrderResponse, error) {
	plan, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodePlanInactive,
			Message:    "This plan is not available for purchase",
		}
	}

	// Razorpay amounts are in the smallest currency unit (paise).
	amountPaise := int64(plan.PriceMonthly * 100)
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  fmt.Sprintf("plan-%s-%s", plan.Name, ownerID),
	}
	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		utils.Logger.WithError(err).Error("Razorpay order creation failed")
		return nil, fmt.Errorf("%w: razorpay order create: %v", utils.ErrExternalServiceFailure, err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("%w: razorpay order response missing id", utils.ErrExternalServiceFailure)
	}

	txn := &models.Transaction{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		PlanName:       plan.Name,
		Amount:         plan.PriceMonthly,
		Currency:       "INR",
		Status:         models.TransactionPending,
		Method:         "Razorpay",
		GatewayOrderID: orderID,
		Description:    fmt.Sprintf("Monthly subscription: %s", plan.Name),
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, err
	}

	return &dtos.CreateOrderResponse{
		OrderID:  orderID,
		Amount:   plan.PriceMonthly,
		Currency: "INR",
		PlanName: plan.Name,
	}, nil
}

// VerifyPayment checks the gateway signature and, when valid, marks the
// transaction completed and activates the purchased plan on the owner.
func (s *BillingService) VerifyPayment(ctx context.Context, ownerID uuid.UUID, req dtos.VerifyPaymentRequest) (*dtos.VerifyPaymentResponse, error) {
	txn, err := s.txnRepo.GetByGatewayOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if txn.OwnerID != ownerID {
		return nil, utils.ErrNotFound
	}

	if !verifyRazorpaySignature(req.OrderID, req.PaymentID, req.Signature, s.cfg.RazorpayKeySecret) {
		_ = s.txnRepo.UpdateStatus(ctx, txn.ID, models.TransactionFailed, req.PaymentID)
		return &dtos.VerifyPaymentResponse{
			Verified: false,
			Message:  "Payment signature verification failed",
		}, nil
	}

	if err := s.txnRepo.UpdateStatus(ctx, txn.ID, models.TransactionCompleted, req.PaymentID); err != nil {
		return nil, err
	}

	plan, err := s.planRepo.GetByName(ctx, txn.PlanName)
	if err != nil {
		return nil, err
	}
	if err := s.ownerRepo.SetPlan(ctx, ownerID, plan.ID, plan.Name, time.Now()); err != nil {
		return nil, err
	}
	s.planGate.Invalidate(ownerID.String())

	if owner, oErr := s.ownerRepo.GetByID(ctx, ownerID); oErr == nil {
		s.email.SendPlanActivated(owner, plan.Name)
	}

	return &dtos.VerifyPaymentResponse{
		Verified: true,
		PlanName: plan.Name,
		Message:  "Payment verified and plan activated",
	}, nil
}

func (s *BillingService) ListTransactions(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*models.Transaction, int, error) {
	f := repositories.TransactionFilter{OwnerID: &ownerID}
	return s.txnRepo.List(ctx, f, limit, (page-1)*limit)
}

// verifyRazorpaySignature checks the HMAC-SHA256 of "orderID|paymentID"
// against the signature the gateway returned to the client.
func verifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
