package service

import (
	"context"
	"errors"
	"testing"

	couponserrors "slotbook/internal/coupons/errors"
	"slotbook/internal/coupons/pricing"
	"slotbook/internal/coupons/validator"
	"slotbook/pkg/config"
	mongotx "slotbook/pkg/db/mongo"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/locale"
	"slotbook/pkg/logger"
	"slotbook/pkg/model"
	"slotbook/pkg/timefmt"
)

type mockCouponRepository struct {
	createFn           func(ctx context.Context, coupon *model.Coupon) error
	findByIDFn         func(ctx context.Context, id string) (*model.Coupon, error)
	findByCodeFn       func(ctx context.Context, ownerCode, code string) (*model.Coupon, error)
	findAllFn          func(ctx context.Context, limit int, offset int64) ([]*model.Coupon, error)
	countFn            func(ctx context.Context) (int64, error)
	incrementUsageFn   func(ctx context.Context, id string, uses int) error
	hasRedemptionFn    func(ctx context.Context, couponID, phone string) (bool, error)
	recordRedemptionFn func(ctx context.Context, redemption *model.CouponRedemption) error
}

func (m *mockCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	if m.createFn != nil {
		return m.createFn(ctx, coupon)
	}
	return nil
}

func (m *mockCouponRepository) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, couponserrors.ErrNotFound
}

func (m *mockCouponRepository) FindByCode(ctx context.Context, ownerCode, code string) (*model.Coupon, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, ownerCode, code)
	}
	return nil, couponserrors.ErrNotFound
}

func (m *mockCouponRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Coupon, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockCouponRepository) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockCouponRepository) IncrementUsage(ctx context.Context, id string, uses int) error {
	if m.incrementUsageFn != nil {
		return m.incrementUsageFn(ctx, id, uses)
	}
	return nil
}

func (m *mockCouponRepository) HasRedemption(ctx context.Context, couponID, phone string) (bool, error) {
	if m.hasRedemptionFn != nil {
		return m.hasRedemptionFn(ctx, couponID, phone)
	}
	return false, nil
}

func (m *mockCouponRepository) RecordRedemption(ctx context.Context, redemption *model.CouponRedemption) error {
	if m.recordRedemptionFn != nil {
		return m.recordRedemptionFn(ctx, redemption)
	}
	return nil
}

func (m *mockCouponRepository) ExecuteTransaction(_ context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func testConfig() *config.Config {
	return &config.Config{
		Formats: timefmt.Default(),
		Labels:  locale.For("en"),
		Log:     logger.New(logger.Config{Level: "error", Format: logger.Text}),
	}
}

func newCouponService(repo *mockCouponRepository, cfg *config.Config) CouponService {
	return NewCouponService(repo, validator.NewCouponValidator(cfg.Formats, cfg.Log), cfg)
}

func storedCoupon() *model.Coupon {
	return &model.Coupon{
		ID:         "65f000000000000000000001",
		Code:       "SPRING",
		OwnerCode:  "owner-1",
		Type:       "1",
		Content:    "85",
		Quantity:   "5",
		Repeatable: "0",
		Phone:      "0",
	}
}

func lookupRequest() *model.CouponLookupRequest {
	return &model.CouponLookupRequest{
		Code:      "SPRING",
		OwnerCode: "owner-1",
		RoomID:    "room-1",
	}
}

func TestLookupWrongCode(t *testing.T) {
	svc := newCouponService(&mockCouponRepository{}, testConfig())

	result, err := svc.Lookup(context.Background(), lookupRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != pricing.TagWrong || result.Coupon != nil {
		t.Errorf("expected the wrong tag for an unknown code, got %+v", result)
	}
}

func TestLookupNormalizesCode(t *testing.T) {
	var seenCode string
	repo := &mockCouponRepository{
		findByCodeFn: func(_ context.Context, ownerCode, code string) (*model.Coupon, error) {
			seenCode = code
			return storedCoupon(), nil
		},
	}
	svc := newCouponService(repo, testConfig())

	req := lookupRequest()
	req.Code = "  spr-ing  "
	if _, err := svc.Lookup(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seenCode != "SPRING" {
		t.Errorf("expected the code normalized before lookup, got %q", seenCode)
	}
}

func TestLookupRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *model.Coupon)
		phone   string
		wantTag string
	}{
		{"blocked", func(c *model.Coupon) { c.Blocked = true }, "", pricing.TagBlocked},
		{"phone bound without phone", func(c *model.Coupon) { c.Phone = "1" }, "", pricing.TagNoPhone},
		{"quantity exhausted", func(c *model.Coupon) { c.UsedCount = 5 }, "", pricing.TagLimited},
		{"unparseable quantity", func(c *model.Coupon) { c.Quantity = "abc" }, "", pricing.TagLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := storedCoupon()
			tt.mutate(coupon)
			repo := &mockCouponRepository{
				findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
					return coupon, nil
				},
			}
			svc := newCouponService(repo, testConfig())

			req := lookupRequest()
			req.Phone = tt.phone
			result, err := svc.Lookup(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Tag != tt.wantTag {
				t.Errorf("expected tag %q, got %q", tt.wantTag, result.Tag)
			}
		})
	}
}

func TestLookupUsedByPhone(t *testing.T) {
	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return storedCoupon(), nil
		},
		hasRedemptionFn: func(_ context.Context, couponID, phone string) (bool, error) {
			return true, nil
		},
	}
	svc := newCouponService(repo, testConfig())

	req := lookupRequest()
	req.Phone = "0912345678"
	result, err := svc.Lookup(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != pricing.TagUsed {
		t.Errorf("expected the used tag for a redeemed single-use coupon, got %q", result.Tag)
	}
}

func TestLookupReturnsWireView(t *testing.T) {
	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return storedCoupon(), nil
		},
	}
	svc := newCouponService(repo, testConfig())

	result, err := svc.Lookup(context.Background(), lookupRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != "" || result.Coupon == nil {
		t.Fatalf("expected a coupon view, got %+v", result)
	}
	if result.Coupon.Type != "1" || result.Coupon.Content != "85" {
		t.Errorf("unexpected view %+v", result.Coupon)
	}
	if string(result.Coupon.Duration) != `"None"` {
		t.Errorf("expected an absent duration rendered as None, got %s", result.Coupon.Duration)
	}
}

func quoteRequest() *model.CouponQuoteRequest {
	return &model.CouponQuoteRequest{
		CouponLookupRequest: *lookupRequest(),
		Date:                "2026-03-14",
		StartTime:           "10:00",
		EndTime:             "12:00",
		TotalPrice:          1000,
	}
}

func TestQuotePercentageDiscount(t *testing.T) {
	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return storedCoupon(), nil
		},
	}
	svc := newCouponService(repo, testConfig())

	result, err := svc.Quote(context.Background(), quoteRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != "" {
		t.Fatalf("expected no rejection, got %q", result.Tag)
	}
	if result.Discount != 150 || result.FinalPrice != 850 {
		t.Errorf("expected discount 150 and final 850, got %d and %d", result.Discount, result.FinalPrice)
	}
}

func TestQuoteReduceHours(t *testing.T) {
	coupon := storedCoupon()
	coupon.Type = "3"
	coupon.Content = "10"
	coupon.Repeatable = "1"
	coupon.Quantity = model.None

	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return coupon, nil
		},
	}
	svc := newCouponService(repo, testConfig())

	req := quoteRequest()
	req.TotalPrice = 1200
	req.BookedUnit = 5
	req.PriceList = []model.PriceListItem{
		{Price: 300, Unit: 2, Total: 600},
		{Price: 200, Unit: 3, Total: 600},
	}
	use := 3
	req.CouponUse = &use

	result, err := svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Coupon.CouponUse != 3 {
		t.Errorf("expected 3 applied uses, got %d", result.Coupon.CouponUse)
	}
	if result.Discount != 600 || result.FinalPrice != 600 {
		t.Errorf("expected discount 600 and final 600, got %d and %d", result.Discount, result.FinalPrice)
	}
}

func TestQuoteModeRestricted(t *testing.T) {
	coupon := storedCoupon()
	coupon.Type = "3"
	coupon.Content = "10"

	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return coupon, nil
		},
	}
	svc := newCouponService(repo, testConfig())

	req := quoteRequest()
	req.Mode = pricing.ModeSeat
	result, err := svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != pricing.TagModeRestricted {
		t.Errorf("expected the mode restriction tag, got %q", result.Tag)
	}
}

func TestQuoteOutsideDuration(t *testing.T) {
	coupon := storedCoupon()
	coupon.Duration = &model.CouponDuration{Start: "09:00", End: "18:00"}

	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return coupon, nil
		},
	}
	svc := newCouponService(repo, testConfig())

	req := quoteRequest()
	req.StartTime = "20:00"
	req.EndTime = "22:00"
	result, err := svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != pricing.TagNotAvailable {
		t.Errorf("expected the not-available tag outside the window, got %q", result.Tag)
	}
}

func TestQuoteCouponUseClamped(t *testing.T) {
	coupon := storedCoupon()
	coupon.Type = "2"
	coupon.Content = "300"
	coupon.Repeatable = "1"

	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return coupon, nil
		},
	}
	svc := newCouponService(repo, testConfig())

	req := quoteRequest()
	use := 99
	req.CouponUse = &use

	result, err := svc.Quote(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// ceil(1000/300) = 4 uses cover the total
	if result.Coupon.CouponUse != 4 {
		t.Errorf("expected the requested uses clamped to 4, got %d", result.Coupon.CouponUse)
	}
	if result.FinalPrice != 0 {
		t.Errorf("expected the final price floored at zero, got %d", result.FinalPrice)
	}
}

func TestRedeem(t *testing.T) {
	coupon := storedCoupon()
	coupon.UsedCount = 1

	var incremented int
	var recorded *model.CouponRedemption
	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return coupon, nil
		},
		incrementUsageFn: func(_ context.Context, id string, uses int) error {
			incremented = uses
			return nil
		},
		recordRedemptionFn: func(_ context.Context, r *model.CouponRedemption) error {
			recorded = r
			return nil
		},
	}
	svc := newCouponService(repo, testConfig())

	result, err := svc.Redeem(context.Background(), &model.CouponRedeemRequest{
		Code:      "SPRING",
		OwnerCode: "owner-1",
		Uses:      2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != "" {
		t.Fatalf("expected no rejection, got %q", result.Tag)
	}
	if result.Uses != 2 || result.Remaining != "2" {
		t.Errorf("expected 2 uses leaving 2, got %+v", result)
	}
	if incremented != 2 || recorded == nil || recorded.CouponID != coupon.ID {
		t.Errorf("expected usage incremented and redemption recorded")
	}
}

func TestRedeemOverRemaining(t *testing.T) {
	coupon := storedCoupon()
	coupon.UsedCount = 4

	repo := &mockCouponRepository{
		findByCodeFn: func(context.Context, string, string) (*model.Coupon, error) {
			return coupon, nil
		},
	}
	svc := newCouponService(repo, testConfig())

	result, err := svc.Redeem(context.Background(), &model.CouponRedeemRequest{
		Code:      "SPRING",
		OwnerCode: "owner-1",
		Uses:      2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tag != pricing.TagLimited {
		t.Errorf("expected the limited tag, got %q", result.Tag)
	}
}

func TestCreateCoupon(t *testing.T) {
	repo := &mockCouponRepository{}
	svc := newCouponService(repo, testConfig())

	coupon := &model.Coupon{
		Code:       " spring ",
		OwnerCode:  "owner-1",
		Type:       "1",
		Content:    "85",
		Quantity:   "5",
		Repeatable: "0",
		Phone:      "0",
	}
	if err := svc.Create(context.Background(), coupon); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coupon.Code != "SPRING" {
		t.Errorf("expected the code normalized, got %q", coupon.Code)
	}
}

func TestCreateCouponDuplicate(t *testing.T) {
	repo := &mockCouponRepository{
		createFn: func(context.Context, *model.Coupon) error {
			return couponserrors.ErrDuplicateCode
		},
	}
	svc := newCouponService(repo, testConfig())

	err := svc.Create(context.Background(), storedCoupon())
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected a conflict, got %v", err)
	}
}
