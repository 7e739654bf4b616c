package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	couponserrors "slotbook/internal/coupons/errors"
	"slotbook/internal/coupons/pricing"
	"slotbook/internal/coupons/repository"
	"slotbook/internal/coupons/validator"
	"slotbook/pkg/config"
	apperrors "slotbook/pkg/errors"
	"slotbook/pkg/model"
	"slotbook/pkg/sanitizer"
	"slotbook/pkg/timefmt"
)

// LookupResult is either a rejection tag or the coupon's wire view. Tags
// are payload, not errors; unknown codes answer 200 with "wrong".
type LookupResult struct {
	Tag    string            `json:"error_tag,omitempty"`
	Coupon *model.CouponView `json:"coupon,omitempty"`
}

// QuoteResult carries the resolved coupon and the discount it yields
// against the booking in the request.
type QuoteResult struct {
	Tag        string        `json:"error_tag,omitempty"`
	Coupon     *pricing.Data `json:"coupon,omitempty"`
	Discount   int64         `json:"discount"`
	FinalPrice int64         `json:"final_price"`
}

// RedeemResult reports the consumed uses and what is left afterwards,
// "None" when the coupon has no quantity limit.
type RedeemResult struct {
	Tag       string `json:"error_tag,omitempty"`
	Uses      int    `json:"uses,omitempty"`
	Remaining string `json:"remaining,omitempty"`
}

type CouponService interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Coupon, int64, error)
	Lookup(ctx context.Context, req *model.CouponLookupRequest) (*LookupResult, error)
	Quote(ctx context.Context, req *model.CouponQuoteRequest) (*QuoteResult, error)
	Redeem(ctx context.Context, req *model.CouponRedeemRequest) (*RedeemResult, error)
}

type couponService struct {
	repo      repository.CouponRepository
	validator *validator.CouponValidator
	cfg       *config.Config
}

func NewCouponService(
	repo repository.CouponRepository,
	validator *validator.CouponValidator,
	cfg *config.Config,
) CouponService {
	return &couponService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *couponService) Create(ctx context.Context, coupon *model.Coupon) error {
	coupon.Code = sanitizer.NormalizeCouponCode(coupon.Code)
	if err := s.validator.ValidateCoupon(coupon); err != nil {
		return validationError(err)
	}

	if err := s.repo.Create(ctx, coupon); err != nil {
		if errors.Is(err, couponserrors.ErrDuplicateCode) {
			return apperrors.Conflict("Coupon code already exists for this owner")
		}
		s.cfg.Log.Error("Failed to create coupon", "code", coupon.Code, "error", err)
		return apperrors.Internal("Failed to create coupon", err)
	}

	s.cfg.Log.Info("Coupon created successfully", "id", coupon.ID, "code", coupon.Code, "type", coupon.Type)
	return nil
}

func (s *couponService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Coupon, int64, error) {
	var count int64
	var coupons []*model.Coupon
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count coupons", "error", errCount)
			errCount = apperrors.Internal("Failed to count coupons", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		coupons, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list coupons", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve coupons", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return coupons, count, nil
}

func (s *couponService) Lookup(ctx context.Context, req *model.CouponLookupRequest) (*LookupResult, error) {
	if err := s.validator.ValidateLookup(req); err != nil {
		return nil, validationError(err)
	}

	coupon, tag, err := s.resolve(ctx, req.OwnerCode, req.Code, req.Phone)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		return &LookupResult{Tag: tag}, nil
	}

	view := coupon.View()
	return &LookupResult{Coupon: &view}, nil
}

func (s *couponService) Quote(ctx context.Context, req *model.CouponQuoteRequest) (*QuoteResult, error) {
	if err := s.validator.ValidateQuote(req); err != nil {
		return nil, validationError(err)
	}

	coupon, tag, err := s.resolve(ctx, req.OwnerCode, req.Code, req.Phone)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		return &QuoteResult{Tag: tag}, nil
	}

	couponType, _ := pricing.TypeFromWire(coupon.Type)

	mode := req.Mode
	if mode == "" {
		mode = pricing.ModeRoom
	}
	if !pricing.AllowedInMode(couponType, mode) {
		return &QuoteResult{Tag: pricing.TagModeRestricted}, nil
	}

	if coupon.Duration != nil && coupon.Duration.Start != "" {
		start, end, err := s.bookingRange(req)
		if err != nil {
			return nil, err
		}
		if !pricing.WithinDuration(start, end, coupon.Duration, s.cfg.Formats) {
			return &QuoteResult{Tag: pricing.TagNotAvailable}, nil
		}
	}

	data := pricing.Process(*coupon, req.TotalPrice, req.BookedUnit)
	if req.CouponUse != nil {
		data.CouponUse = clampUse(*req.CouponUse, data.MaxUse)
	}

	discount := pricing.Discount(data.Type, data.Params, data.CouponUse, req.TotalPrice, req.PriceList, req.BookedUnit)
	final := req.TotalPrice - discount
	if final < 0 {
		final = 0
	}

	return &QuoteResult{
		Coupon:     &data,
		Discount:   discount,
		FinalPrice: final,
	}, nil
}

func (s *couponService) Redeem(ctx context.Context, req *model.CouponRedeemRequest) (*RedeemResult, error) {
	if err := s.validator.ValidateRedeem(req); err != nil {
		return nil, validationError(err)
	}

	phone := sanitizer.NormalizePhone(req.Phone)

	var result *RedeemResult
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		coupon, tag, err := s.resolve(sessCtx, req.OwnerCode, req.Code, req.Phone)
		if err != nil {
			return err
		}
		if tag != "" {
			result = &RedeemResult{Tag: tag}
			return nil
		}

		remaining := model.None
		if coupon.Quantity != model.None {
			quantity, _ := strconv.Atoi(coupon.Quantity)
			left := int64(quantity) - coupon.UsedCount
			if int64(req.Uses) > left {
				result = &RedeemResult{Tag: pricing.TagLimited}
				return nil
			}
			remaining = strconv.FormatInt(left-int64(req.Uses), 10)
		}

		if err := s.repo.IncrementUsage(sessCtx, coupon.ID, req.Uses); err != nil {
			return apperrors.Internal("Failed to consume coupon uses", err)
		}
		if err := s.repo.RecordRedemption(sessCtx, &model.CouponRedemption{
			CouponID: coupon.ID,
			Code:     coupon.Code,
			Phone:    phone,
			Uses:     req.Uses,
		}); err != nil {
			return apperrors.Internal("Failed to record redemption", err)
		}

		result = &RedeemResult{Uses: req.Uses, Remaining: remaining}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to redeem coupon", "code", req.Code, "error", err)
		return nil, err
	}

	if result.Tag == "" {
		s.cfg.Log.Info("Coupon redeemed", "code", req.Code, "uses", result.Uses, "remaining", result.Remaining)
	}
	return result, nil
}

// resolve loads a coupon and classifies every reason it cannot be offered.
// An empty tag means the coupon is usable as far as the lookup can tell;
// booking-dependent checks happen in Quote.
func (s *couponService) resolve(ctx context.Context, ownerCode, code, phone string) (*model.Coupon, string, error) {
	code = sanitizer.NormalizeCouponCode(code)
	phone = sanitizer.NormalizePhone(phone)

	coupon, err := s.repo.FindByCode(ctx, ownerCode, code)
	if err != nil {
		if errors.Is(err, couponserrors.ErrNotFound) {
			return nil, pricing.TagWrong, nil
		}
		s.cfg.Log.Error("Failed to look up coupon", "code", code, "error", err)
		return nil, "", apperrors.Internal("Failed to look up coupon", err)
	}

	if coupon.Blocked {
		return nil, pricing.TagBlocked, nil
	}
	if coupon.Phone == "1" && phone == "" {
		return nil, pricing.TagNoPhone, nil
	}
	if coupon.Quantity != model.None {
		quantity, err := strconv.Atoi(coupon.Quantity)
		if err != nil || coupon.UsedCount >= int64(quantity) {
			return nil, pricing.TagLimited, nil
		}
	}
	if coupon.Repeatable != "1" && phone != "" {
		redeemed, err := s.repo.HasRedemption(ctx, coupon.ID, phone)
		if err != nil {
			s.cfg.Log.Error("Failed to check redemptions", "code", code, "error", err)
			return nil, "", apperrors.Internal("Failed to check redemptions", err)
		}
		if redeemed {
			return nil, pricing.TagUsed, nil
		}
	}

	return coupon, "", nil
}

func (s *couponService) bookingRange(req *model.CouponQuoteRequest) (time.Time, time.Time, error) {
	start, err := s.cfg.Formats.ParseAt(req.Date, req.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("invalid booking start time")
	}
	end, err := s.cfg.Formats.ParseAt(req.Date, req.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("invalid booking end time")
	}
	return start, timefmt.RollMidnight(start, end), nil
}

func clampUse(use, maxUse int) int {
	if use < 1 {
		return 1
	}
	if use > maxUse {
		return maxUse
	}
	return use
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]any, len(validationErrs))
		for _, v := range validationErrs {
			details[v.Field] = v.Message
		}
		return apperrors.Validation("Validation failed", details)
	}
	return apperrors.Validation(err.Error(), nil)
}
