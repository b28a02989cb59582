// Package rentalsvc is the checkout/return engine: it validates requests,
// delegates the atomic accounting to the rental repository's transactional
// commands and shapes the reporting views.
package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	rentalrepo "equiprental/repository/rental"
	"equiprental/util/apperr"
)

// Stable machine codes surfaced to controllers.
const (
	CodeNoStock       = "NO_STOCK"
	CodeItemNotFound  = "ITEM_NOT_FOUND"
	CodeNotFound      = "RENTAL_NOT_FOUND"
	CodeNotOwner      = "NOT_OWNER"
	CodeNotActive     = "NOT_ACTIVE"
	CodeStaleRevision = "STALE_REVISION"
	CodeBadQty        = "BAD_QTY"
	CodePastDueDate   = "PAST_DUE_DATE"
	CodeProofRequired = "PROOF_REQUIRED"
	CodeEmptyCart     = "EMPTY_CART"
	CodePartial       = "CHECKOUT_PARTIAL"
)

// CheckoutLine is one cart line.
type CheckoutLine struct {
	ItemID  int64
	Qty     int64
	DueDate time.Time
}

// LineResult reports one cart line's outcome. Lines fail or succeed on their
// own; one failure never rolls back or blocks the others.
type LineResult struct {
	ItemID   int64  `json:"item_id"`
	RentalID int64  `json:"rental_id,omitempty"`
	OK       bool   `json:"ok"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ReturnReq is a holder's return submission. Revision 0 skips the optimistic
// check; a non-zero value must match the record as last read.
type ReturnReq struct {
	ReturnQty int64
	BrokenQty int64
	ProofURL  string
	Revision  int64
}

// ActiveRental decorates a ledger view with due-date bookkeeping. DDay is
// days until due, negative once overdue (date-only comparison).
type ActiveRental struct {
	rentalrepo.View
	Overdue bool  `json:"overdue"`
	DDay    int64 `json:"d_day"`
}

// HolderGroup is the manager's per-holder rollup.
type HolderGroup struct {
	HolderID   int64          `json:"holder_id"`
	HolderName string         `json:"holder_name"`
	Rentals    []ActiveRental `json:"rentals"`
}

type Repo interface {
	CreateCheckout(ctx context.Context, userID, itemID, qty int64, due time.Time) (int64, error)
	ProcessReturn(ctx context.Context, p rentalrepo.ReturnParams) error
	ListActiveByUser(ctx context.Context, userID int64) ([]rentalrepo.View, error)
	ListActive(ctx context.Context) ([]rentalrepo.View, error)
	ListBrokenHistory(ctx context.Context) ([]rentalrepo.View, error)
}

type Service interface {
	Checkout(ctx context.Context, userID int64, line CheckoutLine) (int64, error)
	CheckoutBatch(ctx context.Context, userID int64, lines []CheckoutLine) ([]LineResult, error)
	Return(ctx context.Context, holderID, rentalID int64, req ReturnReq) error
	ForceReturn(ctx context.Context, rentalID int64, loss bool) error

	MyRentals(ctx context.Context, userID int64) ([]ActiveRental, error)
	ActiveRentals(ctx context.Context) ([]ActiveRental, error)
	ByHolder(ctx context.Context) ([]HolderGroup, error)
	BrokenHistory(ctx context.Context) ([]rentalrepo.View, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

// NewWithClock pins the clock, for tests.
func NewWithClock(r Repo, now func() time.Time) Service { return &service{r: r, now: now} }

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) today() time.Time { return dateOnly(s.now()) }

func (s *service) Checkout(ctx context.Context, userID int64, line CheckoutLine) (int64, error) {
	if line.Qty < 1 {
		return 0, apperr.New(apperr.KindValidation, CodeBadQty, "quantity must be at least 1")
	}
	if dateOnly(line.DueDate).Before(s.today()) {
		return 0, apperr.New(apperr.KindValidation, CodePastDueDate, "due date cannot be in the past")
	}

	id, err := s.r.CreateCheckout(ctx, userID, line.ItemID, line.Qty, dateOnly(line.DueDate))
	if err != nil {
		switch {
		case errors.Is(err, rentalrepo.ErrNoStock):
			return 0, apperr.New(apperr.KindConflict, CodeNoStock, "not enough available stock")
		case errors.Is(err, rentalrepo.ErrItemNotFound):
			return 0, apperr.New(apperr.KindNotFound, CodeItemNotFound, "item not found")
		default:
			return 0, err
		}
	}
	return id, nil
}

// CheckoutBatch runs every cart line as its own checkout. The returned error
// is nil only when every line succeeded; a mixed outcome is a Partial error
// and the caller reports per-line results either way.
func (s *service) CheckoutBatch(ctx context.Context, userID int64, lines []CheckoutLine) ([]LineResult, error) {
	if len(lines) == 0 {
		return nil, apperr.New(apperr.KindValidation, CodeEmptyCart, "cart is empty")
	}

	results := make([]LineResult, 0, len(lines))
	failed := 0
	for _, line := range lines {
		res := LineResult{ItemID: line.ItemID}
		id, err := s.Checkout(ctx, userID, line)
		if err != nil {
			failed++
			res.Code = apperr.CodeOf(err)
			res.Message = err.Error()
		} else {
			res.OK = true
			res.RentalID = id
		}
		results = append(results, res)
	}

	if failed > 0 {
		return results, apperr.New(apperr.KindPartial, CodePartial,
			fmt.Sprintf("%d of %d lines failed", failed, len(lines)))
	}
	return results, nil
}

func (s *service) Return(ctx context.Context, holderID, rentalID int64, req ReturnReq) error {
	if req.ReturnQty < 1 {
		return apperr.New(apperr.KindValidation, CodeBadQty, "return quantity must be at least 1")
	}
	if req.BrokenQty < 0 || req.BrokenQty > req.ReturnQty {
		return apperr.New(apperr.KindValidation, CodeBadQty, "broken quantity cannot exceed returned quantity")
	}
	if req.ProofURL == "" {
		return apperr.New(apperr.KindValidation, CodeProofRequired, "proof of return is required")
	}

	return s.mapReturnErr(s.r.ProcessReturn(ctx, rentalrepo.ReturnParams{
		RentalID:  rentalID,
		ReturnQty: req.ReturnQty,
		BrokenQty: req.BrokenQty,
		Proof:     req.ProofURL,
		HolderID:  holderID,
		Revision:  req.Revision,
	}))
}

// ForceReturn is the manager path: the full outstanding quantity comes back,
// either intact or declared a total loss. There is no partial forced return.
func (s *service) ForceReturn(ctx context.Context, rentalID int64, loss bool) error {
	proof := "forced return by manager (ok)"
	if loss {
		proof = "forced return by manager (loss)"
	}
	return s.mapReturnErr(s.r.ProcessReturn(ctx, rentalrepo.ReturnParams{
		RentalID:  rentalID,
		ReturnAll: true,
		BrokenAll: loss,
		Proof:     proof,
	}))
}

func (s *service) mapReturnErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return apperr.New(apperr.KindNotFound, CodeNotFound, "rental not found")
	case errors.Is(err, rentalrepo.ErrNotActive):
		return apperr.New(apperr.KindConflict, CodeNotActive, "rental is not active")
	case errors.Is(err, rentalrepo.ErrNotOwner):
		return apperr.New(apperr.KindForbidden, CodeNotOwner, "rental held by someone else")
	case errors.Is(err, rentalrepo.ErrStaleRevision):
		return apperr.New(apperr.KindConflict, CodeStaleRevision, "rental changed, reload and retry")
	case errors.Is(err, rentalrepo.ErrQtyExceeds):
		return apperr.New(apperr.KindValidation, CodeBadQty, "return exceeds outstanding quantity")
	default:
		return err
	}
}

func (s *service) MyRentals(ctx context.Context, userID int64) ([]ActiveRental, error) {
	views, err := s.r.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(views), nil
}

func (s *service) ActiveRentals(ctx context.Context) ([]ActiveRental, error) {
	views, err := s.r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.annotate(views), nil
}

// ByHolder groups the active ledger by holder, preserving the due-date order
// inside each group. Group order follows first appearance.
func (s *service) ByHolder(ctx context.Context) ([]HolderGroup, error) {
	active, err := s.ActiveRentals(ctx)
	if err != nil {
		return nil, err
	}

	idx := make(map[int64]int)
	var groups []HolderGroup
	for _, r := range active {
		i, ok := idx[r.HolderID]
		if !ok {
			i = len(groups)
			idx[r.HolderID] = i
			groups = append(groups, HolderGroup{HolderID: r.HolderID, HolderName: r.HolderName})
		}
		groups[i].Rentals = append(groups[i].Rentals, r)
	}
	return groups, nil
}

func (s *service) BrokenHistory(ctx context.Context) ([]rentalrepo.View, error) {
	return s.r.ListBrokenHistory(ctx)
}

func (s *service) annotate(views []rentalrepo.View) []ActiveRental {
	today := s.today()
	out := make([]ActiveRental, 0, len(views))
	for _, v := range views {
		due := dateOnly(v.DueDate)
		dday := int64(due.Sub(today).Hours() / 24)
		out = append(out, ActiveRental{
			View:    v,
			Overdue: due.Before(today),
			DDay:    dday,
		})
	}
	return out
}
