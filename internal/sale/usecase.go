package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/fekuna/omnipos-booth-service/internal/sale/dto"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCommitInProgress = errors.New("a checkout for this session is already in progress")
)

// Policy decides what a failed line does to the lines before it.
type Policy string

const (
	// PolicyAtomic commits every line in one transaction or none of them.
	PolicyAtomic Policy = "atomic"
	// PolicySequential commits line by line and stops at the first failure;
	// earlier lines stay recorded.
	PolicySequential Policy = "sequential"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyAtomic, PolicySequential:
		return p, nil
	default:
		return "", fmt.Errorf("unknown commit policy %q", s)
	}
}

type UseCase interface {
	Cart(ctx context.Context, sessionID string) *dto.CartView
	AddItem(ctx context.Context, sessionID string, productID int64) *dto.CartView
	RemoveItem(ctx context.Context, sessionID string, productID int64) *dto.CartView
	ClearCart(ctx context.Context, sessionID string) *dto.CartView

	Checkout(ctx context.Context, sessionID string) (*dto.CheckoutResult, error)
	// CommitLines records lines as sales. Checkout and the sale request
	// listener both go through it.
	CommitLines(ctx context.Context, lines []model.CartLine, source string) (*dto.CheckoutResult, error)

	ListSales(ctx context.Context, limit int) ([]model.SaleRecord, error)
}
