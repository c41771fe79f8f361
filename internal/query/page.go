package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
	"gorm.io/gorm"
)

// MaxLimit caps the page size a caller can request.
const MaxLimit = 100

// PageRequest is a coerced page/limit pair. Page and Limit are always >= 1.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest coerces raw query values. Non-numeric or non-positive values fall
// back to page 1 and defaultLimit.
func ParsePageRequest(rawPage, rawLimit string, defaultLimit int) PageRequest {
	if defaultLimit <= 0 {
		defaultLimit = 1
	}
	return PageRequest{
		Page:  positiveOr(rawPage, 1),
		Limit: min(positiveOr(rawLimit, defaultLimit), MaxLimit),
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Offset is the number of rows skipped before this page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// TotalPages is ceil(total/limit) with a floor of 1.
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Page is one window of a listing plus its metadata.
type Page[T any] struct {
	Items       []T
	Total       int64
	TotalPages  int
	CurrentPage int
	Limit       int
	NextPage    *int
}

// NewPage assembles the page metadata. The current page never exceeds TotalPages.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := TotalPages(total, req.Limit)
	current := min(max(req.Page, 1), totalPages)

	var next *int
	if current < totalPages {
		n := current + 1
		next = &n
	}
	return Page[T]{
		Items:       items,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: current,
		Limit:       req.Limit,
		NextPage:    next,
	}
}

// Listing describes how a resource is read: its table expression (shared by the
// count and the windowed select), the selected columns and a deterministic order.
type Listing struct {
	From   func(tx *gorm.DB) *gorm.DB
	Select string
	Order  string
}

// Paginate counts the rows matching pred, then selects the requested window. Pages
// past the end are clamped to the last page.
func Paginate[T any](ctx context.Context, db *gorm.DB, l Listing, pred Predicate, req PageRequest) (Page[T], error) {
	var total int64
	if err := pred.Apply(l.From(db.WithContext(ctx))).Count(&total).Error; err != nil {
		return Page[T]{}, apperror.DataAccess("count rows", err)
	}

	req.Page = min(req.Page, TotalPages(total, req.Limit))

	tx := pred.Apply(l.From(db.WithContext(ctx)))
	if l.Select != "" {
		tx = tx.Select(l.Select)
	}

	items := make([]T, 0, req.Limit)
	if err := tx.Order(l.Order).Limit(req.Limit).Offset(req.Offset()).Find(&items).Error; err != nil {
		return Page[T]{}, apperror.DataAccess("select page", err)
	}
	return NewPage(items, total, req), nil
}
