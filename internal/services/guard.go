package services

import (
	"context"

	"github.com/JameNori/jamenori-dev-journal-sub000/internal/apperror"
)

// NameCounter counts rows holding an exact name, optionally ignoring one row.
// Category and user repositories both satisfy it.
type NameCounter[ID comparable] interface {
	CountByName(ctx context.Context, name string, excludingID *ID) (int64, error)
}

// DependentCounter counts posts that reference a category.
type DependentCounter interface {
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

// AssertUniqueName fails with a Conflict carrying message when another row already
// holds name. The comparison is exact and case-sensitive.
//
// This is a pre-check only. Two writers can both pass it; the unique constraint in the
// store decides the race and the repository reports it with the same Conflict.
func AssertUniqueName[ID comparable](ctx context.Context, counter NameCounter[ID], name string, excludingID *ID, message string) error {
	n, err := counter.CountByName(ctx, name, excludingID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict(message)
	}
	return nil
}

// AssertNoDependents fails with Conflict("category in use") while any post references
// the category. The RESTRICT foreign key backs it up at delete time.
func AssertNoDependents(ctx context.Context, counter DependentCounter, categoryID uint) error {
	n, err := counter.CountByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperror.Conflict("category in use")
	}
	return nil
}
