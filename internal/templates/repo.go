package templates

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "template not found" }

type Repo interface {
	List(ctx context.Context, activeOnly bool) ([]Template, error)
	GetByID(ctx context.Context, id string) (Template, error)
	GetByName(ctx context.Context, name string) (Template, error)
	Create(ctx context.Context, t Template) error
	Update(ctx context.Context, t Template) error
	IncrementUsage(ctx context.Context, name string) error
}
