// Package authz decides whether a principal may modify a product.
package authz

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

const (
	ActionUpdate = "product.update"
	ActionDelete = "product.delete"
)

// ErrForbidden is returned when the principal is not the resource owner.
var ErrForbidden = errors.New("forbidden: caller does not own this product")

// Resource is the attribute set the ownership matcher reads.
type Resource struct {
	Owner string
}

// Authorizer enforces the ownership rule: only the email recorded on a product may update or
// delete it.
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

func New() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to load authorization model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// Authorize returns ErrForbidden unless principal owns the resource.
func (a *Authorizer) Authorize(principal string, owner string, action string) error {
	ok, err := a.enforcer.Enforce(principal, Resource{Owner: owner}, action)
	if err != nil {
		return fmt.Errorf("authorization check failed: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
