package types

import (
	ierr "github.com/coverbridge/coverbridge/internal/errors"
)

// AccessScope is the caller's breadth level over client-linked resources,
// resolved upstream from role/permission configuration. The set is closed;
// every switch over it must be exhaustive.
type AccessScope string

const (
	// AccessScopeAll grants access to every client in the organization.
	AccessScopeAll AccessScope = "all"
	// AccessScopeClient grants access only to explicitly assigned clients.
	AccessScopeClient AccessScope = "client"
	// AccessScopeOwn grants access only through an active affiliate link.
	AccessScopeOwn AccessScope = "own"
)

func (s AccessScope) String() string {
	return string(s)
}

func (s AccessScope) Validate() error {
	switch s {
	case AccessScopeAll, AccessScopeClient, AccessScopeOwn:
		return nil
	}
	return ierr.NewErrorf("invalid access scope: %s", s).
		WithHint("Access scope must be one of all, client, own").
		Mark(ierr.ErrValidation)
}
