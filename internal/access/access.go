// Package access decides whether a caller may perform an operation.
//
// A decision runs in a fixed order and stops at the first failure:
// identity, collection role, capability, record ownership.
package access

import (
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/internal/apperror"
	"github.com/snnyvrz/shelfshare/internal/model"
)

type Operation int

const (
	Read Operation = iota
	Create
	Update
	Delete
)

func (o Operation) String() string {
	switch o {
	case Read:
		return "read"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return "unknown"
}

type Role int

const (
	Anonymous Role = iota
	Authenticated
	Admin
)

// Policy is the minimum role per operation for one resource kind.
// Operations missing from the table require Admin.
type Policy map[Operation]Role

func (p Policy) Required(op Operation) Role {
	if r, ok := p[op]; ok {
		return r
	}
	return Admin
}

var (
	BookPolicy = Policy{
		Read:   Anonymous,
		Create: Authenticated,
		Update: Authenticated,
		Delete: Admin,
	}

	AuthorPolicy = Policy{
		Read:   Anonymous,
		Create: Authenticated,
		Update: Authenticated,
		Delete: Admin,
	}

	// LibrariesPolicy covers library records under /libraries. The
	// capability gated book routes under /library use LibraryPolicy.
	LibrariesPolicy = Policy{
		Read:   Anonymous,
		Create: Authenticated,
		Update: Authenticated,
		Delete: Admin,
	}

	// ContentPolicy covers owned records (posts, comments); ownership is
	// enforced separately.
	ContentPolicy = Policy{
		Read:   Anonymous,
		Create: Authenticated,
		Update: Authenticated,
		Delete: Authenticated,
	}

	// LibraryPolicy only asks for an identity; capabilities do the rest.
	LibraryPolicy = Policy{
		Read:   Authenticated,
		Create: Authenticated,
		Update: Authenticated,
		Delete: Authenticated,
	}
)

// Identity is the resolved caller.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	IsStaff     bool
	IsSuperuser bool
	Permissions map[Capability]struct{}
}

// IdentityFromUser expects Groups.Permissions and Permissions to be preloaded.
func IdentityFromUser(u *model.User) *Identity {
	perms := make(map[Capability]struct{})
	for _, g := range u.Groups {
		for _, p := range g.Permissions {
			perms[Capability(p.Codename)] = struct{}{}
		}
	}
	for _, p := range u.Permissions {
		perms[Capability(p.Codename)] = struct{}{}
	}

	return &Identity{
		UserID:      u.ID,
		Email:       u.Email,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		Permissions: perms,
	}
}

func (i *Identity) IsAdmin() bool {
	return i != nil && (i.IsStaff || i.IsSuperuser)
}

func (i *Identity) Role() Role {
	switch {
	case i == nil:
		return Anonymous
	case i.IsAdmin():
		return Admin
	default:
		return Authenticated
	}
}

// Has reports whether the capability is in the effective permission set.
// Superusers hold every capability.
func (i *Identity) Has(c Capability) bool {
	if i == nil {
		return false
	}
	if i.IsSuperuser {
		return true
	}
	_, ok := i.Permissions[c]
	return ok
}

// Request describes one authorization question. Capability and Owner are
// optional.
type Request struct {
	Identity   *Identity
	Operation  Operation
	Policy     Policy
	Capability Capability
	Owner      *uuid.UUID
}

func (r Request) needsIdentity() bool {
	return r.Policy.Required(r.Operation) > Anonymous || r.Capability != "" || r.Owner != nil
}

func Decide(r Request) error {
	if r.Identity == nil {
		if r.needsIdentity() {
			return apperror.Unauthenticated("NOT_AUTHENTICATED", "authentication credentials were not provided")
		}
		return nil
	}

	if r.Identity.Role() < r.Policy.Required(r.Operation) {
		return apperror.Forbidden("INSUFFICIENT_ROLE", "you do not have permission to "+r.Operation.String()+" this resource")
	}

	if r.Capability != "" {
		if err := CheckCapability(r.Identity, r.Capability); err != nil {
			return err
		}
	}

	if r.Owner != nil {
		if err := CheckOwner(r.Identity, *r.Owner); err != nil {
			return err
		}
	}

	return nil
}

func CheckCapability(id *Identity, c Capability) error {
	if id == nil {
		return apperror.Unauthenticated("NOT_AUTHENTICATED", "authentication credentials were not provided")
	}
	if !id.Has(c) {
		return apperror.Forbidden("MISSING_CAPABILITY", "missing permission "+string(c))
	}
	return nil
}

// CheckOwner passes when the caller is the stored owner or a superuser.
// Staff status alone does not pass.
func CheckOwner(id *Identity, owner uuid.UUID) error {
	if id == nil {
		return apperror.Unauthenticated("NOT_AUTHENTICATED", "authentication credentials were not provided")
	}
	if id.IsSuperuser || id.UserID == owner {
		return nil
	}
	return apperror.Forbidden("NOT_OWNER", "only the author can modify this record")
}
