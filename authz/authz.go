// Package authz holds the single authorization predicate for catalog
// operations, keyed on {role_id, operation}.
package authz

import "github.com/Ursulinastarry/book-library/model"

type Op string

const (
	OpBookCreate Op = "book:create"
	OpBookUpdate Op = "book:update"
	OpBookPatch  Op = "book:patch"
	OpBookDelete Op = "book:delete"
)

var allowed = map[Op][]int64{
	OpBookCreate: {model.RoleAdmin},
	OpBookUpdate: {model.RoleAdmin, model.RoleLibrarian},
	OpBookPatch:  {model.RoleAdmin, model.RoleLibrarian},
	OpBookDelete: {model.RoleAdmin},
}

// Can reports whether a caller with roleID may perform op.
func Can(roleID int64, op Op) bool {
	for _, r := range allowed[op] {
		if r == roleID {
			return true
		}
	}
	return false
}
