package recipe

import (
	"github.com/matt-dz/tastebook/internal/database"
	"github.com/matt-dz/tastebook/internal/identity"
	"github.com/matt-dz/tastebook/internal/role"
)

func isAuthor(actor identity.Identity, r database.Recipe) bool {
	return actor.UserID != "" && actor.UserID == r.Author
}

// CanUpdate allows only the author. Admins get no override.
func CanUpdate(actor identity.Identity, r database.Recipe) bool {
	return isAuthor(actor, r)
}

// CanDelete allows the author or any user whose stored roles contain Admin.
// roles comes from the user record, not the credential.
func CanDelete(actor identity.Identity, roles role.Set, r database.Recipe) bool {
	return isAuthor(actor, r) || roles.IsAdmin()
}

// CanDeleteComment allows every authenticated caller. Comments carry no
// ownership check on removal.
func CanDeleteComment(identity.Identity, database.Recipe, database.Comment) bool {
	return true
}
