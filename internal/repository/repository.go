// Package repository contains the data access layer. Each entity gets a repo
// struct bound to a *sql.DB; every query is parameterized and context-bound.
// Failure scenarios that handlers branch on (duplicate email, already
// reviewed, missing row) are surfaced as sentinel errors declared next to
// the repo that raises them, so handlers match with errors.Is instead of
// inspecting driver errors.
package repository

import "strings"

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062). The association tables use INSERT IGNORE and never hit this;
// it fires on the unique keys over users.email and
// reviews(user_id, reviewed_game_id).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
