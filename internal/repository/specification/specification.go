// Package specification holds composable query predicates for the intake
// repositories. FindOne and FindAll accept any number of them, so reads like
// "submissions for this form, newest first, paged" are built by combining
// small specs instead of adding bespoke repository methods.
package specification

import "gorm.io/gorm"

// Specification is a single constraint applied onto a gorm query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
