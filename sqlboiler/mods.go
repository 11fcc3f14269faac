package sqlboiler

import (
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"

	"github.com/nrfta/paginize-go"
)

// OffsetToQueryMods converts an offset window into SQLBoiler query mods.
//
// The conversion follows these rules:
//   - offset > 0 → qm.Offset(n)
//   - limit > 0 → qm.Limit(n)
//
// Offset always comes before Limit.
func OffsetToQueryMods(offset, limit int) []qm.QueryMod {
	mods := []qm.QueryMod{}

	if offset > 0 {
		mods = append(mods, qm.Offset(offset))
	}

	if limit > 0 {
		mods = append(mods, qm.Limit(limit))
	}

	return mods
}

// OrderToQueryMods converts sort keys into a single qm.OrderBy mod, or none
// when there are no keys.
func OrderToQueryMods[T any](keys []paging.OrderBy[T]) []qm.QueryMod {
	if len(keys) == 0 {
		return nil
	}
	return []qm.QueryMod{qm.OrderBy(OrderByClause(keys))}
}

// OrderByClause constructs an ORDER BY clause from sort keys, using each
// column's storage expression.
//
// Example:
//
//	[]OrderBy{
//	    {Column: paging.Time("CreatedAt", ...).As("created_at"), Direction: paging.Descending},
//	    {Column: paging.Ordered("ID", ...).As("users.id")},
//	}
//	→ `"created_at" DESC, "users"."id" ASC`
func OrderByClause[T any](keys []paging.OrderBy[T]) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		dir := " ASC"
		if key.Desc() {
			dir = " DESC"
		}
		parts[i] = quoteExpr(key.Column) + dir
	}
	return strings.Join(parts, ", ")
}

// quoteExpr quotes plain and dotted identifiers. Anything else, such as
// lower(name), is a developer-supplied expression and is used as is.
func quoteExpr[T any](col paging.Column[T]) string {
	if path := col.ExprPath(); path != nil {
		return strmangle.IdentQuote('"', '"', strings.Join(path, "."))
	}
	return col.Expr()
}
