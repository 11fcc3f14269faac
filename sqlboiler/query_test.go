package sqlboiler_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/paginize-go"
	"github.com/nrfta/paginize-go/sqlboiler"
)

// fakeDB stands in for generated models: it records the mods it receives and
// serves rows by slicing the fixture in whatever order it was given.
type fakeDB struct {
	rows       []user
	queryMods  [][]qm.QueryMod
	countMods  [][]qm.QueryMod
	queryErr   error
	countErr   error
	nextWindow [2]int
}

func (db *fakeDB) query(_ context.Context, mods ...qm.QueryMod) ([]user, error) {
	db.queryMods = append(db.queryMods, mods)
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	offset, limit := db.nextWindow[0], db.nextWindow[1]
	end := min(offset+limit, len(db.rows))
	return db.rows[offset:end], nil
}

func (db *fakeDB) count(_ context.Context, mods ...qm.QueryMod) (int64, error) {
	db.countMods = append(db.countMods, mods)
	if db.countErr != nil {
		return 0, db.countErr
	}
	return int64(len(db.rows)), nil
}

func (db *fakeDB) newQuery(mods ...qm.QueryMod) *sqlboiler.Query[user] {
	return sqlboiler.NewQuery(db.query, db.count, mods...)
}

// buildSQL renders mods the way a generated users model would.
func buildSQL(mods []qm.QueryMod) string {
	q := &queries.Query{}
	queries.SetDialect(q, &drivers.Dialect{LQ: '"', RQ: '"', UseIndexPlaceholders: true})
	qm.Apply(q, append([]qm.QueryMod{qm.From(`"users"`)}, mods...)...)

	sql, _ := queries.BuildQuery(q)
	return sql
}

func fakeUsers(n int) []user {
	users := make([]user, n)
	for i := range users {
		users[i] = user{ID: fmt.Sprintf("u%02d", i+1), Name: fmt.Sprintf("user %d", i+1)}
	}
	return users
}

var _ = Describe("Query", func() {
	var (
		ctx context.Context
		db  *fakeDB
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = &fakeDB{rows: fakeUsers(25)}
	})

	It("implements paging.Query", func() {
		var _ paging.Query[user] = db.newQuery()
	})

	It("counts with the base mods only", func() {
		q := db.newQuery(qm.Where("is_active = ?", true))
		ordered := q.Order(userKeys(paging.Desc("createdAt"))[0])

		count, err := ordered.Count(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(25))
		Expect(db.countMods).To(HaveLen(1))
		Expect(modTypeNames(db.countMods[0])).To(HaveLen(1))
		Expect(modTypeName(db.countMods[0][0])).To(whereModMatcher())
	})

	It("slices with base, order, offset and limit mods in that order", func() {
		q := db.newQuery(qm.Where("is_active = ?", true))
		ordered := q.Order(userKeys(paging.Desc("createdAt"))[0]).Order(userKeys(paging.Asc("id"))[0])

		_, err := ordered.Slice(ctx, 10, 5)

		Expect(err).ToNot(HaveOccurred())
		mods := db.queryMods[0]
		Expect(mods).To(HaveLen(4))
		Expect(modTypeName(mods[0])).To(whereModMatcher())
		Expect(modTypeNames(mods[1:])).To(Equal([]string{
			"qm.orderByQueryMod",
			"qm.offsetQueryMod",
			"qm.limitQueryMod",
		}))
	})

	It("leaves the receiver unchanged", func() {
		base := db.newQuery()
		_ = base.Order(userKeys(paging.Desc("name"))[0])
		_ = base.Where(qm.Where("name = ?", "x"))

		_, err := base.Slice(ctx, 0, 5)

		Expect(err).ToNot(HaveOccurred())
		Expect(modTypeNames(db.queryMods[0])).To(Equal([]string{"qm.limitQueryMod"}))
		Expect(base.Mods()).To(BeEmpty())
	})

	Describe("TieBreak", func() {
		var id paging.Column[user]

		BeforeEach(func() {
			id, _ = userColumns.ResolveColumn("id")
		})

		It("orders by the tie-break column after the requested keys", func() {
			q := db.newQuery().TieBreak(id).Order(userKeys(paging.Desc("createdAt"))[0])

			_, err := q.Slice(ctx, 0, 5)

			Expect(err).ToNot(HaveOccurred())
			Expect(buildSQL(db.queryMods[0])).To(ContainSubstring(`ORDER BY "created_at" DESC, "users"."id" ASC`))
		})

		It("orders by the tie-break column alone without requested keys", func() {
			_, err := db.newQuery().TieBreak(id).Slice(ctx, 0, 5)

			Expect(err).ToNot(HaveOccurred())
			Expect(buildSQL(db.queryMods[0])).To(ContainSubstring(`ORDER BY "users"."id" ASC`))
		})

		It("does not repeat a requested column", func() {
			q := db.newQuery().TieBreak(id).Order(userKeys(paging.Desc("id"))[0])

			_, err := q.Slice(ctx, 0, 5)

			Expect(err).ToNot(HaveOccurred())
			sql := buildSQL(db.queryMods[0])
			Expect(sql).To(ContainSubstring(`ORDER BY "users"."id" DESC`))
			Expect(sql).ToNot(ContainSubstring(`"users"."id" ASC`))
		})

		It("never reaches the count", func() {
			_, err := db.newQuery().TieBreak(id).Count(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(db.countMods[0]).To(BeEmpty())
		})
	})

	It("narrows with Where", func() {
		q := db.newQuery(qm.Where("is_active = ?", true)).Where(qm.Where("name ILIKE ?", "%berry%"))

		Expect(q.Mods()).To(HaveLen(2))
	})

	It("wraps count errors", func() {
		db.countErr = errors.New("connection refused")

		_, err := db.newQuery().Count(ctx)

		Expect(err).To(MatchError(ContainSubstring("sqlboiler: count: connection refused")))
		Expect(errors.Is(err, db.countErr)).To(BeTrue())
	})

	It("wraps slice errors", func() {
		db.queryErr = errors.New("timeout")

		_, err := db.newQuery().Slice(ctx, 20, 10)

		Expect(err).To(MatchError("sqlboiler: slice offset 20 limit 10: timeout"))
		Expect(errors.Is(err, db.queryErr)).To(BeTrue())
	})

	Describe("with PaginateQuery", func() {
		It("pushes the page window into SQL", func() {
			db.nextWindow = [2]int{20, 10}
			filter := paging.WithSortBy(paging.WithPage(nil, 3, 10), "createdAt", paging.Descending)

			result, err := paging.PaginateQuery[user](ctx, db.newQuery(), filter, userColumns)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PageIndex).To(Equal(3))
			Expect(result.TotalPages).To(Equal(3))
			Expect(result.TotalCount).To(Equal(25))
			Expect(result.Items).To(HaveLen(5))
			Expect(db.countMods).To(HaveLen(1))
			Expect(db.queryMods).To(HaveLen(1))
			Expect(modTypeNames(db.queryMods[0])).To(Equal([]string{
				"qm.orderByQueryMod",
				"qm.offsetQueryMod",
				"qm.limitQueryMod",
			}))
		})

		It("clamps past the last page", func() {
			db.nextWindow = [2]int{20, 10}

			result, err := paging.PaginateQuery[user](ctx, db.newQuery(), paging.WithPage(nil, 99, 10), userColumns)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PageIndex).To(Equal(3))
			Expect(modTypeNames(db.queryMods[0])).To(Equal([]string{"qm.offsetQueryMod", "qm.limitQueryMod"}))
		})

		It("skips slicing on empty", func() {
			db.rows = nil

			result, err := paging.PaginateQuery[user](ctx, db.newQuery(), paging.WithPage(nil, 2, 10), userColumns)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Items).To(BeEmpty())
			Expect(result.PageIndex).To(Equal(2))
			Expect(db.queryMods).To(BeEmpty())
		})

		It("drops unknown columns before they reach SQL", func() {
			db.nextWindow = [2]int{0, 10}
			filter := paging.WithSortBy(nil, "password_hash", paging.Ascending)

			_, err := paging.PaginateQuery[user](ctx, db.newQuery(), filter, userColumns)

			Expect(err).ToNot(HaveOccurred())
			Expect(modTypeNames(db.queryMods[0])).To(Equal([]string{"qm.limitQueryMod"}))
		})
	})
})
