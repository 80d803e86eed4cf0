// Package sqlbuilder assembles SQL statements from typed clauses.
//
// A Builder is an append-only clause sequence. Comparisons bind their values into the
// statement's parameter store as they are appended; conditions that turn out to be
// false are pruned together with the connectives and brackets that only made sense
// around them before the statement is rendered.
//
// Example:
//
//	b := sqlbuilder.New(sqlbuilder.WithCatalog(catalog)).
//		SetLogicDB("orders").
//		Select("id", "name").
//		From("Orders").
//		Where().
//		EqualNullable("user_id", params.TypeInteger, userID).
//		And().
//		LikeNullable("name", params.TypeVarchar, name)
//
//	stmt, err := b.Build()
//	if err != nil {
//		return err
//	}
//
//	// userID = 6, name = nil on SQL Server with Orders split into 4 shards:
//	// SELECT [id], [name] FROM [Orders_2] WITH (NOLOCK) WHERE [user_id] = ?
//	fmt.Println(stmt.SQL)
//
// Builder methods never panic. The first misuse is recorded and returned by Err and
// Build, and every later call is a no-op.
package sqlbuilder
