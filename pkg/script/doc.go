// Package script parses a small line oriented language describing a statement and
// replays it against a sqlbuilder.Builder. The dalsql CLI renders and executes these
// scripts; they are also handy as fixtures.
//
// Every command starts with a keyword. Whitespace, including newlines, is not
// significant and # starts a comment.
//
//	db orders                          # logical database
//	dialect sqlserver                  # fixed dialect
//	inmode expanded                    # IN binding
//	hint user_id = 42                  # routing hint for a column
//	hint shard 3                       # explicit shard id
//	disable meltdown                   # or: disable spacing
//
//	select id, name as n               # SELECT [id], [name] AS n
//	from Orders shard 1 as o           # FROM [Orders_1] AS o WITH (NOLOCK)
//	where includeall                   # WHERE TRUE AND ...
//	equal user_id integer 42 required
//	and (
//	  like name varchar "jo%" nullable
//	  or in status varchar ["new", null] nullable
//	)
//	and isnull deleted_at when true
//	order by id desc
//
// Comparison commands take a column, a parameter type and a value, followed by an
// optional binding mode (nullable or required), the sensitive flag and a when
// condition. between takes two values.
//
// Example:
//
//	b := sqlbuilder.New(sqlbuilder.WithCatalog(catalog))
//	stmt, err := script.Build(b, strings.NewReader(`db orders select * from Orders`))
//	if err != nil {
//		return err
//	}
package script
