package psqlbuilder

import sq "github.com/Masterminds/squirrel"

// builder с плейсхолдерами $1, $2, ... для PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Select возвращает SELECT builder с PostgreSQL плейсхолдерами
func Select(columns ...string) sq.SelectBuilder {
	return psql.Select(columns...)
}

// Insert возвращает INSERT builder с PostgreSQL плейсхолдерами
func Insert(into string) sq.InsertBuilder {
	return psql.Insert(into)
}

// Update возвращает UPDATE builder с PostgreSQL плейсхолдерами
func Update(table string) sq.UpdateBuilder {
	return psql.Update(table)
}

// Delete возвращает DELETE builder с PostgreSQL плейсхолдерами
func Delete(from string) sq.DeleteBuilder {
	return psql.Delete(from)
}
