package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters applies the name, note and search filters shared by
// resources with a name and a note.
func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string) *gorm.DB {
	query = likeFilter(query, setFields, "Name", "name", name)
	query = likeFilter(query, setFields, "Note", "note", note)

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}

// likeFilter filters column for containing value. If the parameter is set
// but empty, it filters for an empty column.
func likeFilter(query *gorm.DB, setFields []string, field, column, value string) *gorm.DB {
	if value != "" {
		return query.Where(fmt.Sprintf("%s LIKE ?", column), fmt.Sprintf("%%%s%%", value))
	}

	if slices.Contains(setFields, field) {
		return query.Where(fmt.Sprintf("%s = ''", column))
	}

	return query
}

// paginate applies offset and limit. The limit defaults to 50.
func paginate(query *gorm.DB, setFields []string, offset uint, limit int) (*gorm.DB, int) {
	// Set the offset. Does not need checking since the default is 0
	query = query.Offset(int(offset))

	l := 50
	if slices.Contains(setFields, "Limit") {
		l = limit
	}

	return query.Limit(l), l
}
