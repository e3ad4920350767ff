package specification

import (
	"fmt"

	"gorm.io/gorm"
)

// ByID filters by primary key. Identifiers are opaque strings here
// ("chat_...", "msg_...", "user_..."), never parsed.
type ByID struct {
	ID string
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByIntID filters by a numeric primary key (pods keep small integer ids).
type ByIntID struct {
	ID int
}

func (s ByIntID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination is offset-based: callers pass Limit=pageSize and
// Offset=(page-1)*pageSize.
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
