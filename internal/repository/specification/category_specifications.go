package specification

import "gorm.io/gorm"

// ByName filters by exact (case-sensitive) name match.
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
