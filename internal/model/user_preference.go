package model

type UserPreference struct {
	UserID uint64 `gorm:"primaryKey"`
	Name   string `gorm:"primaryKey;type:varchar(100)"`
	Value  string `gorm:"type:varchar(1333);not null"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
