package model

// Role 角色，Name 直接写入 JWT 的 roles 声明
type Role struct {
	ID          uint64  `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(50);uniqueIndex:idx_role_name;not null"`
	Description *string `gorm:"type:varchar(255)"`
}

func (Role) TableName() string {
	return "roles"
}

type UserRole struct {
	UserID uint64 `gorm:"primaryKey" json:"user_id"`
	RoleID uint64 `gorm:"primaryKey;index:idx_role_id" json:"role_id"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
