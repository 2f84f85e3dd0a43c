package enum

type UserStatus string

// 用户状态：待审核、已确认、已停用
const (
	UserStatusPending   UserStatus = "pending"
	UserStatusConfirmed UserStatus = "confirmed"
	UserStatusSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserStatusPending, UserStatusConfirmed, UserStatusSuspended:
		return true
	}
	return false
}

func (s UserStatus) String() string {
	return string(s)
}

type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "super_admin"
)

func (r AdminRole) Valid() bool {
	switch r {
	case AdminRoleAdmin, AdminRoleSuperAdmin:
		return true
	}
	return false
}
