package service

import (
	"errors"

	"vksolaris/enum"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrUserNotFound       = errors.New("user not found")
)

// 业务规则拒绝，原因原样返回给调用方
type DenyError struct {
	Reason enum.DenyReason
}

func (e *DenyError) Error() string {
	return e.Reason.Message()
}

// 从错误链中取出拒绝原因
func AsDenyReason(err error) (enum.DenyReason, bool) {
	var deny *DenyError
	if errors.As(err, &deny) {
		return deny.Reason, true
	}
	return "", false
}
