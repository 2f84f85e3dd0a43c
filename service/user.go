package service

import (
	"context"
	"fmt"

	"vksolaris/config"
	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/repository"
	"vksolaris/utils"
)

type UserService struct {
	UserRepo   repository.UserRepoInterface
	TicketRepo repository.TicketRepoInterface
}

type UserSrv interface {
	Register(ctx context.Context, user *model.User, password string) (*model.User, string, error)
	Login(ctx context.Context, userName, password string) (*model.User, string, error)
	Get(ctx context.Context, userId uint64) (*model.User, error)
	EditProfile(ctx context.Context, userId uint64, firstName, lastName string, email *string) (*model.User, error)
	Tickets(ctx context.Context, userId uint64) ([]*model.SeasonTicket, error)
}

// 注册，新用户默认pending待管理员审核
func (s *UserService) Register(ctx context.Context, user *model.User, password string) (*model.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	exist, err := s.UserRepo.ExistByUserName(ctx, user.UserName)
	if err != nil {
		return nil, "", err
	}
	if exist {
		return nil, "", ErrUserExists
	}
	if user.Email != nil && *user.Email != "" {
		exist, err = s.UserRepo.ExistByEmail(ctx, *user.Email, 0)
		if err != nil {
			return nil, "", err
		}
		if exist {
			return nil, "", ErrEmailExists
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("密码加密失败: %w", err)
	}
	user.UserPwd = hash
	user.Status = enum.UserStatusPending

	if err := s.UserRepo.CreateUser(ctx, user); err != nil {
		// 并发注册撞唯一索引按已存在处理
		if repository.IsDuplicateKey(err) {
			return nil, "", ErrUserExists
		}
		return nil, "", err
	}

	token, err := utils.GenerateUserToken(config.JwtSecret(), user.UserId, user.UserName, config.UserTokenExpire())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, userName, password string) (*model.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	user, err := s.UserRepo.GetByUserName(ctx, userName)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Status == enum.UserStatusSuspended {
		return nil, "", ErrAccountSuspended
	}
	if !utils.CheckPassword(password, user.UserPwd) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateUserToken(config.JwtSecret(), user.UserId, user.UserName, config.UserTokenExpire())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Get(ctx context.Context, userId uint64) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	user, err := s.UserRepo.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// 会员编辑自己的资料，email变更时需查重
func (s *UserService) EditProfile(ctx context.Context, userId uint64, firstName, lastName string, email *string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if email != nil && *email != "" {
		exist, err := s.UserRepo.ExistByEmail(ctx, *email, userId)
		if err != nil {
			return nil, err
		}
		if exist {
			return nil, ErrEmailExists
		}
		user.Email = email
	}

	if err := s.UserRepo.EditProfile(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Tickets(ctx context.Context, userId uint64) ([]*model.SeasonTicket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.TicketRepo.ListByUser(ctx, userId)
}
