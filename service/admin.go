package service

import (
	"context"

	"vksolaris/config"
	"vksolaris/enum"
	"vksolaris/model"
	"vksolaris/query"
	"vksolaris/repository"
	"vksolaris/utils"
)

type AdminService struct {
	AdminRepo  repository.AdminRepoInterface
	UserRepo   repository.UserRepoInterface
	TicketRepo repository.TicketRepoInterface
	StatsRepo  repository.StatsRepoInterface
}

type AdminSrv interface {
	Login(ctx context.Context, userName, password string) (*model.AdminUser, string, error)
	ListUsers(ctx context.Context, req *query.UserListQuery) ([]*model.User, int64, error)
	GetUserDetail(ctx context.Context, userId uint64) (*model.User, []*model.SeasonTicket, error)
	UpdateUserStatus(ctx context.Context, userId uint64, status enum.UserStatus) (*model.User, error)
	UpdateUserDiscount(ctx context.Context, userId uint64, discount int) (*model.User, error)
	Dashboard(ctx context.Context, seasonYear int) (*model.DashboardStats, error)
}

func (s *AdminService) Login(ctx context.Context, userName, password string) (*model.AdminUser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	admin, err := s.AdminRepo.GetByUserName(ctx, userName)
	if err != nil {
		return nil, "", err
	}
	if admin == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, admin.UserPwd) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminToken(config.JwtSecret(), admin.AdminId, admin.UserName, string(admin.Role), config.AdminTokenExpire())
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

func (s *AdminService) ListUsers(ctx context.Context, req *query.UserListQuery) ([]*model.User, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if req.PageSize <= 0 {
		req.PageSize = config.PageSize
	}
	if req.PageSize > config.MaxPageSize {
		req.PageSize = config.MaxPageSize
	}

	users, err := s.UserRepo.List(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.UserRepo.GetTotal(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *AdminService) GetUserDetail(ctx context.Context, userId uint64) (*model.User, []*model.SeasonTicket, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	user, err := s.UserRepo.Get(ctx, userId)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	tickets, err := s.TicketRepo.ListByUser(ctx, userId)
	if err != nil {
		return nil, nil, err
	}
	return user, tickets, nil
}

// 管理员审核：pending -> confirmed，或停用账号
func (s *AdminService) UpdateUserStatus(ctx context.Context, userId uint64, status enum.UserStatus) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ok, err := s.UserRepo.UpdateStatus(ctx, userId, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.UserRepo.Get(ctx, userId)
}

func (s *AdminService) UpdateUserDiscount(ctx context.Context, userId uint64, discount int) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if discount < 0 || discount > 100 {
		return nil, ErrInvalidDiscount
	}
	ok, err := s.UserRepo.UpdateDiscount(ctx, userId, discount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.UserRepo.Get(ctx, userId)
}

func (s *AdminService) Dashboard(ctx context.Context, seasonYear int) (*model.DashboardStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.StatsRepo.DashboardStats(ctx, seasonYear)
}
