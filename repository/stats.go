package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vksolaris/model"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

type StatsRepository struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

type StatsRepoInterface interface {
	DashboardStats(ctx context.Context, seasonYear int) (*model.DashboardStats, error)
}

// 仪表盘聚合走redis读穿缓存，未命中查库后回填
func (repo *StatsRepository) DashboardStats(ctx context.Context, seasonYear int) (*model.DashboardStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if repo.Rdb != nil {
		cached, err := repo.Rdb.Get(ctx, statsCacheKey).Result()
		if err == nil {
			stats := &model.DashboardStats{}
			if err := json.Unmarshal([]byte(cached), stats); err == nil {
				return stats, nil
			}
		} else if err != redis.Nil {
			// 缓存故障降级为直查数据库
		}
	}

	stats, err := repo.queryStats(ctx, seasonYear)
	if err != nil {
		return nil, err
	}

	if repo.Rdb != nil {
		if data, err := json.Marshal(stats); err == nil {
			repo.Rdb.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}
	return stats, nil
}

func (repo *StatsRepository) queryStats(ctx context.Context, seasonYear int) (*model.DashboardStats, error) {
	db := repo.DB.WithContext(ctx)
	stats := &model.DashboardStats{
		UsersByStatus: map[string]int64{},
	}

	if err := db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&model.User{}).Select("status, count(*) as count").
		Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.UsersByStatus[row.Status] = row.Count
	}

	if err := db.Model(&model.SeasonTicket{}).Where("season_year=?", seasonYear).
		Count(&stats.SeasonTicketsSold).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.SeasonTicket{}).Where("season_year=?", seasonYear).
		Select("COALESCE(SUM(amount_paid),0)").Scan(&stats.Revenue).Error; err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	if err := db.Model(&model.User{}).Where("create_at >= ?", since).
		Count(&stats.RecentRegistrations).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
