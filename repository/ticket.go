package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vksolaris/model"
)

type TicketRepository struct {
	DB *gorm.DB
}

type TicketRepoInterface interface {
	Get(ctx context.Context, ticketId int64) (*model.SeasonTicket, error)
	ListByUser(ctx context.Context, userId uint64) ([]*model.SeasonTicket, error)
	ExistByUserAndYear(ctx context.Context, userId uint64, seasonYear int) (bool, error)
	GetByPaymentIntentId(ctx context.Context, intentId string) (*model.SeasonTicket, error)
	CreateWithEntitlement(ctx context.Context, ticket *model.SeasonTicket) error
	RecomputeEntitlement(ctx context.Context, userId uint64) error
}

func (repo *TicketRepository) Get(ctx context.Context, ticketId int64) (*model.SeasonTicket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Ticket := model.SeasonTicket{}
	err := repo.DB.WithContext(ctx).Where("ticket_id=?", ticketId).First(&Ticket).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &Ticket, nil
}

func (repo *TicketRepository) ListByUser(ctx context.Context, userId uint64) ([]*model.SeasonTicket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var tickets []*model.SeasonTicket
	err := repo.DB.WithContext(ctx).Where("user_id=?", userId).Order("season_year desc").Find(&tickets).Error
	return tickets, err
}

func (repo *TicketRepository) ExistByUserAndYear(ctx context.Context, userId uint64, seasonYear int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var count int64
	err := repo.DB.WithContext(ctx).Model(&model.SeasonTicket{}).
		Where("user_id=? AND season_year=?", userId, seasonYear).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *TicketRepository) GetByPaymentIntentId(ctx context.Context, intentId string) (*model.SeasonTicket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Ticket := model.SeasonTicket{}
	err := repo.DB.WithContext(ctx).Where("payment_intent_id=?", intentId).First(&Ticket).Error
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &Ticket, nil
}

// 出票和用户权益标记在同一事务内落库
// 并发确认时由uk_user_season唯一索引兜底，冲突原样抛给上层判断
func (repo *TicketRepository) CreateWithEntitlement(ctx context.Context, ticket *model.SeasonTicket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("user_id=?", ticket.UserId).Updates(map[string]interface{}{
			"has_season_ticket":  true,
			"season_ticket_year": ticket.SeasonYear,
			"update_at":          time.Now(),
		}).Error
	})
}

// has_season_ticket/season_ticket_year是票表的冗余缓存，此方法用于修复和对账
func (repo *TicketRepository) RecomputeEntitlement(ctx context.Context, userId uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest model.SeasonTicket
		err := tx.Where("user_id=? AND is_active=?", userId, true).
			Order("create_at desc").First(&latest).Error
		if err != nil {
			if IsNotFound(err) {
				return tx.Model(&model.User{}).Where("user_id=?", userId).Updates(map[string]interface{}{
					"has_season_ticket":  false,
					"season_ticket_year": 0,
					"update_at":          time.Now(),
				}).Error
			}
			return err
		}
		return tx.Model(&model.User{}).Where("user_id=?", userId).Updates(map[string]interface{}{
			"has_season_ticket":  true,
			"season_ticket_year": latest.SeasonYear,
			"update_at":          time.Now(),
		}).Error
	})
}
