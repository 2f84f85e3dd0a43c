package utils

import (
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 分页
func GetLimitAndOffset(page, pageSize int) (limit, offset int) {
	if pageSize > 0 {
		limit = pageSize
	} else {
		limit = 20
	}
	if page > 0 {
		offset = (page - 1) * limit
	} else {
		offset = 0
	}
	return limit, offset
}

// UUID
func GetUUID() string {
	return uuid.New().String()
}

var node *snowflake.Node

func init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// 赛季票ID，雪花算法生成
func GetTicketId() int64 {
	return node.Generate().Int64()
}

// 分转元
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

const bcryptCost = 12

// 密码加密
func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// 密码校验
func CheckPassword(pwd, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}
