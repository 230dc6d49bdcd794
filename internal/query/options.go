package query

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Option 列表查询策略，各端点按需组合搜索、过滤、排序、分页等能力
type Option func(*gorm.DB) *gorm.DB

// Apply 依次应用查询策略
func Apply(db *gorm.DB, opts ...Option) *gorm.DB {
	for _, opt := range opts {
		if opt != nil {
			db = opt(db)
		}
	}
	return db
}

// Search 在指定列上做不区分大小写的关键字搜索
func Search(keyword string, columns ...string) Option {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || len(columns) == 0 {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		pattern := "%" + strings.ToLower(keyword) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, fmt.Sprintf("lower(%s) LIKE ?", col))
			args = append(args, pattern)
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// CampaignStatus 按活动状态过滤: active / upcoming / ended / successful
func CampaignStatus(status string, now time.Time) Option {
	today := dateOf(now)
	switch status {
	case "active":
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("start_date <= ? AND end_date >= ?", today, today)
		}
	case "upcoming":
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("start_date > ?", today)
		}
	case "ended":
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("end_date < ?", today)
		}
	case "successful":
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("current_amount >= target_amount")
		}
	default:
		return nil
	}
}

// ActiveOn 过滤在指定日期处于活动期内的项目
func ActiveOn(date time.Time) Option {
	day := dateOf(date)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date <= ? AND end_date >= ?", day, day)
	}
}

// TargetRange 按目标金额区间过滤，0表示不限
func TargetRange(min, max int64) Option {
	if min <= 0 && max <= 0 {
		return nil
	}
	return func(db *gorm.DB) *gorm.DB {
		if min > 0 {
			db = db.Where("target_amount >= ?", min)
		}
		if max > 0 {
			db = db.Where("target_amount <= ?", max)
		}
		return db
	}
}

// OwnedBy 按所有者过滤
func OwnedBy(ownerId int64) Option {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerId)
	}
}

// OnlyActive 只保留未下架的项目
func OnlyActive() Option {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// SortBy 白名单排序，非法字段回退到默认排序。字段前缀"-"表示降序
func SortBy(field, defaultField string, allowed ...string) Option {
	chosen := defaultField
	for _, candidate := range allowed {
		if field == candidate {
			chosen = field
			break
		}
	}
	column := chosen
	desc := false
	if strings.HasPrefix(chosen, "-") {
		column = chosen[1:]
		desc = true
	}
	return func(db *gorm.DB) *gorm.DB {
		if desc {
			return db.Order(column + " DESC")
		}
		return db.Order(column + " ASC")
	}
}

// 分页默认值与允许的每页数量
const DefaultPageSize = 12

var allowedPageSizes = []int{10, 12, 25, 50, 100}

// NormalizePage 规范化页码和每页数量，非法值回退默认
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	valid := false
	for _, size := range allowedPageSizes {
		if pageSize == size {
			valid = true
			break
		}
	}
	if !valid {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

// Paginate 分页
func Paginate(page, pageSize int) Option {
	page, pageSize = NormalizePage(page, pageSize)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// dateOf 截断到自然日
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
