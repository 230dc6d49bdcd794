package scheduler

import (
	"sync"
	"time"

	"github.com/blues/cfp/internal/config"
	"github.com/blues/cfp/internal/logger"
	"github.com/blues/cfp/internal/logic"
	"github.com/blues/cfp/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// FundingReconcileJob 筹款总额对账任务。
// 贡献写入和总额更新是两次顺序写，中途崩溃会留下过期的缓存总额，
// 该任务定期按贡献记录全量重算，把缓存拉回正确值。
type FundingReconcileJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewFundingReconcileJob 创建筹款总额对账任务
func NewFundingReconcileJob(db *gorm.DB, cfg *config.Config) *FundingReconcileJob {
	return &FundingReconcileJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *FundingReconcileJob) GetName() string {
	return "funding_reconciler"
}

// GetSchedule 获取调度配置
func (j *FundingReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *FundingReconcileJob) Execute() {
	logger.Info("Starting funding reconcile task")

	var projectIds []int64
	if err := j.db.Model(&model.ProjectModel{}).Pluck("id", &projectIds).Error; err != nil {
		logger.Error("Failed to fetch project ids: %v", err)
		return
	}

	poolSize := j.config.Task.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		logger.Error("Failed to create worker pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, id := range projectIds {
		projectId := id
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if _, err := logic.RecomputeFunding(j.db, projectId); err != nil {
				logger.Error("Failed to reconcile funding for project %d: %v", projectId, err)
			}
		}); err != nil {
			wg.Done()
			logger.Error("Failed to submit reconcile task for project %d: %v", projectId, err)
		}
	}
	wg.Wait()

	logger.Info("Funding reconcile completed for %d projects", len(projectIds))
}
