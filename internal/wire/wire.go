package wire

import (
	"Townsquare/internal/api"
	"Townsquare/internal/api/config"
	"Townsquare/internal/api/handler"
	"Townsquare/internal/job"
	"Townsquare/internal/pkg/cron"
	"Townsquare/internal/pkg/storage"
	"Townsquare/internal/pkg/telegram"
	"Townsquare/internal/repository"
	"Townsquare/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	Sweeper *job.ExpirySweeper
}

func BuildApplication(db *gorm.DB, fileStorage storage.FileStorage, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	postRepo := repository.NewPostRepo(db)
	moderationRepo := repository.NewModerationRepo(db)
	actionRepo := repository.NewPostActionRepo(db)

	tgClient := telegram.NewClient(cfg.Telegram)

	notifyService := service.NewNotifyService(userRepo, tgClient, fileStorage, *cfg)
	userService := service.NewUserService(userRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	postService := service.NewPostService(postRepo, userRepo, categoryRepo, notifyService)
	moderationService := service.NewModerationService(postRepo, moderationRepo, notifyService)
	actionService := service.NewPostActionService(actionRepo, postRepo)
	feedService := service.NewFeedService(userRepo, postRepo, actionRepo)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		CategoryHandler:   handler.NewCategoryHandler(categoryService),
		PostHandler:       handler.NewPostHandler(postService),
		FeedHandler:       handler.NewFeedHandler(feedService),
		PostActionHandler: handler.NewPostActionHandler(actionService),
		ModerationHandler: handler.NewModerationHandler(moderationService),
		MediaHandler:      handler.NewMediaHandler(fileStorage),
	}

	router := api.SetupRouter(handlers, cfg)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(fileStorage))

	sweeper := job.NewExpirySweeper(postRepo, notifyService,
		time.Duration(cfg.Sweep.IntervalMinutes)*time.Minute,
		time.Duration(cfg.Sweep.BackoffMinutes)*time.Minute)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
		Sweeper: sweeper,
	}, nil
}
