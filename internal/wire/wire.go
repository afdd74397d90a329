package wire

import (
	"Jandi/internal/api"
	"Jandi/internal/api/config"
	"Jandi/internal/api/handler"
	"Jandi/internal/pkg/kafka"
	"Jandi/internal/pkg/rss"
	"Jandi/internal/pkg/security"
	"Jandi/internal/repository"
	"Jandi/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func BuildApplication(db *gorm.DB, cfg *config.Config, producer *kafka.Producer) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	platformRepo := repository.NewPlatformRepo(db)
	mappingRepo := repository.NewUserPlatformRepo(db)
	aggregateRepo := repository.NewAggregateRepo(db)

	issuer := security.NewChallengeIssuer(cfg.Challenge.Secret, cfg.ChallengeTTL())
	registry := rss.DefaultRegistry(rss.NewClient(cfg.RSSTimeout()))
	verifier := service.NewOwnershipVerifier(registry, issuer, cfg.RSS.VerifyScan)

	userService := service.NewUserService(userRepo)
	platformService := service.NewPlatformService(
		db,
		platformRepo,
		mappingRepo,
		aggregateRepo,
		issuer,
		verifier,
		producer,
		cfg.Kafka.ArticleTopic,
	)

	handlers := &api.HandlersGroup{
		UserHandler:     handler.NewUserHandler(userService),
		PlatformHandler: handler.NewPlatformHandler(platformService),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
	}, nil
}
