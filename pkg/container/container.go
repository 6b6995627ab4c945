package container

import (
	"context"
	"fmt"

	"kculture-backend/internal/config"
	infraCache "kculture-backend/internal/infrastructure/cache"
	"kculture-backend/internal/infrastructure/database"
	"kculture-backend/internal/infrastructure/queue"
	"kculture-backend/internal/infrastructure/scraper"
	"kculture-backend/internal/infrastructure/tourapi"
	"kculture-backend/pkg/cache"
	"kculture-backend/pkg/jwt"

	contentHandler "kculture-backend/internal/domains/content/handler"
	contentRepo "kculture-backend/internal/domains/content/repository"
	contentService "kculture-backend/internal/domains/content/service"
	crawlerHandler "kculture-backend/internal/domains/crawler/handler"
	crawlerService "kculture-backend/internal/domains/crawler/service"
	spotHandler "kculture-backend/internal/domains/spot/handler"
	spotRepo "kculture-backend/internal/domains/spot/repository"
	spotService "kculture-backend/internal/domains/spot/service"
	tourHandler "kculture-backend/internal/domains/tour/handler"
	tourRepo "kculture-backend/internal/domains/tour/repository"
	tourService "kculture-backend/internal/domains/tour/service"
	userHandler "kculture-backend/internal/domains/user/handler"
	userRepo "kculture-backend/internal/domains/user/repository"
	userService "kculture-backend/internal/domains/user/service"
)

// Container wires the whole dependency graph. Everything in it is a
// singleton built once at startup.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	TourClient  *tourapi.Client
	Scraper     *scraper.Scraper
	QueueClient *queue.Client

	SpotService    *spotService.SpotService
	ContentService *contentService.ContentService
	TourService    *tourService.TourService
	AuthService    *userService.AuthService
	CrawlerService *crawlerService.CrawlerService

	SpotHandler    *spotHandler.Handler
	ContentHandler *contentHandler.Handler
	TourHandler    *tourHandler.Handler
	AuthHandler    *userHandler.Handler
	CrawlerHandler *crawlerHandler.Handler

	redis *infraCache.RedisCache
}

// NewContainer builds the graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	if err := c.initDomains(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	c.DB = database.NewPostgresDB(&c.Config.Database)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	c.redis = infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := c.redis.Connect(ctx); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	c.Cache = c.redis

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessExpiry, c.Config.JWT.RefreshExpiry)

	c.TourClient = tourapi.NewClient(c.Config.TourAPI)
	c.Scraper = scraper.New(c.Config.TourAPI.Timeout)
	c.QueueClient = queue.NewClient(c.Config.Redis)

	return nil
}

func (c *Container) initDomains() error {
	pool := c.DB.Pool

	spots, err := spotRepo.NewPostgresRepository(pool)
	if err != nil {
		return fmt.Errorf("spot repository: %w", err)
	}
	contents, err := contentRepo.NewPostgresRepository(pool)
	if err != nil {
		return fmt.Errorf("content repository: %w", err)
	}
	tours, err := tourRepo.NewPostgresRepository(pool)
	if err != nil {
		return fmt.Errorf("tour repository: %w", err)
	}
	users, err := userRepo.NewPostgresRepository(pool)
	if err != nil {
		return fmt.Errorf("user repository: %w", err)
	}

	c.SpotService = spotService.NewSpotService(spots, c.Cache)
	c.ContentService = contentService.NewContentService(contents)
	c.TourService = tourService.NewTourService(tours)
	c.AuthService = userService.NewAuthService(users, c.JWTManager, c.Config.JWT.AccessExpiry)
	c.CrawlerService = crawlerService.NewCrawlerService(
		c.TourClient, c.SpotService, c.Scraper, c.Cache, c.Config.Crawler.BatchDelay)

	c.SpotHandler = spotHandler.NewHandler(c.SpotService)
	c.ContentHandler = contentHandler.NewHandler(c.ContentService)
	c.TourHandler = tourHandler.NewHandler(c.TourService)
	c.AuthHandler = userHandler.NewHandler(c.AuthService)
	c.CrawlerHandler = crawlerHandler.NewHandler(c.QueueClient, c.CrawlerService)

	return nil
}

// HealthCheck pings the database and the cache.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Cleanup releases all connections, newest first.
func (c *Container) Cleanup() {
	if c.QueueClient != nil {
		_ = c.QueueClient.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
