package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/superhecht1/praxida/domain"
	"github.com/superhecht1/praxida/internal/config"
	"github.com/superhecht1/praxida/internal/infrastructure/auth"
	"github.com/superhecht1/praxida/internal/infrastructure/database"
	"github.com/superhecht1/praxida/internal/infrastructure/repositories"
	"github.com/superhecht1/praxida/internal/observability"
	"github.com/superhecht1/praxida/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  *observability.Metrics

	DB          *gorm.DB
	RedisClient *redis.Client

	TenantRepo  domain.TenantRepository
	UserRepo    domain.UserRepository
	AttemptRepo domain.LoginAttemptRepository
	SessionRepo domain.SessionRepository
	ClientRepo  domain.ClientRecordRepository

	PasswordSvc domain.PasswordService
	CarrierSvc  domain.CarrierService
	ThrottleSvc domain.ThrottleService
	SessionSvc  domain.SessionService
	AuthSvc     domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	log, err := observability.NewLogger(cfg.GinMode)
	if err != nil {
		return nil, err
	}
	c.Logger = log
	c.Registry = prometheus.NewRegistry()
	c.Metrics = observability.NewMetrics(c.Registry)

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.TenantRepo = repositories.NewTenantRepository(db)
	c.UserRepo = repositories.NewUserRepository(db)
	c.AttemptRepo = repositories.NewLoginAttemptRepository(db)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient)
	c.ClientRepo = repositories.NewClientRecordRepository(db)

	c.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	c.CarrierSvc = auth.NewCarrierService(cfg.CarrierSecret, cfg.CarrierIssuer, cfg.SessionTTL)
	c.ThrottleSvc = services.NewThrottleService(c.AttemptRepo, cfg.ThrottleThreshold, cfg.ThrottleWindow, log, c.Metrics)
	c.SessionSvc = services.NewSessionService(c.SessionRepo, c.UserRepo, cfg.SessionTTL, cfg.RollingSessions, log, c.Metrics)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo, c.TenantRepo, c.AttemptRepo,
		c.SessionSvc, c.ThrottleSvc, c.PasswordSvc, c.CarrierSvc,
		cfg.MinPasswordLength, cfg.SessionTTL, log, c.Metrics,
	)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
