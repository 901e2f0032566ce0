package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/macksyx1/WhatsAppAPITestings/domain"
	"github.com/macksyx1/WhatsAppAPITestings/internal/config"
	"github.com/macksyx1/WhatsAppAPITestings/internal/infrastructure/auth"
	"github.com/macksyx1/WhatsAppAPITestings/internal/infrastructure/database"
	"github.com/macksyx1/WhatsAppAPITestings/internal/infrastructure/notifications"
	"github.com/macksyx1/WhatsAppAPITestings/internal/infrastructure/repositories"
	"github.com/macksyx1/WhatsAppAPITestings/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo domain.UserRepository
	OTPStore domain.OTPStore

	TokenSvc domain.TokenService
	Gateway  domain.MessageGateway
	AuthSvc  domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OTPStore = repositories.NewOTPStore(c.RedisClient, cfg.OTPTTL, cfg.OTPLength, nil)

	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	c.Gateway = notifications.NewWhatsAppGateway(cfg.TwilioSID, cfg.TwilioToken, cfg.WhatsAppFrom, cfg.OTPTTL)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.OTPStore, c.Gateway, c.TokenSvc, services.NewAuditLogger(), cfg.SendTimeout)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
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
