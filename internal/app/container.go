package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lynxhire/internal/config"
	"lynxhire/internal/database"
	dbpostgres "lynxhire/internal/database/postgres"
	"lynxhire/internal/infrastructure/ai"
	"lynxhire/internal/infrastructure/cache"
	"lynxhire/internal/infrastructure/payments"
	"lynxhire/internal/infrastructure/storage"
	"lynxhire/internal/pkg/jwt"
	"lynxhire/internal/repository"
	"lynxhire/internal/scoring"
	"lynxhire/internal/usecase"
	ucuser "lynxhire/internal/usecase/user"
	"lynxhire/internal/ws"

	"github.com/sirupsen/logrus"
)

// Container owns every long-lived dependency of the API process.
type Container struct {
	Config config.Config
	Logger logrus.FieldLogger
	DB     database.DB
	Redis  *cache.Redis
	Hub    *ws.Hub
	JWT    jwt.Service

	Auth         usecase.AuthUsecase
	Users        usecase.UserUsecase
	Jobs         usecase.JobUsecase
	Descriptions usecase.JobDescriptionUsecase
	Applications usecase.ApplicationUsecase
	Matching     usecase.MatchingUsecase
	SavedJobs    usecase.SavedJobUsecase
	Billing      usecase.BillingUsecase
	Messages     usecase.MessageUsecase
	Dashboard    usecase.DashboardUsecase

	closers []func() error
}

func NewContainer(cfg config.Config, logger logrus.FieldLogger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}
	c.closers = append(c.closers, db.Close)

	if err := c.wire(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) wire(ctx context.Context) error {
	cfg := c.Config
	log := c.Logger

	c.Redis = cache.NewRedis(cfg.Redis, log.WithField("component", "cache"))
	c.closers = append(c.closers, c.Redis.Close)

	c.Hub = ws.NewHub(log.WithField("component", "ws"))
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	profiles := repository.NewPostgresProfileRepository(c.DB)
	candidates := repository.NewPostgresCandidateProfileRepository(c.DB)
	companies := repository.NewPostgresCompanyRepository(c.DB)
	jobs := repository.NewPostgresJobRepository(c.DB)
	apps := repository.NewPostgresApplicationRepository(c.DB)
	saved := repository.NewPostgresSavedJobRepository(c.DB)
	subs := repository.NewPostgresSubscriptionRepository(c.DB)
	msgs := repository.NewPostgresMessageRepository(c.DB)

	gen, err := ai.New(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("configure ai provider: %w", err)
	}
	strategy := scoringStrategy(gen)

	var files ucuser.FileStore
	uploader, err := fileStore(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	if uploader != nil {
		files = uploader
		c.closers = append(c.closers, uploader.Close)
	}

	catalog, err := config.LoadPlans(cfg.Stripe)
	if err != nil {
		return fmt.Errorf("load plans: %w", err)
	}
	billingDeps := usecase.BillingDeps{
		Subscriptions: subs,
		Profiles:      profiles,
		Guard:         c.Redis,
		Catalog:       catalog,
		PublicURL:     cfg.App.PublicURL,
		Logger:        log.WithField("component", "billing"),
	}
	if cfg.Stripe.SecretKey != "" {
		provider, err := payments.NewStripe(cfg.Stripe.SecretKey, cfg.Stripe.Timeout)
		if err != nil {
			return err
		}
		billingDeps.Provider = provider
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, checkout disabled")
	}
	if cfg.Stripe.WebhookSecret != "" {
		verifier, err := payments.NewWebhookVerifier(cfg.Stripe.WebhookSecret)
		if err != nil {
			return err
		}
		billingDeps.Verifier = verifier
	} else {
		log.Warn("STRIPE_WEBHOOK_SECRET not set, billing webhooks disabled")
	}

	c.Auth = usecase.NewAuthUsecase(profiles, c.JWT)
	c.Users = usecase.NewUserUsecase(ucuser.NewService(profiles, candidates, companies, files, log.WithField("component", "profiles")))
	c.Jobs = usecase.NewJobUsecase(jobs, companies, c.Redis, log.WithField("component", "jobs"))
	c.Descriptions = usecase.NewJobDescriptionUsecase(gen, log.WithField("component", "job_descriptions"))
	c.Applications = usecase.NewApplicationUsecase(apps, jobs, profiles, candidates, c.Hub, log.WithField("component", "applications"))
	c.Matching = usecase.NewMatchingUsecase(apps, jobs, candidates, strategy, log.WithField("component", "scoring"))
	c.SavedJobs = usecase.NewSavedJobUsecase(saved, jobs, log.WithField("component", "saved_jobs"))
	c.Billing = usecase.NewBillingUsecase(billingDeps)
	c.Messages = usecase.NewMessageUsecase(msgs, profiles, c.Hub, log.WithField("component", "messages"))
	c.Dashboard = usecase.NewDashboardUsecase(apps, saved, jobs, log.WithField("component", "dashboard"))

	return nil
}

// scoringStrategy prefers the language model and falls back to skill overlap.
func scoringStrategy(gen scoring.TextGenerator) scoring.Strategy {
	if gen == nil {
		return scoring.NewSkillOverlap()
	}
	return scoring.NewLLM(gen)
}

func fileStore(ctx context.Context, cfg config.StorageConfig, log logrus.FieldLogger) (*storage.GCSUploader, error) {
	if cfg.Bucket == "" {
		log.Warn("GCS_BUCKET not set, uploads disabled")
		return nil, nil
	}
	up, err := storage.NewGCSUploader(ctx, cfg.Bucket, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("configure storage: %w", err)
	}
	return up, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
