package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/hireflow/internal/config"
	"github.com/Abraxas-365/hireflow/pkg/fsx"
	"github.com/Abraxas-365/hireflow/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hireflow/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/application"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationapi"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/hireflow/recruitment/application/applicationsrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Repositories
	ApplicationRepo application.Repository
	Catalog         application.Catalog

	// Services
	ApplicationService *applicationsrv.ApplicationService

	// API Handlers
	ApplicationHandlers *applicationapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure()
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	server := c.Config.Server
	ctx := context.Background()

	// 1. Database Connection
	if server.Repository == config.RepositoryPostgres {
		db, err := sqlx.Connect("postgres", server.Database.DSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
		c.DB = db
	}

	// 2. Redis Connection
	if server.Redis.Enabled() {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     server.Redis.Addr,
			Password: server.Redis.Password,
			DB:       server.Redis.DB,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. File storage
	switch server.Storage.Driver {
	case config.StorageS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(server.Storage.Region))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, server.Storage.Bucket, server.Storage.Prefix)
		logx.Infof("Storing files in s3://%s/%s", server.Storage.Bucket, server.Storage.Prefix)
	default:
		local, err := fsxlocal.NewLocalFileSystem(server.Storage.Dir)
		if err != nil {
			logx.Fatalf("Failed to prepare storage dir: %v", err)
		}
		c.FileSystem = local
		logx.Infof("Storing files in %s", server.Storage.Dir)
	}
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		repo := applicationinfra.NewPostgresApplicationRepository(c.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := repo.Migrate(ctx); err != nil {
			logx.Fatalf("Failed to migrate applications schema: %v", err)
		}
		c.ApplicationRepo = repo
	} else {
		logx.Warn("Using in-memory application repository, data is lost on restart")
		c.ApplicationRepo = applicationinfra.NewMemoryApplicationRepository()
	}

	if c.Redis != nil {
		c.Catalog = applicationinfra.NewRedisCatalog(c.Redis, c.Config.Server.Redis.Key, application.DefaultJobPositions())
	} else {
		c.Catalog = application.StaticCatalog(application.DefaultJobPositions())
	}
}

func (c *Container) initServices() {
	c.ApplicationService = applicationsrv.NewApplicationService(
		c.ApplicationRepo,
		c.Catalog,
		c.FileSystem,
	)

	// --- Handlers ---
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
}

// Healthy reports the reachability of each configured backing service
func (c *Container) Healthy(ctx context.Context) map[string]bool {
	status := map[string]bool{}
	if c.DB != nil {
		status["db"] = c.DB.PingContext(ctx) == nil
	}
	if c.Redis != nil {
		status["redis"] = c.Redis.Ping(ctx).Err() == nil
	}
	return status
}

// Close releases the connections opened by the container
func (c *Container) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Warnf("closing database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Warnf("closing redis: %v", err)
		}
	}
}
