// cmd/container.go
//
// Root composition root. Owns infrastructure (DB, Redis, storage) and
// wires the analysis pipeline. This is the only place that knows about
// every module.
package main

import (
	"bytes"
	"context"
	"os"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/fieldlift/fieldlift/pkg/analyze"
	"github.com/fieldlift/fieldlift/pkg/auth"
	"github.com/fieldlift/fieldlift/pkg/config"
	"github.com/fieldlift/fieldlift/pkg/extract"
	"github.com/fieldlift/fieldlift/pkg/extract/providers/extanthropic"
	"github.com/fieldlift/fieldlift/pkg/extract/providers/extopenai"
	"github.com/fieldlift/fieldlift/pkg/fsx"
	"github.com/fieldlift/fieldlift/pkg/fsx/fsxlocal"
	"github.com/fieldlift/fieldlift/pkg/fsx/fsxs3"
	"github.com/fieldlift/fieldlift/pkg/history"
	"github.com/fieldlift/fieldlift/pkg/history/historypg"
	"github.com/fieldlift/fieldlift/pkg/logx"
	"github.com/fieldlift/fieldlift/pkg/render"
	"github.com/fieldlift/fieldlift/pkg/render/renderpdf"
)

// Container holds shared infrastructure and the wired analysis module.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Modules
	Extractor       extract.Extractor
	AnalyzeService  *analyze.Service
	AnalyzeHandlers *analyze.Handlers
	Cache           *render.DocumentCache
	History         history.Store
	AuthMiddleware  *auth.Middleware
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure: DB, Redis, file storage
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	if c.Config.Database.Enabled {
		db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.DB = db
		logx.Info("Database connected")
	}

	if c.Config.Cache.Backend == "redis" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Fatalf("Failed to connect to Redis: %v", err)
		}
		logx.Info("Redis connected")
	}

	c.initFileStorage()
}

func (c *Container) initFileStorage() {
	switch c.Config.Storage.Mode {
	case "s3":
		awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(),
			awsConfig.WithRegion(c.Config.Storage.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.New(c.S3Client, c.Config.Storage.AWSBucket, "")
		logx.Infof("S3 storage configured (bucket: %s, region: %s)",
			c.Config.Storage.AWSBucket, c.Config.Storage.AWSRegion)

	case "local":
		localFS, err := fsxlocal.New(c.Config.Storage.UploadDir)
		if err != nil {
			logx.Fatalf("Failed to initialize local storage: %v", err)
		}
		c.FileSystem = localFS
		logx.Infof("Local storage configured (path: %s)", c.Config.Storage.UploadDir)

	default:
		logx.Fatalf("Unknown STORAGE_MODE: %s (use 'local' or 's3')", c.Config.Storage.Mode)
	}
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	c.Extractor = c.buildExtractor()

	validatorOpts := []analyze.ValidatorOption{}
	if c.Config.Extract.StrictTypes {
		validatorOpts = append(validatorOpts, analyze.WithStrictTypes())
	}

	svcOpts := []analyze.ServiceOption{
		analyze.WithChunkLimit(c.Config.Extract.ChunkSize),
		analyze.WithMaxConcurrency(c.Config.Extract.MaxConcurrency),
		analyze.WithValidator(analyze.NewValidator(validatorOpts...)),
	}
	if c.Config.Extract.Model != "" {
		svcOpts = append(svcOpts, analyze.WithExtractOptions(extract.WithModel(c.Config.Extract.Model)))
	}
	c.AnalyzeService = analyze.NewService(c.Extractor, svcOpts...)

	c.Cache = render.NewDocumentCache(
		c.buildCacheStore(),
		c.buildRenderer(),
		render.WithCapacity(c.Config.Cache.Capacity),
		render.WithWindow(c.renderWindow()),
	)

	if c.DB != nil {
		c.History = historypg.NewPostgresStore(c.DB)
	} else {
		c.History = history.NewMemStore()
	}

	c.AnalyzeHandlers = analyze.NewHandlers(c.AnalyzeService, c.Cache, c.FileSystem, c.History)

	if c.Config.Auth.Enabled() {
		authService := auth.NewService(c.Config.Auth.Secret, 0, c.Config.Auth.Issuer)
		c.AuthMiddleware = auth.NewMiddleware(authService)
		logx.Info("Bearer authentication enabled")
	}
}

func (c *Container) buildExtractor() extract.Extractor {
	switch c.Config.Extract.Provider {
	case "anthropic":
		return extanthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
	case "openai":
		return extopenai.New(os.Getenv("OPENAI_API_KEY"))
	default:
		logx.Fatalf("Unknown EXTRACT_PROVIDER: %s (use 'openai' or 'anthropic')",
			c.Config.Extract.Provider)
		return nil
	}
}

func (c *Container) buildCacheStore() render.Store {
	if c.Redis != nil {
		return render.NewRedisStore(c.Redis, "fieldlift:render")
	}
	return render.NewMemStore()
}

// buildRenderer returns the renderer for the configured engine. The
// "auto" engine sniffs the PDF magic bytes per document.
func (c *Container) buildRenderer() render.Renderer {
	plain := render.NewPlainText()
	pdf := renderpdf.New()

	switch c.Config.Render.Engine {
	case "plain":
		return plain
	case "pdf":
		return pdf
	case "auto":
		return render.RendererFunc(func(ctx context.Context, data []byte) (string, error) {
			if bytes.HasPrefix(data, []byte("%PDF-")) {
				return pdf.Render(ctx, data)
			}
			return plain.Render(ctx, data)
		})
	default:
		logx.Fatalf("Unknown RENDER_ENGINE: %s (use 'plain', 'pdf' or 'auto')",
			c.Config.Render.Engine)
		return nil
	}
}

// renderWindow disables windowed rendering for engines that need the
// whole document at once.
func (c *Container) renderWindow() int {
	if c.Config.Render.Engine != "plain" {
		return 0
	}
	return c.Config.Render.WindowBytes
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) Cleanup() {
	logx.Info("Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		}
	}

	logx.Info("Cleanup complete")
}
