package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/matchhire/matchhire/internal/ai/analyzer"
	"github.com/matchhire/matchhire/internal/ai/embeddings"
	"github.com/matchhire/matchhire/internal/ai/extractor"
	"github.com/matchhire/matchhire/internal/textextract"
	"github.com/matchhire/matchhire/pkg/fsx"
	"github.com/matchhire/matchhire/pkg/fsx/fsxlocal"
	"github.com/matchhire/matchhire/pkg/fsx/fsxs3"
	"github.com/matchhire/matchhire/pkg/logx"
	"github.com/matchhire/matchhire/recruitment/candidate/candidateapi"
	"github.com/matchhire/matchhire/recruitment/candidate/candidateinfra"
	"github.com/matchhire/matchhire/recruitment/candidate/candidatesrv"
	"github.com/matchhire/matchhire/recruitment/job/jobapi"
	"github.com/matchhire/matchhire/recruitment/job/jobinfra"
	"github.com/matchhire/matchhire/recruitment/job/jobsrv"
	"github.com/matchhire/matchhire/recruitment/match/matchinfra"
	"github.com/matchhire/matchhire/recruitment/match/matchsrv"
	"github.com/matchhire/matchhire/recruitment/report/reportapi"
	"github.com/matchhire/matchhire/recruitment/report/reportsrv"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB       *sqlx.DB
	Redis    *redis.Client
	S3Client *s3.Client
	Storage  fsx.FileSystem
	Staging  fsx.FileSystem

	// AI Components
	Extractor  *extractor.Extractor
	Embeddings *embeddings.Generator
	Analyzer   *analyzer.Analyzer

	// Domain Services
	JobService       *jobsrv.JobService
	MatchService     *matchsrv.MatchService
	CandidateService *candidatesrv.CandidateService
	ReportService    *reportsrv.ReportService

	// API Handlers
	JobHandlers       *jobapi.Handlers
	CandidateHandlers *candidateapi.Handlers
	ReportHandlers    *reportapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	if err := godotenv.Load(); err != nil {
		logx.Debugf("No .env file loaded: %v", err)
	}

	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. AWS S3 Configuration
	awsRegion := os.Getenv("AWS_REGION")
	awsBucket := os.Getenv("AWS_BUCKET")
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
	if err != nil {
		logx.Fatalf("unable to load SDK config, %v", err)
	}
	c.S3Client = s3.NewFromConfig(cfg)
	c.Storage = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "uploads")

	// 4. Local staging area for uploads in flight
	stagingDir := os.Getenv("STAGING_DIR")
	if stagingDir == "" {
		stagingDir = filepath.Join(os.TempDir(), "matchhire")
	}
	staging, err := fsxlocal.NewLocalFileSystem(stagingDir)
	if err != nil {
		logx.Fatalf("Failed to create staging directory %s: %v", stagingDir, err)
	}
	c.Staging = staging

	// 5. OpenAI Components
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logx.Warn("OPENAI_API_KEY is not set, extraction and matching will fail")
	}
	c.Extractor = extractor.NewExtractor(apiKey)
	c.Embeddings = embeddings.NewGenerator(apiKey)
	c.Analyzer = analyzer.NewAnalyzer(apiKey)
}

func (c *Container) initServices() {
	// --- Repositories ---
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)
	matchRepo := matchinfra.NewPostgresMatchRepository(c.DB)
	activeJobCache := jobinfra.NewRedisActiveJobCache(c.Redis)

	// --- Domain Services ---
	c.JobService = jobsrv.NewJobService(
		jobRepo,
		activeJobCache,
		c.Extractor,
		c.Embeddings,
		c.Storage,
	)

	c.MatchService = matchsrv.NewMatchService(
		c.Embeddings,
		c.Analyzer,
		matchRepo,
	)

	c.CandidateService = candidatesrv.NewCandidateService(
		candidateRepo,
		jobRepo,
		c.MatchService,
		c.Extractor,
		textextract.Service{},
		c.Staging,
		c.Storage,
	)

	c.ReportService = reportsrv.NewReportService(
		candidateRepo,
		matchRepo,
		jobRepo,
	)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.ReportHandlers = reportapi.NewHandlers(c.ReportService)
}
