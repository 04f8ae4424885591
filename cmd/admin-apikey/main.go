package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"site-weaver.backend/internal/config"
	"site-weaver.backend/internal/domain/entities"
	domainrepo "site-weaver.backend/internal/domain/repositories"
	"site-weaver.backend/internal/infrastructure/repositories"
	"site-weaver.backend/internal/usecases"
)

// Provisions an API key with every permission for an organization, writing
// straight to the database. Meant for operators bootstrapping an environment
// before the dashboard is reachable.

var openAdminDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openAdminSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type adminApiKeyRuntime interface {
	GetOrganizationByID(ctx context.Context, orgID uuid.UUID) (*entities.Organization, error)
	CreateApiKey(ctx context.Context, orgID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error)
}

type adminApiKeyDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminApiKeyRuntime, io.Closer, error)
	now     func() time.Time
	out     io.Writer
}

type adminApiKeyRuntimeImpl struct {
	orgRepo    domainrepo.OrganizationRepository
	apiKeyCase *usecases.ApiKeyUsecase
}

func (r adminApiKeyRuntimeImpl) GetOrganizationByID(ctx context.Context, orgID uuid.UUID) (*entities.Organization, error) {
	return r.orgRepo.GetByID(ctx, orgID)
}

func (r adminApiKeyRuntimeImpl) CreateApiKey(ctx context.Context, orgID uuid.UUID, input *entities.CreateApiKeyInput) (*entities.CreateApiKeyResponse, error) {
	return r.apiKeyCase.CreateApiKey(ctx, orgID, input)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAdminApiKeyDeps() adminApiKeyDeps {
	return adminApiKeyDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminApiKeyRuntime, io.Closer, error) {
			db, err := openAdminDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openAdminSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			orgRepo := repositories.NewOrganizationRepository(db)
			apiKeyRepo := repositories.NewApiKeyRepository(db)
			return adminApiKeyRuntimeImpl{
				orgRepo:    orgRepo,
				apiKeyCase: usecases.NewApiKeyUsecase(apiKeyRepo),
			}, sqlDB, nil
		},
		now: time.Now,
		out: os.Stdout,
	}
}

func parseOrgID(orgID string) (uuid.UUID, error) {
	if orgID == "" {
		return uuid.Nil, fmt.Errorf("--org-id is required")
	}
	return uuid.Parse(orgID)
}

func resolveApiKeyName(input string, now time.Time) string {
	if input != "" {
		return input
	}
	return fmt.Sprintf("admin-%s", now.Format("20060102-150405"))
}

func allPermissionNames() []string {
	return []string{
		string(entities.PermissionReadContent),
		string(entities.PermissionWriteContent),
		string(entities.PermissionReadSite),
		string(entities.PermissionManageSite),
		string(entities.PermissionManageWebhooks),
	}
}

func runAdminApiKey(args []string, deps adminApiKeyDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.now == nil {
		deps.now = time.Now
	}
	if deps.prepare == nil {
		def := defaultAdminApiKeyDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("admin-apikey", flag.ContinueOnError)
	orgIDFlag := fs.String("org-id", "", "target organization UUID (required)")
	nameFlag := fs.String("name", "", "api key display name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	orgID, err := parseOrgID(*orgIDFlag)
	if err != nil {
		return err
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	org, err := runtime.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return fmt.Errorf("failed to load organization %s: %w", orgID, err)
	}

	name := resolveApiKeyName(*nameFlag, deps.now())

	resp, err := runtime.CreateApiKey(ctx, orgID, &entities.CreateApiKeyInput{
		Name:        name,
		Permissions: allPermissionNames(),
	})
	if err != nil {
		return fmt.Errorf("failed creating api key: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created admin API key and stored in DB")
	_, _ = fmt.Fprintf(deps.out, "organization=%s (%s)\n", org.Name, orgID.String())
	_, _ = fmt.Fprintf(deps.out, "api_key_id=%s\n", resp.ID.String())
	_, _ = fmt.Fprintf(deps.out, "name=%s\n", resp.Name)
	_, _ = fmt.Fprintf(deps.out, "API_KEY=%s\n", resp.ApiKey)
	return nil
}

func main() {
	if err := runAdminApiKey(os.Args[1:], defaultAdminApiKeyDeps()); err != nil {
		log.Fatal(err)
	}
}
