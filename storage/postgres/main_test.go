package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"ucode/ucode_go_report_builder_service/config"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	"ucode/ucode_go_report_builder_service/storage"
	"ucode/ucode_go_report_builder_service/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/manveru/faker"
	"github.com/stretchr/testify/assert"
)

const projectId = ""

var (
	err      error
	cfg      config.Config
	strg     storage.StorageI
	fakeData *faker.Faker
)

func CreateRandomId(t *testing.T) string {
	id, err := uuid.NewRandom()
	assert.NoError(t, err)
	return id.String()
}

// the code should take the config from the environment
func TestMain(m *testing.M) {
	var loggerLevel string
	cfg = config.Load()

	if cfg.PostgresHost == "" {
		fmt.Println("POSTGRES_HOST is not set, skipping storage tests")
		os.Exit(0)
	}

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer func() {
		_ = logger.Cleanup(log)
	}()

	strg, err = postgres.NewPostgres(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer strg.CloseDB()

	fakeData, err = faker.New("en")
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
