package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nestle-in-be/internal/bootstrap"
	"nestle-in-be/internal/config"
	"nestle-in-be/internal/entity"
	"nestle-in-be/internal/pkg/serverutils"
	"nestle-in-be/internal/repository/implementation"
	"nestle-in-be/internal/server"
	"nestle-in-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var podTimeSlots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

func seedTestPods(t *testing.T, db *gorm.DB) {
	t.Helper()

	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	unavailable := map[string]bool{"C": true, "G": true}

	pods := make([]*entity.Pod, 0, len(names))
	for i, name := range names {
		pods = append(pods, &entity.Pod{
			Id:        i + 1,
			Name:      name,
			Available: !unavailable[name],
			TimeSlots: podTimeSlots,
			CreatedAt: time.Now(),
		})
	}
	require.NoError(t, implementation.NewPodRepository(db).Seed(t.Context(), pods))
}

// newTestApp wires the full container over an in-memory database. NATS and
// Redis point at closed ports so the container falls back to its degraded
// (no-op) mode, the same way production survives a broker outage.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	seedTestPods(t, db)

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "logs", "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
			NatsURL:            "nats://127.0.0.1:1",
			RedisURL:           "redis://127.0.0.1:1",
		},
		Chat: config.ChatConfig{
			ResponderMode:      "keyword",
			MessageLogTopic:    "CHAT_MESSAGE_LOG_TEST",
			PodCacheTTLSeconds: 30,
		},
	}

	container := bootstrap.NewContainer(db, cfg)
	return server.New(cfg, container).GetApp()
}

func request(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) serverutils.BaseResponse[T] {
	t.Helper()

	var out serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
