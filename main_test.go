package main_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mainapp "podcatalog" // Alias the main package for clarity
	"podcatalog/internal/config"
	"podcatalog/internal/models"
)

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// newConfig builds a test configuration with no broker and no cache.
func newConfig(driver, dsn string) *config.Config {
	v := viper.New()
	config.SetDefaults(v)
	v.Set("APP_PORT", ":8081")
	v.Set("DATABASE_DRIVER", driver)
	v.Set("DATABASE_DSN", dsn)
	return config.FromViper(v)
}

func newApp(t *testing.T, cfg *config.Config) *mainapp.App {
	t.Helper()
	app, err := mainapp.NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	return app
}

func sqliteConfig() *config.Config {
	return newConfig("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

func TestHealthCheck(t *testing.T) {
	app := newApp(t, sqliteConfig())

	resp, err := app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, false, body["rabbitMQ"])
}

func TestCreateAndListProducts_InMemory(t *testing.T) {
	app := newApp(t, newConfig("memory", ""))

	payload := map[string]interface{}{
		"name":           "Trucker Hat",
		"description":    "Mesh back",
		"category":       "HATS",
		"price":          25,
		"images":         []string{"http://x/hat.png"},
		"variants":       []map[string]interface{}{{"printfulVariantId": 501, "price": 25, "size": "L"}},
		"printfulSyncId": 900,
	}
	jsonBody, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Fiber.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	require.Len(t, products[0].Variants, 1)
	assert.Nil(t, products[0].Variants[0].Size)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, newConfig("memory", ""))

	resp, err := app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}

func TestNewApp_UnknownDriver(t *testing.T) {
	_, err := mainapp.NewApp(newConfig("oracle", "whatever"))
	assert.Error(t, err)
}

func TestCreateAndListProducts_MemoryCache(t *testing.T) {
	cfg := sqliteConfig()
	cfg.CacheDriver = "memory"
	app := newApp(t, cfg)

	list := func() []models.Product {
		resp, err := app.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var products []models.Product
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
		return products
	}

	assert.Empty(t, list())

	payload := map[string]interface{}{
		"name":           "Classic Tee",
		"description":    "Soft cotton",
		"category":       "CLOTHING",
		"price":          20,
		"images":         []string{"http://x/tee.png"},
		"variants":       []map[string]interface{}{{"printfulVariantId": 111, "price": 20}},
		"printfulSyncId": 42,
	}
	jsonBody, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Fiber.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	products := list()
	require.Len(t, products, 1)
	assert.Equal(t, "Classic Tee", products[0].Name)
}

func TestNewApp_UnknownCacheDriver(t *testing.T) {
	cfg := newConfig("memory", "")
	cfg.CacheDriver = "memcached"
	_, err := mainapp.NewApp(cfg)
	assert.Error(t, err)
}
