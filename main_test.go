package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario/internal/config"
	"inventario/internal/database"
	"inventario/internal/repositories"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(name string) config.Config {
	return config.Config{
		AppPort:        ":0",
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    "file:" + name + "?mode=memory&cache=shared",
		StorageKey:     repositories.DefaultStorageKey,
		SeedCount:      5,
		JWTSecret:      "main_test_secret",
		Location:       time.UTC,
	}
}

func setupApp(t *testing.T) (*fiber.App, *repositories.GORMProductStorage) {
	t.Helper()
	cfg := testConfig(t.Name())
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return newApp(context.Background(), cfg, db, nil), repositories.NewGORMProductStorage(db, cfg.StorageKey)
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "disabled", body["sharing"])
}

func TestNewAppSeedsStorage(t *testing.T) {
	_, storage := setupApp(t)

	products, err := storage.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestProtectedRoutes(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/register", map[string]string{
		"username": "gerente",
		"email":    "gerente@example.com",
		"password": "senha-segura",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/auth/login", map[string]string{
		"username": "gerente",
		"password": "senha-segura",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=quantity&direction=desc", nil)
	req.Header.Set("Authorization", "Bearer "+login["token"])
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list struct {
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, 5, list.Count)
	for i := 1; i < len(list.Items); i++ {
		assert.GreaterOrEqual(t, list.Items[i-1].Quantity, list.Items[i].Quantity)
	}
}
