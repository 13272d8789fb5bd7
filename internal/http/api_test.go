package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightsteps/backend/internal/backend"
	"brightsteps/backend/internal/models"
	"brightsteps/backend/internal/store"
)

func newTestAPI(t *testing.T) (http.Handler, *backend.Memory) {
	t.Helper()
	mem := backend.NewMemory()
	uid := mem.SeedAccount("admin@brightsteps.ac", "secret123")
	require.NoError(t, mem.Set(context.Background(), store.ColUsers, uid, models.User{
		ID:    uid,
		Name:  "Head Office",
		Email: "admin@brightsteps.ac",
		Role:  models.RoleSuperAdmin,
	}))

	s := store.New(mem)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, s.Start(ctx))
	t.Cleanup(s.Stop)

	return API{Store: s}.Router(), mem
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func loginAdmin(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@brightsteps.ac",
		"password": "secret123",
		"role":     string(models.RoleSuperAdmin),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthz(t *testing.T) {
	handler, _ := newTestAPI(t)
	rec := doJSON(t, handler, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailureModes(t *testing.T) {
	handler, _ := newTestAPI(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "admin@brightsteps.ac", "password": "wrong", "role": string(models.RoleSuperAdmin),
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "admin@brightsteps.ac", "password": "secret123", "role": string(models.RoleParent),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "admin@brightsteps.ac", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	handler, _ := newTestAPI(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/students", "made-up-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMeLogoutRoundTrip(t *testing.T) {
	handler, _ := newTestAPI(t)
	token := loginAdmin(t, handler)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, models.RoleSuperAdmin, me.Role)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "token dies with the session")
}

func TestPublicApplicationThenAdminReview(t *testing.T) {
	handler, _ := newTestAPI(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/applications/staff", "", map[string]string{
		"full_name": "Joy Wambui",
		"email":     "joy@example.com",
		"position":  "Occupational Therapist",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	token := loginAdmin(t, handler)
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/applications/staff", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var applications []models.StaffApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &applications))
	require.Len(t, applications, 1)
	assert.Equal(t, models.ApplicationPending, applications[0].Status)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/applications/staff/"+created.ID+"/status", token,
		map[string]string{"status": models.ApplicationApproved})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShopCartOrderFlow(t *testing.T) {
	handler, _ := newTestAPI(t)
	token := loginAdmin(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/orders", token, map[string]string{
		"student_id": "BS-0001", "payment_method": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty cart is rejected")

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/shop/items", token, map[string]any{
		"name": "Polo Shirt", "price": 800.0, "category": "Required", "stock": 25,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"item_id": saved.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/cart/items", token, map[string]string{"item_id": saved.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart struct {
		Items []models.CartItem `json:"items"`
		Total float64           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 1600.0, cart.Total)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/orders", token, map[string]string{
		"student_id": "BS-0001", "payment_method": "mpesa",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusUncollected, orders[0].Status)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/cart", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
}

func TestCapabilityEnforcement(t *testing.T) {
	handler, mem := newTestAPI(t)
	uid := mem.SeedAccount("parent@example.com", "secret123")
	require.NoError(t, mem.Set(context.Background(), store.ColUsers, uid, models.User{
		ID: uid, Name: "Grace", Email: "parent@example.com", Role: models.RoleParent,
	}))

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "parent@example.com", "password": "secret123", "role": string(models.RoleParent),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/shop/items", resp.Token, map[string]any{
		"name": "Polo Shirt", "price": 800.0, "category": "Required",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, "parents cannot manage the shop")

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/system-logs", resp.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
