package views

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onionfightclub-arch/neon-cyber-store/app/api"
	"github.com/onionfightclub-arch/neon-cyber-store/models"
	"github.com/onionfightclub-arch/neon-cyber-store/services/insight"
	"github.com/onionfightclub-arch/neon-cyber-store/services/storefront"
)

// --- Helpers ---

// newTestService runs the real state container offline so the insight and
// greeting resolve to their fixed fallbacks.
func newTestService(t *testing.T) (*storefront.Service, string) {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	svc := storefront.NewService(models.NewDefaultCatalog(), insight.NewClient(nil, logger), storefront.NewMemoryStore(time.Hour), logger, 0)
	t.Cleanup(svc.Wait)

	id, err := svc.NewSession(context.Background())
	require.NoError(t, err)
	svc.Wait()
	return svc, id
}

func newRequest(method, url, body, sessionID string, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req = req.WithContext(api.WithSessionID(req.Context(), sessionID))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeScreen(t *testing.T, rec *httptest.ResponseRecorder) ScreenResponse {
	t.Helper()
	var resp ScreenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	return errResp["error"]
}

// --- Tests ---

func TestHandleGetHome(t *testing.T) {
	svc, id := newTestService(t)
	handler := NewViewHandler(svc)
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, newRequest("GET", "/view", "", id, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeScreen(t, rec)
	assert.Equal(t, "home", resp.Route)
	require.NotNil(t, resp.Home)
	assert.Nil(t, resp.Product)
	assert.Nil(t, resp.Cart)
	assert.Nil(t, resp.Restricted)
	assert.Equal(t, insight.GreetingOffline, resp.Home.Greeting)
	assert.Len(t, resp.Home.Products, 6)
	assert.Len(t, resp.Home.Categories, 4)
	assert.Equal(t, models.AllCategories, resp.Home.Category)
}

func TestHandleOpenProduct(t *testing.T) {
	svc, id := newTestService(t)
	handler := NewViewHandler(svc)

	rec := httptest.NewRecorder()
	handler.HandleOpenProduct(rec, newRequest("POST", "/view/products/3", "", id, map[string]string{"id": "3"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeScreen(t, rec)
	assert.Equal(t, "product", resp.Route)
	require.NotNil(t, resp.Product)
	assert.Equal(t, "Stealth Weave Trench", resp.Product.Product.Name)

	svc.Wait()
	rec = httptest.NewRecorder()
	handler.HandleGet(rec, newRequest("GET", "/view", "", id, nil))
	resp = decodeScreen(t, rec)
	require.NotNil(t, resp.Product)
	assert.False(t, resp.Product.InsightLoading)
	assert.Equal(t, insight.InsightOffline, resp.Product.Insight)

	rec = httptest.NewRecorder()
	handler.HandleOpenProduct(rec, newRequest("POST", "/view/products/99", "", id, map[string]string{"id": "99"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decodeError(t, rec))
}

func TestHandleNavigate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Cart",
			requestBody:        `{"route":"cart"}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeScreen(t, rec)
				assert.Equal(t, "cart", resp.Route)
				require.NotNil(t, resp.Cart)
				assert.Len(t, resp.Cart.Items, 0)
			},
		},
		{
			name:               "Restricted",
			requestBody:        `{"route":"restricted"}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeScreen(t, rec)
				require.NotNil(t, resp.Restricted)
				assert.Equal(t, 403, resp.Restricted.Code)
				assert.Equal(t, "Access Restricted", resp.Restricted.Title)
			},
		},
		{
			name:               "Home",
			requestBody:        `{"route":"HOME"}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "home", decodeScreen(t, rec).Route)
			},
		},
		{
			name:               "Product without selection",
			requestBody:        `{"route":"product"}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Product route requires a product", decodeError(t, rec))
			},
		},
		{
			name:               "Unknown route",
			requestBody:        `{"route":"holding"}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Unknown route", decodeError(t, rec))
			},
		},
		{
			name:               "Invalid JSON body",
			requestBody:        `{`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid JSON body", decodeError(t, rec))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			svc, id := newTestService(t)
			handler := NewViewHandler(svc)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleNavigate(rec, newRequest("POST", "/view/navigate", tc.requestBody, id, nil))

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleFilters(t *testing.T) {
	svc, id := newTestService(t)
	handler := NewViewHandler(svc)

	rec := httptest.NewRecorder()
	handler.HandleFilters(rec, newRequest("POST", "/view/filters", `{"category":"gadgets"}`, id, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeScreen(t, rec)
	require.NotNil(t, resp.Home)
	assert.Equal(t, "gadgets", resp.Home.Category)
	assert.Len(t, resp.Home.Products, 2)

	rec = httptest.NewRecorder()
	handler.HandleFilters(rec, newRequest("POST", "/view/filters", `{"query":"cipher"}`, id, nil))
	resp = decodeScreen(t, rec)
	require.Len(t, resp.Home.Products, 1)
	assert.Equal(t, "6", resp.Home.Products[0].ID)
	assert.Equal(t, "cipher", resp.Home.Query)
}

func TestHandleGetUnknownSession(t *testing.T) {
	svc, _ := newTestService(t)
	handler := NewViewHandler(svc)
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, newRequest("GET", "/view", "", "missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Session not found", decodeError(t, rec))
}

// --- Mock Service for error paths ---

type failingViewService struct {
	err error
}

func (f failingViewService) Render(ctx context.Context, sessionID string) (storefront.Screen, error) {
	return storefront.Screen{}, f.err
}

func (f failingViewService) Navigate(ctx context.Context, sessionID string, route models.Route) (storefront.Screen, error) {
	return storefront.Screen{}, f.err
}

func (f failingViewService) OpenProduct(ctx context.Context, sessionID, productID string) (storefront.Screen, error) {
	return storefront.Screen{}, f.err
}

func (f failingViewService) SetFilters(ctx context.Context, sessionID string, query, category *string) (storefront.Screen, error) {
	return storefront.Screen{}, f.err
}

func TestHandleGetServiceError(t *testing.T) {
	handler := NewViewHandler(failingViewService{err: errors.New("store offline")})
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, newRequest("GET", "/view", "", "s1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "failed to render view", decodeError(t, rec))
}

func TestNewScreenResponseRejectsIncompleteScreen(t *testing.T) {
	_, err := NewScreenResponse(storefront.Screen{Route: models.RouteCart})
	assert.Error(t, err)

	_, err = NewScreenResponse(storefront.Screen{Route: models.Route(7)})
	assert.ErrorIs(t, err, models.ErrUnknownRoute)
}
