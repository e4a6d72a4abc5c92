package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/foodordering/food-server-go/internal/middleware"
	"github.com/foodordering/food-server-go/internal/repository/repotest"
	"github.com/foodordering/food-server-go/internal/service"
	"github.com/foodordering/food-server-go/internal/util"
)

const testPassword = "Secret@123"

type testServer struct {
	store  *repotest.Store
	router chi.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := repotest.NewStore()
	cipher := util.NewPasswordCipher(10)
	authService := service.NewAuthService(store, store.Customers(), store.Sessions(), cipher, util.NewAccessTokenIssuer("test"))
	customerService := service.NewCustomerService(store, store.Customers(), authService, cipher)
	addressService := service.NewAddressService(store, store.Addresses())

	authMiddleware := middleware.NewAuthMiddleware(authService)
	customerHandler := NewCustomerHandler(customerService, authService, nil)
	addressHandler := NewAddressHandler(addressService, authMiddleware.Handler)

	r := chi.NewRouter()
	r.Mount("/customer", customerHandler.Routes())
	r.Mount("/address", addressHandler.Routes())
	r.Get("/states", addressHandler.ListStates)

	return &testServer{store: store, router: r}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signup(t *testing.T, contact, email string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/customer/signup", map[string]string{
		"first_name":     "Asha",
		"last_name":      "Rao",
		"email_address":  email,
		"contact_number": contact,
		"password":       testPassword,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func (s *testServer) login(t *testing.T, contact string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/customer/login", nil, basicAuth(contact, testPassword))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := rec.Header().Get(middleware.AccessTokenHeader)
	require.NotEmpty(t, token)
	return token
}

func basicAuth(contact, password string) http.Header {
	encoded := base64.StdEncoding.EncodeToString([]byte(contact + ":" + password))
	return http.Header{"Authorization": []string{"Basic " + encoded}}
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
