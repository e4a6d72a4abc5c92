package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/foodordering/food-server-go/internal/audit"
	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/httputil"
	"github.com/foodordering/food-server-go/internal/middleware"
	"github.com/foodordering/food-server-go/internal/service"
	"github.com/foodordering/food-server-go/internal/util"
)

const (
	StatusCustomerRegistered      = "CUSTOMER SUCCESSFULLY REGISTERED"
	MessageLoggedIn               = "LOGGED IN SUCCESSFULLY"
	MessageLoggedOut              = "LOGGED OUT SUCCESSFULLY"
	StatusCustomerDetailsUpdated  = "CUSTOMER DETAILS UPDATED SUCCESSFULLY"
	StatusCustomerPasswordUpdated = "CUSTOMER PASSWORD UPDATED SUCCESSFULLY"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	authService     *service.AuthService
	loginLimit      func(http.Handler) http.Handler
}

// NewCustomerHandler builds the /customer routes. loginLimit wraps the login
// route only and may be nil.
func NewCustomerHandler(
	customerService *service.CustomerService,
	authService *service.AuthService,
	loginLimit func(http.Handler) http.Handler,
) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		authService:     authService,
		loginLimit:      loginLimit,
	}
}

func (h *CustomerHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.Signup)
	r.Group(func(r chi.Router) {
		if h.loginLimit != nil {
			r.Use(h.loginLimit)
		}
		r.Post("/login", h.Login)
	})
	r.Post("/logout", h.Logout)
	r.Put("/", h.UpdateCustomer)
	r.Put("/password", h.UpdatePassword)

	return r
}

type signupRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	EmailAddress  string `json:"email_address"`
	ContactNumber string `json:"contact_number"`
	Password      string `json:"password"`
}

// POST /customer/signup
func (h *CustomerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	customer, err := h.customerService.Signup(r.Context(), service.SignupParams{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.EmailAddress,
		ContactNumber: req.ContactNumber,
		Password:      req.Password,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventSignup,
		CustomerID: customer.UUID,
	})

	writeJSON(w, http.StatusCreated, statusResponse{
		ID:     customer.UUID,
		Status: StatusCustomerRegistered,
	})
}

type loginResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      *string `json:"last_name"`
	EmailAddress  string  `json:"email_address"`
	ContactNumber string  `json:"contact_number"`
	Message       string  `json:"message"`
}

// POST /customer/login
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	contact, password, err := parseBasicCredentials(r.Header.Get("Authorization"))
	if err != nil {
		h.loginFailed(r, "", err)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), contact, password)
	if err != nil {
		h.loginFailed(r, contact, err)
		httputil.WriteError(w, err)
		return
	}

	customer := result.Customer
	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventLoginSuccess,
		CustomerID: customer.UUID,
		SessionID:  result.Session.UUID,
	})

	w.Header().Set(middleware.AccessTokenHeader, result.AccessToken)
	writeJSON(w, http.StatusOK, loginResponse{
		ID:            customer.UUID,
		FirstName:     customer.FirstName,
		LastName:      customer.LastName,
		EmailAddress:  customer.Email,
		ContactNumber: customer.ContactNumber,
		Message:       MessageLoggedIn,
	})
}

func (h *CustomerHandler) loginFailed(r *http.Request, contact string, err error) {
	if !apperrors.IsAppError(err) {
		log.Error().Err(err).Msg("login failed")
	}
	event := audit.Event{
		Type: audit.EventLoginFailure,
		Code: string(apperrors.GetCode(err)),
	}
	if contact != "" {
		event.Details = map[string]interface{}{"contact": util.MaskContact(contact)}
	}
	audit.LogFromRequest(r, event)
}

// parseBasicCredentials decodes "Basic base64(contact:password)". The
// contact number ends at the first colon.
func parseBasicCredentials(header string) (string, string, error) {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return "", "", apperrors.BadCredentialFormat()
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", apperrors.BadCredentialFormat()
	}

	contact, password, ok := strings.Cut(string(decoded), ":")
	if !ok || contact == "" || password == "" {
		return "", "", apperrors.BadCredentialFormat()
	}
	return contact, password, nil
}

// POST /customer/logout
func (h *CustomerHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authed, err := h.authService.Logout(r.Context(), middleware.BearerToken(r))
	if err != nil {
		audit.LogFromRequest(r, audit.Event{
			Type: audit.EventAuthFailure,
			Code: string(apperrors.GetCode(err)),
		})
		httputil.WriteError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventLogout,
		CustomerID: authed.Customer.UUID,
		SessionID:  authed.Session.UUID,
	})

	writeJSON(w, http.StatusOK, messageResponse{
		ID:      authed.Customer.UUID,
		Message: MessageLoggedOut,
	})
}

type updateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type updateCustomerResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Status    string  `json:"status"`
}

// PUT /customer
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(r.Context(), middleware.BearerToken(r), req.FirstName, req.LastName)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateCustomerResponse{
		ID:        customer.UUID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Status:    StatusCustomerDetailsUpdated,
	})
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// PUT /customer/password
func (h *CustomerHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	customer, err := h.customerService.UpdatePassword(r.Context(), middleware.BearerToken(r), req.OldPassword, req.NewPassword)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventPasswordChange,
		CustomerID: customer.UUID,
	})

	writeJSON(w, http.StatusOK, statusResponse{
		ID:     customer.UUID,
		Status: StatusCustomerPasswordUpdated,
	})
}
