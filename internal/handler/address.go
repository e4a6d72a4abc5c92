package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodordering/food-server-go/internal/audit"
	"github.com/foodordering/food-server-go/internal/httputil"
	"github.com/foodordering/food-server-go/internal/middleware"
	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/service"
)

const (
	StatusAddressRegistered = "ADDRESS SUCCESSFULLY REGISTERED"
	StatusAddressDeleted    = "ADDRESS DELETED SUCCESSFULLY"
)

type AddressHandler struct {
	addressService *service.AddressService
	requireAuth    func(http.Handler) http.Handler
}

func NewAddressHandler(addressService *service.AddressService, requireAuth func(http.Handler) http.Handler) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		requireAuth:    requireAuth,
	}
}

// Routes mounts under /address. Every route needs a live session.
func (h *AddressHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.requireAuth)

	r.Post("/", h.SaveAddress)
	r.Get("/customer", h.ListAddresses)
	r.Delete("/", h.DeleteAddress)
	r.Delete("/{address_id}", h.DeleteAddress)

	return r
}

type saveAddressRequest struct {
	FlatBuildingName string `json:"flat_building_name"`
	Locality         string `json:"locality"`
	City             string `json:"city"`
	Pincode          string `json:"pincode"`
	StateUUID        string `json:"state_uuid"`
}

// POST /address
func (h *AddressHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	var req saveAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	address, err := h.addressService.SaveAddress(r.Context(), middleware.GetCustomer(r.Context()), service.SaveAddressParams{
		FlatBuildingName: req.FlatBuildingName,
		Locality:         req.Locality,
		City:             req.City,
		Pincode:          req.Pincode,
		StateUUID:        req.StateUUID,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, statusResponse{
		ID:     address.UUID,
		Status: StatusAddressRegistered,
	})
}

type stateResponse struct {
	ID        string `json:"id"`
	StateName string `json:"state_name"`
}

type addressResponse struct {
	ID               string        `json:"id"`
	FlatBuildingName string        `json:"flat_building_name"`
	Locality         string        `json:"locality"`
	City             string        `json:"city"`
	Pincode          string        `json:"pincode"`
	State            stateResponse `json:"state"`
}

func formatAddress(a model.AddressWithState) addressResponse {
	return addressResponse{
		ID:               a.UUID,
		FlatBuildingName: a.FlatBuilNumber,
		Locality:         a.Locality,
		City:             a.City,
		Pincode:          a.Pincode,
		State: stateResponse{
			ID:        a.StateUUID,
			StateName: a.StateName,
		},
	}
}

// GET /address/customer
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addressService.ListAddresses(r.Context(), middleware.GetCustomer(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	items := make([]addressResponse, 0, len(addresses))
	for _, a := range addresses {
		items = append(items, formatAddress(a))
	}

	writeJSON(w, http.StatusOK, map[string]any{"addresses": items})
}

// DELETE /address/{address_id}
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	customer := middleware.GetCustomer(r.Context())

	address, err := h.addressService.DeleteAddress(r.Context(), customer, chi.URLParam(r, "address_id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:       audit.EventAddressDelete,
		CustomerID: customer.UUID,
		Details:    map[string]interface{}{"address_id": address.UUID},
	})

	writeJSON(w, http.StatusOK, statusResponse{
		ID:     address.UUID,
		Status: StatusAddressDeleted,
	})
}

// GET /states
func (h *AddressHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.addressService.ListStates(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	items := make([]stateResponse, 0, len(states))
	for _, s := range states {
		items = append(items, stateResponse{ID: s.UUID, StateName: s.StateName})
	}

	writeJSON(w, http.StatusOK, map[string]any{"states": items})
}
