package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
)

type createCustomerRequest struct {
	Name              string `json:"name" validate:"required"`
	Description       string `json:"description"`
	Vertical          string `json:"vertical"`
	Size              string `json:"size"`
	RulesOfEngagement string `json:"rulesOfEngagement"`
}

type customerResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	Vertical          string `json:"vertical,omitempty"`
	Size              string `json:"size,omitempty"`
	RulesOfEngagement string `json:"rulesOfEngagement,omitempty"`
}

func toCustomerResponse(c *model.Customer) customerResponse {
	return customerResponse{
		ID:                string(c.ID),
		Name:              c.Name,
		Description:       c.Description,
		Vertical:          c.Vertical,
		Size:              c.Size,
		RulesOfEngagement: c.RulesOfEngagement,
	}
}

func customerID(r *http.Request) model.CustomerID {
	return model.CustomerID(chi.URLParam(r, "custId"))
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	customer, err := s.uc.Customer.CreateCustomer(r.Context(), usecase.CreateCustomerInput{
		Name:              req.Name,
		Description:       req.Description,
		Vertical:          req.Vertical,
		Size:              req.Size,
		RulesOfEngagement: req.RulesOfEngagement,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toCustomerResponse(customer))
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.uc.Customer.ListCustomers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toCustomerResponse(c)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := s.uc.Customer.GetCustomer(r.Context(), customerID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toCustomerResponse(customer))
}
