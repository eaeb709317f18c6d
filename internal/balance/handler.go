package balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mzahrani/splitledger/pkg/middleware"
	"github.com/mzahrani/splitledger/pkg/response"
)

// Handler handles HTTP requests for balance operations
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.MyBalances)
	r.Get("/groups/{groupId}", h.GroupBalances)
	r.Get("/groups/{groupId}/suggestions", h.Suggestions)
	r.Get("/groups/{groupId}/validate", h.Validate)
	r.Get("/groups/{groupId}/members/{userId}", h.MemberBalance)
	r.Get("/groups/{groupId}/members/{userId}/history", h.History)

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrMemberNotFound):
		response.NotFound(w, err.Error())
	default:
		response.InternalError(w, "Failed to "+action)
	}
}

// GroupBalances handles GET /balances/groups/{groupId}
// @Summary      Get group balances
// @Description  Get every member's credits, debits, settlements and net position
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/groups/{groupId} [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	summary, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		h.writeError(w, err, "get group balances")
		return
	}

	response.JSON(w, http.StatusOK, summary.ToResponse())
}

// Suggestions handles GET /balances/groups/{groupId}/suggestions
// @Summary      Get settlement suggestions
// @Description  Get the transfers that would settle the group
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]SuggestionResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/groups/{groupId}/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	suggestions, err := h.service.Suggestions(r.Context(), groupID)
	if err != nil {
		h.writeError(w, err, "get settlement suggestions")
		return
	}

	suggestionResponses := make([]*SuggestionResponse, len(suggestions))
	for i := range suggestions {
		suggestionResponses[i] = suggestions[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, suggestionResponses)
}

// Validate handles GET /balances/groups/{groupId}/validate
// @Summary      Validate group balances
// @Description  Check that the group's net balances sum to zero within tolerance
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=ValidationResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/groups/{groupId}/validate [get]
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	result, err := h.service.Validate(r.Context(), groupID)
	if err != nil {
		h.writeError(w, err, "validate balances")
		return
	}

	response.JSON(w, http.StatusOK, result.ToResponse())
}

// MemberBalance handles GET /balances/groups/{groupId}/members/{userId}
// @Summary      Get a member's balance
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        userId path int true "User ID"
// @Success      200 {object} response.APIResponse{data=UserBalanceResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/groups/{groupId}/members/{userId} [get]
func (h *Handler) MemberBalance(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	balance, err := h.service.MemberBalance(r.Context(), groupID, userID)
	if err != nil {
		h.writeError(w, err, "get member balance")
		return
	}

	response.JSON(w, http.StatusOK, balance.ToResponse())
}

// History handles GET /balances/groups/{groupId}/members/{userId}/history
// @Summary      Get a member's balance history
// @Description  Get the member's daily balance over the last N days (default 30)
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        userId path int true "User ID"
// @Param        days query int false "Window length in days" default(30)
// @Success      200 {object} response.APIResponse{data=[]DayBalanceResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balances/groups/{groupId}/members/{userId}/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	history, err := h.service.History(r.Context(), groupID, userID, days)
	if err != nil {
		h.writeError(w, err, "get balance history")
		return
	}

	historyResponses := make([]DayBalanceResponse, len(history))
	for i := range history {
		historyResponses[i] = history[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, historyResponses)
}

// MyBalances handles GET /balances/me
// @Summary      Get my balances
// @Description  Get the current user's balance in every group they belong to
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupMemberBalanceResponse}
// @Router       /balances/me [get]
func (h *Handler) MyBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		userID = 1 // Default for development
	}

	balances, err := h.service.MemberBalances(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to get balances")
		return
	}

	balanceResponses := make([]*GroupMemberBalanceResponse, len(balances))
	for i := range balances {
		balanceResponses[i] = balances[i].ToResponse()
	}

	response.JSON(w, http.StatusOK, balanceResponses)
}
