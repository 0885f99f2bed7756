package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kly-netizen/infonow-chat/infrastructure"
)

type JSONHandler struct {
	service *Service
	log     *zap.Logger
}

func NewJSONHandler(service *Service, log *zap.Logger) *JSONHandler {
	return &JSONHandler{
		service: service,
		log:     log,
	}
}

func (h *JSONHandler) Register(r *mux.Router) {
	r.HandleFunc("/v1/chats", h.CreateChat).Methods(http.MethodPost)
	r.HandleFunc("/v1/chats", h.ListChats).Methods(http.MethodGet)
	r.HandleFunc("/v1/chats/{chat_id}", h.GetChat).Methods(http.MethodGet)
}

func (h *JSONHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chat, err := h.service.CreateChat(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(chat)
}

func (h *JSONHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	chats, err := h.service.ListChats(r.Context(), userID, ProjectionPublic)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(chats)
}

func (h *JSONHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["chat_id"]

	// Numeric keys address the internal id, everything else the external
	// uuid. Internal ids never collide with uuid syntax.
	var err error
	var chat *EnrichedChat
	if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
		chat, err = h.service.GetChatByInternalID(r.Context(), id, ProjectionPublic)
	} else {
		chat, err = h.service.GetChat(r.Context(), key, ProjectionPublic)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(chat)
}

func (h *JSONHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, infrastructure.ErrValidationFailed),
		errors.Is(err, infrastructure.ErrInvalidParticipant),
		errors.Is(err, infrastructure.ErrCreatorNotFound),
		errors.Is(err, infrastructure.ErrNoParticipants):
		status = http.StatusBadRequest
	case errors.Is(err, infrastructure.ErrChatNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	http.Error(w, err.Error(), status)
}
