package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lucavisser.dev/portfolio/internal/mail"
)

const (
	// sentFallbackToken is returned when the provider yields no message id.
	sentFallbackToken = "sent"

	defaultDispatchTimeout = 10 * time.Second
)

// Handler serves POST /api/contact.
type Handler struct {
	mailer    mail.Mailer
	log       *zap.Logger
	sender    string
	recipient string
	timeout   time.Duration
}

// NewHandler wires the contact endpoint. sender and recipient are the fixed
// operator identities; reply-to always tracks the submitter.
func NewHandler(mailer mail.Mailer, log *zap.Logger, sender, recipient string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		mailer:    mailer,
		log:       log,
		sender:    sender,
		recipient: recipient,
		timeout:   defaultDispatchTimeout,
	}
}

// SetDispatchTimeout overrides the outbound call budget, primarily for tests.
func (h *Handler) SetDispatchTimeout(d time.Duration) {
	if d > 0 {
		h.timeout = d
	}
}

type successResponse struct {
	Message string `json:"message"`
	EmailID string `json:"emailId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP validates the submission, renders both email representations,
// dispatches, and reports the outcome. Validation failures are the caller's
// problem; dispatch failures are logged once for the operator and surfaced
// as a generic retry instruction.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := sub.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	html, text, err := Render(&sub)
	if err != nil {
		h.log.Error("contact: render email", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: genericFailureMessage})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := h.mailer.Send(ctx, mail.Message{
		From:    h.sender,
		To:      h.recipient,
		ReplyTo: sub.Email,
		Subject: DeriveSubject(&sub),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		h.log.Error("contact: dispatch failed",
			zap.String("from", sub.Email),
			zap.String("view_mode", string(sub.Mode())),
			zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: genericFailureMessage})
		return
	}
	if id == "" {
		id = sentFallbackToken
	}

	writeJSON(w, http.StatusOK, successResponse{Message: "Message sent successfully", EmailID: id})
}

const genericFailureMessage = "Failed to send message. Please try again or email me directly."

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
