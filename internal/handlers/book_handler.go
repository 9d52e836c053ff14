package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"book-store-api/internal/constants"
	"book-store-api/internal/middleware"
	"book-store-api/internal/models"
	"book-store-api/internal/store"
	"book-store-api/internal/utils"
)

const (
	bookNotFoundMessage = "Book not found"
	bookUpdatedMessage  = "Book updated successfully"
)

// Auditor records successful writes. A nil Auditor disables auditing.
type Auditor interface {
	Log(ctx context.Context, entity, action string, data any) error
}

type BookHandler struct {
	Store       store.BookStore
	AuditLogger Auditor
	Logger      *zap.Logger
}

type ListBooksResponse struct {
	Count int           `json:"count"`
	Data  []models.Book `json:"data"`
}

type GetBookResponse struct {
	Book models.Book `json:"book"`
}

type UpdateBookResponse struct {
	Message string      `json:"message"`
	Book    models.Book `json:"book"`
}

func NewBookHandler(s store.BookStore, auditor Auditor, logger *zap.Logger) *BookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookHandler{Store: s, AuditLogger: auditor, Logger: logger}
}

// POST /book
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	book, err := h.Store.Create(r.Context(), in)
	if err != nil {
		h.storeError(w, r, "create book", err)
		return
	}

	h.audit(r.Context(), constants.Create, book)

	utils.JSON(w, book, http.StatusCreated)
}

// GET /book
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.Store.FindAll(r.Context())
	if err != nil {
		h.storeError(w, r, "list books", err)
		return
	}
	if books == nil {
		books = []models.Book{}
	}

	utils.JSON(w, ListBooksResponse{Count: len(books), Data: books}, http.StatusOK)
}

// GET /book/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	book, err := h.Store.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, bookNotFoundMessage, http.StatusNotFound)
		return
	}
	if err != nil {
		h.storeError(w, r, "get book", err)
		return
	}

	utils.JSON(w, GetBookResponse{Book: book}, http.StatusOK)
}

// PUT /book/{id}
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	id := mux.Vars(r)["id"]

	book, err := h.Store.FindByIDAndReplace(r.Context(), id, in)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, bookNotFoundMessage, http.StatusNotFound)
		return
	}
	if err != nil {
		h.storeError(w, r, "update book", err)
		return
	}

	h.audit(r.Context(), constants.Update, book)

	utils.JSON(w, UpdateBookResponse{Message: bookUpdatedMessage, Book: book}, http.StatusOK)
}

// decodeInput reads the request body and runs the required-fields check.
// An empty body is treated as an empty object. It writes the 400 response
// itself and reports false when the request must stop.
func (h *BookHandler) decodeInput(w http.ResponseWriter, r *http.Request) (models.BookInput, bool) {
	var in models.BookInput
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		utils.JSONError(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return in, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		utils.JSONError(w, "Invalid JSON payload: unexpected data after JSON body", http.StatusBadRequest)
		return in, false
	}

	if !in.HasRequiredFields() {
		utils.JSONError(w, models.RequiredFieldsMessage, http.StatusBadRequest)
		return in, false
	}
	return in, true
}

func (h *BookHandler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.Logger.Error(op+" failed",
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	utils.JSONError(w, err.Error(), http.StatusInternalServerError)
}

func (h *BookHandler) audit(ctx context.Context, action string, book models.Book) {
	if h.AuditLogger == nil {
		return
	}
	if err := h.AuditLogger.Log(ctx, models.BookEntity, action, book); err != nil {
		h.Logger.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}
