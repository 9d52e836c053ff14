package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"book-store-api/internal/handlers"
	"book-store-api/internal/middleware"
	"book-store-api/internal/utils"
)

func New(bookHandler *handlers.BookHandler, rootHandler *handlers.RootHandler, logger *zap.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.JSONMiddleware)

	// mux skips route middleware for unmatched requests.
	r.NotFoundHandler = middleware.RequestLogger(logger)(http.HandlerFunc(notFound))
	r.MethodNotAllowedHandler = middleware.RequestLogger(logger)(http.HandlerFunc(methodNotAllowed))

	r.HandleFunc("/", rootHandler.Welcome).Methods("GET")
	r.HandleFunc("/healthz", rootHandler.Health).Methods("GET")

	r.HandleFunc("/book", bookHandler.CreateBook).Methods("POST")
	r.HandleFunc("/book", bookHandler.GetBooks).Methods("GET")
	r.HandleFunc("/book/{id}", bookHandler.GetBook).Methods("GET")
	r.HandleFunc("/book/{id}", bookHandler.UpdateBook).Methods("PUT")

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.JSONError(w, "Route not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
