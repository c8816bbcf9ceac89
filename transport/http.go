package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	contactapp "github.com/olekhymko/contacts-api/application/contact"
	userapp "github.com/olekhymko/contacts-api/application/user"
	"github.com/olekhymko/contacts-api/cmd/config"
	redisrepo "github.com/olekhymko/contacts-api/repository/redis"
	"github.com/olekhymko/contacts-api/utils/errors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ContactApp contactapp.ContactApp
}

func NewTransport(cfg *config.Config, UserApp userapp.UserApp, ContactApp contactapp.ContactApp, redisRepo redisrepo.Repository) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    UserApp,
		ContactApp: ContactApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/refresh", rh.Refresh).Methods(http.MethodPost)
	router.HandleFunc("/confirm/{token}", rh.ConfirmEmail).Methods(http.MethodGet)

	// Protected routes; the rate limiter only guards the API surface
	api := router.PathPrefix("/api").Subrouter()
	api.Use(RateLimitMiddleware(redisRepo, cfg.RateLimit))

	api.HandleFunc("/contacts/", rh.ListContacts).Methods(http.MethodGet)
	api.HandleFunc("/contacts/search", rh.SearchContacts).Methods(http.MethodGet)
	api.HandleFunc("/contacts/upcoming", rh.UpcomingBirthdays).Methods(http.MethodGet)
	api.HandleFunc("/contacts/{id:[0-9]+}", rh.GetContact).Methods(http.MethodGet)
	api.HandleFunc("/contacts/", rh.CreateContact).Methods(http.MethodPost)
	api.HandleFunc("/contacts/{id:[0-9]+}", rh.UpdateContact).Methods(http.MethodPut)
	api.HandleFunc("/contacts/{id:[0-9]+}/date", rh.UpdateContactBirthday).Methods(http.MethodPut)
	api.HandleFunc("/contacts/{id:[0-9]+}", rh.RemoveContact).Methods(http.MethodDelete)
	api.HandleFunc("/users/avatar", rh.UpdateAvatar).Methods(http.MethodPatch)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(UserApp))

	return handlers.CORS(
		handlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)(router)
}

type errorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if ce, ok := err.(errors.CustomError); ok {
		w.WriteHeader(ce.ErrorHTTPCode())
		_ = json.NewEncoder(w).Encode(errorResponse{
			ErrorCode: ce.ErrorCode(),
			Message:   ce.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorResponse{
		ErrorCode: "9999",
		Message:   "internal server error",
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}
