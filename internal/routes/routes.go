package routes

import (
	"net/http"

	"cmsarticle/internal/auth"
	"cmsarticle/internal/handlers"
	"cmsarticle/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	grants auth.Grants,
	articleH *handlers.ArticleHandler,
	adminH *handlers.AdminHandler,
	taxonomyH *handlers.TaxonomyHandler,
) {
	router.Use(middleware.Recoverer, middleware.RequestID, middleware.JWTAuth(jwtSecret, grants), middleware.Logging)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/content/view/{model}/{id:[0-9]+}", articleH.View).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/content/models", articleH.Models).Methods(http.MethodGet)
	api.HandleFunc("/content/preview", articleH.Preview).Methods(http.MethodPost)
	api.HandleFunc("/content/{model}", articleH.List).Methods(http.MethodGet)
	api.HandleFunc("/content/{model}/{id:[0-9]+}", articleH.Get).Methods(http.MethodGet)
	api.HandleFunc("/content/{model}/{id:[0-9]+}/previous", articleH.Previous).Methods(http.MethodGet)
	api.HandleFunc("/content/{model}/{id:[0-9]+}/next", articleH.Next).Methods(http.MethodGet)
	api.HandleFunc("/sections", taxonomyH.ListSections).Methods(http.MethodGet)
	api.HandleFunc("/tags", taxonomyH.ListTags).Methods(http.MethodGet)

	// --- Только для вошедших, права проверяют сервисы ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireAuth)

	protected.HandleFunc("/content/{model}", articleH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/content/{model}/{id:[0-9]+}", articleH.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/content/{model}/{id:[0-9]+}", articleH.Delete).Methods(http.MethodDelete)

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/content/{model}/browser", adminH.Browser).Methods(http.MethodGet)
	admin.HandleFunc("/content/{model}/rows", adminH.Rows).Methods(http.MethodGet)
	admin.HandleFunc("/content/{model}/modify/{eid:[0-9]+}", adminH.Form).Methods(http.MethodGet)
	admin.HandleFunc("/content/{model}/modify/{eid:[0-9]+}", adminH.Modify).Methods(http.MethodPost).
		Name(handlers.RouteContentModify)
	admin.HandleFunc("/content/{model}/generate", adminH.Generate).Methods(http.MethodPost)
	admin.HandleFunc("/sections", taxonomyH.CreateSection).Methods(http.MethodPost)
	admin.HandleFunc("/sections/{id:[0-9]+}", taxonomyH.DeleteSection).Methods(http.MethodDelete)
	admin.HandleFunc("/tags", taxonomyH.CreateTag).Methods(http.MethodPost)
	admin.HandleFunc("/tags/{id:[0-9]+}", taxonomyH.DeleteTag).Methods(http.MethodDelete)

	admin.Handle("/tags/recalculate",
		middleware.RequirePermission(auth.PermTagModify)(http.HandlerFunc(adminH.RecalculateTags)),
	).Methods(http.MethodPost)
	admin.Handle("/permissions",
		middleware.OnlyRole(auth.RoleAdmin)(http.HandlerFunc(adminH.Permissions)),
	).Methods(http.MethodGet)
}
