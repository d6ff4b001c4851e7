package main

import (
	"log"
	"net/http"

	"github.com/AdriannBdzz/movie-app/internal/cache"
	"github.com/AdriannBdzz/movie-app/internal/config"
	"github.com/AdriannBdzz/movie-app/internal/db"
	"github.com/AdriannBdzz/movie-app/internal/handler"
	"github.com/AdriannBdzz/movie-app/internal/ml"
	"github.com/AdriannBdzz/movie-app/internal/repository"
	"github.com/AdriannBdzz/movie-app/internal/service"
	"github.com/AdriannBdzz/movie-app/internal/tmdb"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Movie Recommender API
// @version 1.0
// @description Recomendador de películas por usuario (regresión logística + TMDB)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// store de modelos por usuario (pesos + vocabulario en disco)
	modelStore, err := ml.NewFileStore(cfg.ModelsDir)
	if err != nil {
		log.Fatalf("[ml] no se pudo crear el store de modelos: %v", err)
	}

	// cliente TMDB
	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBLang, cfg.TMDBRegion)

	// repos
	userRepo := repository.NewUserRepository()
	favRepo := repository.NewFavoriteRepository()
	recRepo := repository.NewRecommendationRepository()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	recSvc := service.NewRecommendService(tmdbClient, modelStore, recRepo)
	favSvc := service.NewFavoriteService(favRepo, tmdbClient, recSvc)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(tmdbClient)
	favH := handler.NewFavoriteHandler(favSvc)
	recH := handler.NewRecommendHandler(favSvc, recSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))
	r.Use(handler.NoStore)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)
	r.Get("/search", movieH.Search)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Route("/me", func(r chi.Router) {
			r.Get("/favorites", favH.List)
			r.Post("/favorites", favH.Add)
			r.Delete("/favorites/{movieId}", favH.Delete)

			r.Get("/recommendations", recH.Get)
			r.Get("/recommendations/history", recH.History)
			r.Get("/ws/recommendations", recH.GetWS)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
