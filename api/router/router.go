package router

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/Allahviranloo/Ramble/api/auth"
	"github.com/Allahviranloo/Ramble/api/handlers"
	"github.com/Allahviranloo/Ramble/api/repositories"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func CreateRouter(userRepo repositories.UserRepository, postRepo repositories.PostRepository) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))

	// Credentialed CORS for the browser client, single origin.
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "Server running"})
		})

		r.Post("/register", handlers.PostRegisterHandler(userRepo))
		r.Post("/login", handlers.PostLoginHandler(userRepo))
		r.Post("/logout", handlers.PostLogoutHandler())

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Get("/user", handlers.GetCurrentUserHandler(userRepo))
			r.Put("/editprofile", handlers.PutEditProfileHandler(userRepo))
			r.Get("/profile/{userId}", handlers.GetProfileHandler(userRepo, postRepo))
			r.Get("/search/users", handlers.GetSearchUsersHandler(userRepo))
			r.Route("/follow", func(r chi.Router) {
				r.Post("/{userId}", handlers.PostFollowHandler(userRepo))
				r.Delete("/{userId}", handlers.DeleteFollowHandler(userRepo))
			})
			r.Route("/posts", func(r chi.Router) {
				r.Post("/", handlers.PostCreatePostHandler(postRepo))
				r.Get("/feed", handlers.GetFeedHandler(postRepo))
				r.Delete("/{postId}", handlers.DeletePostHandler(postRepo))
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	})

	return r
}
