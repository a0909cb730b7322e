package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"formforge-backend/application/ports"
	"formforge-backend/interfaces/http/render"
	"formforge-backend/interfaces/http/rest/handlers"
	"formforge-backend/interfaces/http/rest/middleware"
	"formforge-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	forms       ports.FormRepository
	submissions ports.SubmissionRepository
	suggester   ports.Suggester
	sessions    *auth.SessionManager
	logger      *zap.Logger
	enableCORS  bool
}

// NewRouter creates a new router instance. suggester may be nil when no
// suggestion service is configured.
func NewRouter(
	forms ports.FormRepository,
	submissions ports.SubmissionRepository,
	suggester ports.Suggester,
	sessions *auth.SessionManager,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		forms:       forms,
		submissions: submissions,
		suggester:   suggester,
		sessions:    sessions,
		logger:      logger,
		enableCORS:  enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8080"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Route gate: everything outside the allow-list needs the session flag
	router.Use(middleware.Gate(rt.sessions))

	formHandler := handlers.NewFormHandler(rt.forms, rt.logger)
	builderHandler := handlers.NewBuilderHandler(rt.forms, rt.suggester, rt.logger)
	renderHandler := handlers.NewRenderHandler(rt.forms, rt.submissions, render.NewRenderer(), rt.logger)
	authHandler := handlers.NewAuthHandler(rt.sessions, rt.logger)
	suggestHandler := handlers.NewSuggestHandler(rt.suggester, rt.logger)

	// Health check
	router.Get("/health", rt.healthCheck)

	// Published form views and submission intake: public by design
	router.Get("/forms/{formID}", renderHandler.ViewForm)
	router.Post("/forms/{formID}/submissions", renderHandler.SubmitForm)

	// Builder preview: gated
	router.Get("/preview/{formID}", renderHandler.PreviewForm)

	// Login and signup pages sit on the allow-list so the gate has
	// somewhere to redirect to
	router.Get("/login", rt.loginPage)
	router.Get("/signup", rt.loginPage)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})

		r.Route("/forms", func(r chi.Router) {
			r.Get("/", formHandler.ListForms)
			r.Post("/", formHandler.CreateForm)

			r.Route("/{formID}", func(r chi.Router) {
				r.Get("/", formHandler.GetForm)
				r.Put("/", formHandler.UpdateForm)
				r.Delete("/", formHandler.DeleteForm)
				r.Post("/publish", formHandler.PublishForm)
				r.Post("/unpublish", formHandler.UnpublishForm)
				r.Post("/preview", builderHandler.Preview)

				r.Get("/submissions", renderHandler.ListSubmissions)

				r.Route("/fields", func(r chi.Router) {
					r.Post("/", builderHandler.AddField)
					r.Put("/{index}", builderHandler.UpdateField)
					r.Delete("/{index}", builderHandler.RemoveField)

					r.Route("/{index}/options", func(r chi.Router) {
						r.Post("/", builderHandler.AddOption)
						r.Put("/{optionIndex}", builderHandler.UpdateOption)
						r.Delete("/{optionIndex}", builderHandler.RemoveOption)
					})
				})

				r.Post("/suggestions", builderHandler.Suggest)
				r.Post("/suggestions/accept", builderHandler.AcceptSuggestion)
			})
		})

		r.Post("/suggestions", suggestHandler.Suggest)
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// loginPage serves a minimal sign-in page. Any credentials are accepted;
// the form only flips the locally held session flag.
func (rt *Router) loginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(loginPage))
}

const loginPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Sign in</title></head>
<body style="font-family: system-ui, sans-serif; max-width: 420px; margin: 4rem auto;">
<h1>Sign in</h1>
<p>Enter any email and password to continue.</p>
<form onsubmit="fetch('/api/v1/auth/login',{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify({email:this.email.value,password:this.password.value})}).then(r=>r.json()).then(b=>location.href=b.data.redirectTo);return false;">
<p><input name="email" type="email" placeholder="Email" required></p>
<p><input name="password" type="password" placeholder="Password" required></p>
<p><button type="submit">Sign in</button></p>
</form>
</body>
</html>
`
