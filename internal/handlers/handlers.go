package handlers

import (
	"log/slog"
	"net/http"

	"bayou-blog/internal/auth"
	"bayou-blog/internal/database"
	"bayou-blog/internal/middleware"
	"bayou-blog/internal/service"
	"bayou-blog/internal/utils"

	"github.com/go-playground/validator/v10"
)

// Server holds the handler dependencies.
type Server struct {
	Users      *service.UserService
	Posts      *service.PostService
	Comments   *service.CommentService
	Statistics *service.StatisticsService
	Tokens     *auth.TokenService
	Metrics    *utils.MetricsCollector
	Logger     *slog.Logger

	validate *validator.Validate
}

func NewServer(
	users *service.UserService,
	posts *service.PostService,
	comments *service.CommentService,
	statistics *service.StatisticsService,
	tokens *auth.TokenService,
	metrics *utils.MetricsCollector,
	logger *slog.Logger,
) *Server {
	return &Server{
		Users:      users,
		Posts:      posts,
		Comments:   comments,
		Statistics: statistics,
		Tokens:     tokens,
		Metrics:    metrics,
		Logger:     logger,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Routes builds the API mux. Login, registration and the health probe are
// public; everything else requires a bearer token.
func (s *Server) Routes(store database.Store) http.Handler {
	mux := http.NewServeMux()
	protected := middleware.Authenticate(s.Tokens, store)

	mux.HandleFunc("GET /health", s.HandleHealth)
	mux.HandleFunc("POST /api/v1/auth/login", s.HandleLogin)
	mux.HandleFunc("POST /api/v1/users/{$}", s.HandleRegister)

	mux.Handle("GET /api/v1/users/{id}/settings", protected(http.HandlerFunc(s.HandleGetSettings)))
	mux.Handle("PATCH /api/v1/users/{id}/settings", protected(http.HandlerFunc(s.HandleUpdateSettings)))

	mux.Handle("POST /api/v1/posts/{$}", protected(http.HandlerFunc(s.HandleCreatePost)))
	mux.Handle("GET /api/v1/posts/{$}", protected(http.HandlerFunc(s.HandleListPosts)))
	mux.Handle("GET /api/v1/posts/{id}", protected(http.HandlerFunc(s.HandleGetPost)))
	mux.Handle("PATCH /api/v1/posts/{id}", protected(http.HandlerFunc(s.HandleUpdatePost)))
	mux.Handle("DELETE /api/v1/posts/{id}", protected(http.HandlerFunc(s.HandleDeletePost)))

	mux.Handle("POST /api/v1/posts/{post_id}/comments/{$}", protected(http.HandlerFunc(s.HandleCreateComment)))
	mux.Handle("GET /api/v1/posts/{post_id}/comments/{$}", protected(http.HandlerFunc(s.HandleListComments)))
	mux.Handle("PATCH /api/v1/posts/{post_id}/comments/{id}", protected(http.HandlerFunc(s.HandleUpdateComment)))
	mux.Handle("DELETE /api/v1/posts/{post_id}/comments/{id}", protected(http.HandlerFunc(s.HandleDeleteComment)))

	mux.Handle("GET /api/v1/statistics/comments-daily-breakdown", protected(http.HandlerFunc(s.HandleCommentsDailyBreakdown)))

	return mux
}
