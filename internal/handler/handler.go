package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pulseboard-dev/pulseboard/backend/internal/config"
	"github.com/pulseboard-dev/pulseboard/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	deckChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, deckCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		deckChannel: deckCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(h.auth, h.currentUser).Get("/me", h.GetMe)
		})

		// everything below requires a live session
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/products", h.GetProducts)

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", h.GetSubmissions)
				r.With(h.currentUser).Post("/", h.CreateSubmission)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(h.requireAdmin)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", h.GetAllUsers)
					r.Post("/", h.CreateUser)
					r.Route("/{id}", func(r chi.Router) {
						r.Use(h.userInfo)
						r.Patch("/", h.UpdateUser)
						r.Delete("/", h.DeleteUser)
					})
				})

				r.Get("/generations", h.GetGenerations)
				r.With(h.currentUser).Post("/generate-deck", h.GenerateDeck)

				r.Route("/financials", func(r chi.Router) {
					r.Get("/", h.GetFinancialRecords)
					r.With(h.currentUser).Post("/", h.UpsertFinancialRecord)
				})
			})
		})
	})
}
