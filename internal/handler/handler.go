package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/config"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/mailer"
	"github.com/sysu-ecnc-dev/reset-pin-mailer/internal/metrics"
)

// SMTPLoader 在每次请求时被调用，返回当前的 SMTP 配置
type SMTPLoader func() (*config.SMTP, error)

type Handler struct {
	validate     *validator.Validate
	config       *config.Config
	translator   ut.Translator
	loadSMTP     SMTPLoader
	newTransport mailer.TransportFactory

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, loadSMTP SMTPLoader, newTransport mailer.TransportFactory) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:     validate,
		config:       cfg,
		translator:   trans,
		loadSMTP:     loadSMTP,
		newTransport: newTransport,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.cors)

	h.Mux.NotFound(h.notFound)
	h.Mux.MethodNotAllowed(h.methodNotAllowed)

	h.Mux.Get("/healthz", h.Health)
	h.Mux.Method(http.MethodGet, "/metrics", metrics.Handler())

	h.Mux.Post(h.config.Server.Route, h.SendResetPIN)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
