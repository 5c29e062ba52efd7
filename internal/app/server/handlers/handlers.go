package handlers

import (
	"html"
	"strings"

	_ "embed"

	"francoggm/paygate-go-redis/internal/app/healthcheck"
	"francoggm/paygate-go-redis/internal/app/payment"
	"francoggm/paygate-go-redis/internal/app/webhook"
	"francoggm/paygate-go-redis/internal/config"

	glog "github.com/goliatone/go-logger/glog"
)

//go:embed assets/privacy_policy.html
var privacyTemplate string

const appNamePlaceholder = "{{app_name}}"

type Handlers struct {
	cfg            *config.Config
	applier        *webhook.Applier
	paymentService *payment.PaymentService
	health         *healthcheck.HealthCheckService
	logger         glog.Logger
	privacyPage    []byte
}

func NewHandlers(cfg *config.Config, applier *webhook.Applier, paymentService *payment.PaymentService, health *healthcheck.HealthCheckService, logger glog.Logger) *Handlers {
	page := strings.ReplaceAll(privacyTemplate, appNamePlaceholder, html.EscapeString(cfg.App.Name))

	return &Handlers{
		cfg:            cfg,
		applier:        applier,
		paymentService: paymentService,
		health:         health,
		logger:         glog.Ensure(logger),
		privacyPage:    []byte(page),
	}
}
