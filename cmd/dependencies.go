package cmd

import (
	goValidator "github.com/go-playground/validator/v10"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/config"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/service"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/pkg/cache"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/pkg/logger"
)

type AppDependency struct {
	log     *logger.Logger
	service service.RiskService
}

func NewAppDependency() (*AppDependency, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return nil, err
	}

	store := cache.NewCache(cfg.Store.DefaultExpiration, cfg.Store.CleanupInterval)
	riskService := service.NewRiskService(cfg, log, goValidator.New(), store)

	return &AppDependency{
		log:     log,
		service: riskService,
	}, nil
}
