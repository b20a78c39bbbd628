package api

import (
	"context"

	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/catalog_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/solved_service"
	"github.com/p-sree-sai-pavan/CFSpeed/internal/service/user_service"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

type Api struct {
	DB                   Pinger
	CatalogServiceConfig *catalog_service.CatalogService
	SolvedServiceConfig  *solved_service.SolvedService
	UserServiceConfig    *user_service.UserService
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type listProblemsResponse struct {
	Problems   []catalog_service.CatalogEntry `json:"problems"`
	Total      int                            `json:"total"`
	Page       int                            `json:"page"`
	TotalPages int                            `json:"total_pages"`
}

type stagesResponse struct {
	Stages []catalog_service.Stage `json:"stages"`
	Levels []catalog_service.Level `json:"levels"`
}
