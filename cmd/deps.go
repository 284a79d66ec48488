package main

import (
	"context"
	"log/slog"

	"github.com/adamanr/dreamteam/internal/controllers"
	"github.com/adamanr/dreamteam/internal/database"
	"github.com/adamanr/dreamteam/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type stores struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (s *stores) Close() {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.Warn("Error closing Redis", slog.String("error", err.Error()))
		}
	}
	if s.db != nil {
		s.db.Close()
	}
}

func openStores(ctx context.Context, withRedis bool) (*stores, error) {
	db, err := database.NewConnect(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &stores{db: db}
	if !withRedis {
		return s, nil
	}

	if s.redis, err = database.NewRedisConn(ctx, cfg, logger); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

func newControllers(s *stores) *controllers.Controllers {
	deps := &controllers.Dependens{
		Employees:   repository.NewEmployeeRepository(s.db),
		Departments: repository.NewDepartmentRepository(s.db),
		Roles:       repository.NewRoleRepository(s.db),
		Logger:      logger,
		Config:      cfg,
	}
	if s.redis != nil {
		deps.Redis = s.redis
	}

	return controllers.New(deps)
}
