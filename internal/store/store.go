// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store persists projects and chat exchanges for the reference backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/noldarim/chatdeck/internal/config"
	"github.com/noldarim/chatdeck/internal/logger"
	"github.com/noldarim/chatdeck/internal/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	log     zerolog.Logger
	logOnce sync.Once
)

func getLog() *zerolog.Logger {
	logOnce.Do(func() {
		log = logger.GetDatabaseLogger().With().Str("component", "store").Logger()
	})
	return &log
}

// Store wraps the GORM database connection
type Store struct {
	db *gorm.DB
}

// Open connects to the configured database. Migrations are not run.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	getLog().Info().Str("driver", cfg.Driver).Msg("Database connected")
	return &Store{db: db}, nil
}

// AutoMigrate runs database migrations
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&models.Project{}, &models.ChatRecord{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// ValidateSchema checks that the tables and columns the server relies on exist.
func (s *Store) ValidateSchema() error {
	required := []struct {
		model   interface{ TableName() string }
		columns []string
	}{
		{&models.Project{}, []string{"id", "name", "description", "created_at"}},
		{&models.ChatRecord{}, []string{"id", "project_id", "message", "reply", "created_at"}},
	}

	var missing []string
	for _, r := range required {
		table := r.model.TableName()
		if !s.db.Migrator().HasTable(r.model) {
			missing = append(missing, table)
			continue
		}
		missing = append(missing, lo.FilterMap(r.columns, func(col string, _ int) (string, bool) {
			return table + "." + col, !s.db.Migrator().HasColumn(r.model, col)
		})...)
	}

	if len(missing) > 0 {
		return fmt.Errorf("schema is missing %s; run the server with --migrate", strings.Join(missing, ", "))
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListProjects returns every project in creation order.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// CreateProject validates req and stores a new project with a fresh id.
func (s *Store) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	getLog().Debug().Str("project_id", project.ID).Str("name", project.Name).Msg("Project created")
	return project, nil
}

// GetProject retrieves a single project by ID
func (s *Store) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project %s: %w", projectID, err)
	}
	return &project, nil
}

// RecordChat stores one message and the reply it received.
func (s *Store) RecordChat(ctx context.Context, projectID, message, reply string) (*models.ChatRecord, error) {
	record := &models.ChatRecord{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Message:   message,
		Reply:     reply,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to record chat: %w", err)
	}
	return record, nil
}

// ChatHistory returns the most recent exchanges of a project, oldest first.
// A limit of zero or less returns everything.
func (s *Store) ChatHistory(ctx context.Context, projectID string, limit int) ([]models.ChatRecord, error) {
	var records []models.ChatRecord
	q := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return lo.Reverse(records), nil
}
