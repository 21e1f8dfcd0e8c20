package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/mansionmuse/backend/internal/constants"
	"github.com/mansionmuse/backend/internal/models"
	"github.com/mansionmuse/backend/internal/repositories"
	"github.com/mansionmuse/backend/internal/utils"
)

const (
	seedAdminEmail    = "admin@mansionmuse.app"
	seedAdminPassword = "ChangeMeOnFirstLogin1!"
)

// SeedDefaultData creates the admin account and the default plan catalog.
// Idempotent: existing rows are left alone.
func SeedDefaultData(
	ctx context.Context,
	ownerRepo repositories.OwnerRepository,
	planRepo repositories.PlanRepository,
) error {
	if err := seedDefaultPlans(ctx, planRepo); err != nil {
		return err
	}
	return seedAdminOwner(ctx, ownerRepo)
}

func seedDefaultPlans(ctx context.Context, planRepo repositories.PlanRepository) error {
	defaults := []*models.Plan{
		{
			ID:           uuid.New(),
			Name:         "Starter",
			PriceMonthly: 499,
			AllowedModules: []string{
				constants.ModuleDashboard,
				constants.ModuleProperties,
				constants.ModuleTenants,
			},
			MaxProperties: 1,
			IsActive:      true,
		},
		{
			ID:             uuid.New(),
			Name:           "Pro",
			PriceMonthly:   1499,
			AllowedModules: constants.AllModules,
			MaxProperties:  10,
			IsActive:       true,
		},
	}

	for _, plan := range defaults {
		existing, err := planRepo.GetByName(ctx, plan.Name)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("check plan %q: %w", plan.Name, err)
		}
		if existing != nil {
			continue
		}
		if err := planRepo.Create(ctx, plan); err != nil {
			return fmt.Errorf("seed plan %q: %w", plan.Name, err)
		}
		utils.Logger.Infof("Seeded plan %q", plan.Name)
	}
	return nil
}

func seedAdminOwner(ctx context.Context, ownerRepo repositories.OwnerRepository) error {
	existing, err := ownerRepo.GetByEmail(ctx, seedAdminEmail)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin account: %w", err)
	}
	if existing != nil {
		utils.Logger.Info("Admin account already present; skipping seeding.")
		return nil
	}

	hash, err := utils.HashPassword(seedAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.Owner{
		ID:           uuid.New(),
		Name:         "Platform Admin",
		Email:        seedAdminEmail,
		Phone:        "0000000000",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		PGName:       "MansionMuse",
		IsActive:     true,
	}
	if err := ownerRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}
	utils.Logger.Info("Seeded admin account.")
	return nil
}
