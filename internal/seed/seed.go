// Package seed provides identity bootstrap and demo-data seeding.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gymdesk/internal/auth"
	"gymdesk/internal/models"
	"gymdesk/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumMembers  int
	NumTrainers int
	ShouldClean bool
}

// Bootstrap admin credentials. The password is a development default;
// production deployments must rotate it after first login.
const (
	AdminEmail    = "admin@gym.com"
	AdminPassword = "Admin@123"
)

var defaultPlans = []models.MembershipType{
	{Name: "Silver", Cost: 30, DurationInMonths: 1},
	{Name: "Gold", Cost: 75, DurationInMonths: 3},
	{Name: "Platinum", Cost: 250, DurationInMonths: 12},
}

var specialties = []string{
	"Strength Training", "Yoga", "CrossFit", "Pilates", "Boxing",
	"Swimming", "Spinning", "Nutrition", "Rehabilitation", "HIIT",
}

// Bootstrap ensures the role catalog and the admin identity exist. It is
// idempotent and safe to run at every startup.
func Bootstrap(ctx context.Context, db *gorm.DB) error {
	users := repository.NewUserRepository(db)

	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		if _, err := users.EnsureRole(ctx, name); err != nil {
			return fmt.Errorf("ensure role %q: %w", name, err)
		}
	}

	admin, err := users.GetByEmail(ctx, AdminEmail)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if admin == nil {
		hash, err := auth.HashPassword(AdminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		admin = &models.User{Email: AdminEmail, PasswordHash: hash}
		if err := users.Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Printf("✓ bootstrap admin %s created", AdminEmail)
	}

	if !admin.HasRole(models.RoleAdmin) {
		if err := users.AddRole(ctx, admin, models.RoleAdmin); err != nil {
			return fmt.Errorf("grant admin role: %w", err)
		}
	}

	return nil
}

// Seed fills the database with demo members, trainers and plans.
func Seed(db *gorm.DB, opts Options) error {
	ctx := context.Background()
	log.Printf("🌱 Seeding %d members and %d trainers...", opts.NumMembers, opts.NumTrainers)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Bootstrap(ctx, db); err != nil {
		return err
	}

	plans, err := createPlans(db)
	if err != nil {
		return fmt.Errorf("failed to create membership types: %w", err)
	}
	log.Printf("✓ %d membership types available", len(plans))

	trainers, err := createTrainers(db, opts.NumTrainers)
	if err != nil {
		return fmt.Errorf("failed to create trainers: %w", err)
	}
	log.Printf("✓ %d trainers created", len(trainers))

	members, err := createMembers(db, plans, opts.NumMembers)
	if err != nil {
		return fmt.Errorf("failed to create members: %w", err)
	}
	log.Printf("✓ %d members created", len(members))

	log.Println("🎉 Seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE members, trainers, membership_types RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createPlans(db *gorm.DB) ([]models.MembershipType, error) {
	plans := make([]models.MembershipType, 0, len(defaultPlans))
	for _, p := range defaultPlans {
		plan := p
		err := db.Where(models.MembershipType{Name: plan.Name}).
			FirstOrCreate(&plan).Error
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func createTrainers(db *gorm.DB, count int) ([]models.Trainer, error) {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	trainers := make([]models.Trainer, 0, count)
	for i := 0; i < count; i++ {
		trainer := models.Trainer{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Specialty: specialties[r.Intn(len(specialties))],
		}
		if err := db.Create(&trainer).Error; err != nil {
			log.Printf("Failed to create trainer: %v", err)
			continue
		}
		trainers = append(trainers, trainer)
	}
	return trainers, nil
}

func createMembers(db *gorm.DB, plans []models.MembershipType, count int) ([]models.Member, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	members := make([]models.Member, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		member := models.Member{
			FirstName:   first,
			LastName:    last,
			Email:       fmt.Sprintf("%s.%s%d@example.com", first, last, i),
			PhoneNumber: gofakeit.Phone(),
			// Spread join dates over the past two years.
			JoinDate:         time.Now().AddDate(0, 0, -r.Intn(730)),
			MembershipTypeID: plans[r.Intn(len(plans))].ID,
		}
		if err := db.Create(&member).Error; err != nil {
			log.Printf("Failed to create member %s: %v", member.Email, err)
			continue
		}
		members = append(members, member)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d members...", i)
		}
	}
	return members, nil
}
