package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/arogyavax/internal/config"
	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository/postgres"
	"github.com/jwalitptl/arogyavax/pkg/logger"
	"github.com/jwalitptl/arogyavax/pkg/security"
)

// demoPassword is shared by every seeded account.
const demoPassword = "demo1234"

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func schedule() []model.Vaccine {
	type jab struct {
		name, timing, desc string
		days               int
	}
	jabs := []jab{
		{"BCG", "At Birth", "Protects against tuberculosis", 0},
		{"OPV-0", "At Birth", "Oral polio vaccine, zero dose", 0},
		{"Hepatitis B-1", "At Birth", "Hepatitis B birth dose", 0},
		{"Pentavalent-1", "6 Weeks", "DPT, Hep B and Hib, first dose", 42},
		{"Rotavirus-1", "6 Weeks", "Rotavirus diarrhoea, first dose", 42},
		{"Pentavalent-2", "10 Weeks", "DPT, Hep B and Hib, second dose", 70},
		{"Pentavalent-3", "14 Weeks", "DPT, Hep B and Hib, third dose", 98},
		{"Measles-Rubella-1", "9 Months", "Measles and rubella, first dose", 270},
		{"DPT Booster-1", "16-24 Months", "Diphtheria, pertussis and tetanus booster", 480},
	}

	vaccines := make([]model.Vaccine, 0, len(jabs))
	for _, j := range jabs {
		vaccines = append(vaccines, model.Vaccine{
			Name:            j.name,
			TimingLabel:     strPtr(j.timing),
			Description:     strPtr(j.desc),
			AgeRequiredDays: intPtr(j.days),
		})
	}
	return vaccines
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Console)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	if err := postgres.ApplySchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	hash, err := security.NewBcryptHasher(cfg.Auth.BcryptCost).Hash(demoPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash demo password")
	}

	today := model.Today()
	dob := today.AddDays(-40)
	data := postgres.SeedData{
		Hospital: model.Hospital{Name: cfg.Hospital.DefaultName, Location: strPtr(cfg.Hospital.DefaultLocation)},
		Users: []model.User{
			{
				Name:         "John Doe",
				Email:        "john@demo.com",
				PasswordHash: hash,
				Role:         model.RolePatient,
				Status:       model.UserStatusActive,
				Phone:        strPtr("9876543210"),
				DOB:          &dob,
			},
			{
				Name:             "Nurse Mary",
				Email:            "mary@demo.com",
				PasswordHash:     hash,
				Role:             model.RoleNurse,
				Status:           model.UserStatusActive,
				HospitalLocation: strPtr(cfg.Hospital.DefaultName),
			},
		},
		Vaccines:        schedule(),
		StockPerJab:     50,
		AppointmentFor:  "john@demo.com",
		AppointmentDate: today,
	}

	if err := postgres.NewSeeder(postgres.NewBaseRepository(db, nil)).Seed(ctx, data); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().
		Strs("accounts", []string{"john@demo.com", "mary@demo.com"}).
		Str("password", demoPassword).
		Msg("seeding complete")
}
