// Seeds a test household with three guests and prints their invite links.
// Safe to run repeatedly: existing records are reused.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"wedding-invite/config"
	"wedding-invite/internal/models"
	"wedding-invite/internal/repository"
	"wedding-invite/pkg/database"
)

const seedHouseholdName = "Test Family"

type seedGuest struct {
	name   string
	gender models.Gender
	head   bool
	age    *int
}

func main() {
	cfg := config.Load()
	db := database.NewPostgresDB(cfg.DSN())

	households := repository.NewHouseholdRepository(db)
	guests := repository.NewGuestRepository(db)
	ctx := context.Background()

	household, err := households.FindByName(ctx, seedHouseholdName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		household = &models.Household{HouseholdName: seedHouseholdName}
		if err := households.Create(ctx, household); err != nil {
			log.Fatalf("create household: %v", err)
		}
		fmt.Println("created household", seedHouseholdName)
	} else if err != nil {
		log.Fatalf("find household: %v", err)
	}

	childAge := 8
	for _, sg := range []seedGuest{
		{name: "Anton (Admin)", gender: models.GenderMale, head: true},
		{name: "Elena (Partner)", gender: models.GenderFemale},
		{name: "Masha (Kid)", gender: models.GenderFemale, age: &childAge},
	} {
		guest, err := guests.FindByHouseholdAndName(ctx, household.ID, sg.name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			guest = &models.Guest{
				GuestName:         sg.name,
				Gender:            sg.gender,
				IsHeadOfHousehold: sg.head,
				Age:               sg.age,
				HouseholdID:       household.ID,
			}
			if err := guests.Create(ctx, guest); err != nil {
				log.Fatalf("create guest %s: %v", sg.name, err)
			}
		} else if err != nil {
			log.Fatalf("find guest %s: %v", sg.name, err)
		}
		fmt.Printf("%-18s http://localhost:%s/?token=%s\n", sg.name, cfg.ServerPort, guest.InviteToken)
	}
}
