// Resolves an invite token and prints the guest and household it maps to.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"wedding-invite/config"
	"wedding-invite/internal/repository"
	"wedding-invite/pkg/database"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: verifytoken <invite-token>")
		os.Exit(2)
	}
	token := os.Args[1]
	if _, err := uuid.Parse(token); err != nil {
		log.Fatalf("malformed token: %v", err)
	}

	cfg := config.Load()
	db := database.NewPostgresDB(cfg.DSN())

	guests := repository.NewGuestRepository(db)
	households := repository.NewHouseholdRepository(db)
	ctx := context.Background()

	guest, err := guests.FindByToken(ctx, token)
	if err != nil {
		log.Fatalf("token does not resolve: %v", err)
	}
	household, err := households.FindByID(ctx, guest.HouseholdID)
	if err != nil {
		log.Fatalf("household lookup: %v", err)
	}

	fmt.Printf("guest:     %s (%s)\n", guest.GuestName, guest.ID)
	fmt.Printf("household: %s (%s)\n", household.HouseholdName, household.ID)
	fmt.Printf("head:      %v\n", guest.IsHeadOfHousehold)
	if guest.IsAttending == nil {
		fmt.Println("attending: unanswered")
	} else {
		fmt.Printf("attending: %v\n", *guest.IsAttending)
	}
}
