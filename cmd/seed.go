package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"admin-dashboard/internal"
	authJSONStore "admin-dashboard/internal/auth/jsonstore"
	"admin-dashboard/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	seedEmail    string
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an initial administrator account",
	Long:  `Create the first administrator account in the document store so the dashboard can be logged into.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		if seedPassword == "" {
			log.Fatal("--password is required")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		docStore := store.NewDocumentStore(cfg.Store.Path)
		repo := authJSONStore.NewRepository(docStore)

		err = repo.Create(&store.Admin{
			Email:        seedEmail,
			PasswordHash: string(hash),
			Role:         "admin",
			CreatedAt:    time.Now(),
		})
		if errors.Is(err, internal.ErrAdminExists) {
			fmt.Println("admin already exists:", seedEmail)
			return
		}
		if err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}

		fmt.Println("Seeded admin:", seedEmail)
	},
}
