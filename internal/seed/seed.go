// Package seed provides database seeding utilities for development.
package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	PostsPerUser int
	ShouldClean  bool
}

// DefaultPassword is the password assigned to every seeded user.
const DefaultPassword = "password123"

// Run populates the database with fake users and posts.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 10
	}
	if opts.PostsPerUser <= 0 {
		opts.PostsPerUser = 3
	}

	if opts.ShouldClean {
		if err := db.Exec("TRUNCATE TABLE posts, users CASCADE").Error; err != nil {
			return fmt.Errorf("clean tables: %w", err)
		}
		log.Println("Cleaned existing data")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i := 0; i < opts.NumUsers; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:    gofakeit.Email(),
			Password: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		for j := 0; j < opts.PostsPerUser; j++ {
			post := models.Post{
				Title:    gofakeit.Sentence(5),
				Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
				AuthorID: user.ID,
			}
			if err := db.Create(&post).Error; err != nil {
				return fmt.Errorf("create post: %w", err)
			}
		}
	}

	log.Printf("Seeded %d users with %d posts each (password: %q)",
		opts.NumUsers, opts.PostsPerUser, DefaultPassword)
	return nil
}
