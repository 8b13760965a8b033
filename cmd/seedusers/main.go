package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffclock/attendance-backend-go/internal/config"
	"github.com/staffclock/attendance-backend-go/internal/pkg/database"
	"github.com/staffclock/attendance-backend-go/internal/pkg/validator"
)

type seedUser struct {
	name         string
	email        string
	employeeCode string
	department   string
	position     string
	leaveBalance float64
	isAdmin      bool
}

var seedUsers = []seedUser{
	{
		name:         "Admin User",
		email:        "admin@example.com",
		employeeCode: "EMP001",
		department:   "IT",
		position:     "System Administrator",
		leaveBalance: 20.00,
		isAdmin:      true,
	},
	{
		name:         "John Doe",
		email:        "john@example.com",
		employeeCode: "EMP002",
		department:   "Engineering",
		position:     "Software Developer",
		leaveBalance: 15.00,
		isAdmin:      false,
	},
	{
		name:         "Jane Smith",
		email:        "jane@example.com",
		employeeCode: "EMP003",
		department:   "Marketing",
		position:     "Marketing Manager",
		leaveBalance: 18.00,
		isAdmin:      false,
	},
}

// Seeds the default accounts (password "password" for all of them).
// Re-running is safe; existing emails are left untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error hashing password: ", err)
	}

	for _, u := range seedUsers {
		if !validator.IsValidEmployeeCode(u.employeeCode) {
			log.Fatalf("invalid employee code %q for %s", u.employeeCode, u.email)
		}

		tag, err := db.Exec(ctx, `
			INSERT INTO users (id, name, email, employee_code, password_hash, department, position, leave_balance, is_admin)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (email) DO NOTHING
		`, uuid.New().String(), u.name, u.email, u.employeeCode, string(hashed), u.department, u.position, u.leaveBalance, u.isAdmin)
		if err != nil {
			log.Fatalf("Error seeding user %s: %v", u.email, err)
		}

		if tag.RowsAffected() == 0 {
			fmt.Printf("skipped %s (already exists)\n", u.email)
		} else {
			fmt.Printf("created %s (%s)\n", u.email, u.employeeCode)
		}
	}
}
