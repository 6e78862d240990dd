package user

import (
	"time"

	"admin-dashboard/internal/store"
)

// Status values are a closed, case-sensitive enum. The capitalized form is
// canonical; inputs are validated against it, never normalized.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Roles is the closed catalog of organizational titles. Informational
// only; it does not grant any authorization.
var Roles = []string{
	"admin",
	"manager",
	"moderator",
	"teamLead",
	"securityGuard",
	"fieldSupervisor",
	"client",
	"itSpecialist",
	"hrManager",
	"dispatcher",
}

// Permissions is the closed catalog of capability tags. Informational
// only; nothing in this system enforces them.
var Permissions = []string{
	"createPost",
	"editPost",
	"deletePost",
	"viewReports",
	"manageUsers",
	"manageRoles",
	"exportData",
	"viewFinance",
}

// User is the API-facing user record.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Age         int       `json:"age,omitempty"`
	Status      string    `json:"status"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func ValidPermissions(perms []string) bool {
	for _, p := range perms {
		known := false
		for _, catalog := range Permissions {
			if p == catalog {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}

func FromDataModel(record *store.User) *User {
	perms := record.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &User{
		ID:          record.ID,
		Name:        record.Name,
		Email:       record.Email,
		Phone:       record.Phone,
		Age:         record.Age,
		Status:      record.Status,
		Role:        record.Role,
		Permissions: perms,
		CreatedAt:   record.CreatedAt,
	}
}
