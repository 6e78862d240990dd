package user

import "strings"

// CreateUserDTO is the transport shape for adding a user. Status defaults
// to Active when omitted.
type CreateUserDTO struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Age         int      `json:"age"`
	Status      string   `json:"status"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// UpdateUserDTO is the transport shape for partial edits. Empty and zero
// values mean "keep the stored value": an intentional empty string or zero
// in an edit body is ignored, matching the documented merge semantics.
type UpdateUserDTO struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Age         int      `json:"age"`
	Status      string   `json:"status"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// StatsResponse is the aggregate statistics payload.
type StatsResponse struct {
	TotalUsers           int `json:"totalUsers"`
	UsersRegisteredToday int `json:"usersRegisteredToday"`
	ActiveUsers          int `json:"activeUsers"`
	InactiveUsers        int `json:"inactiveUsers"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateUserDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is malformed"}
	}
	if d.Status != "" && !ValidStatus(d.Status) {
		return ValidationError{Msg: "status must be Active or Inactive"}
	}
	if d.Role != "" && !ValidRole(d.Role) {
		return ValidationError{Msg: "unknown role"}
	}
	if !ValidPermissions(d.Permissions) {
		return ValidationError{Msg: "unknown permission tag"}
	}
	if d.Age < 0 {
		return ValidationError{Msg: "age must not be negative"}
	}
	return nil
}

func (d UpdateUserDTO) Validate() error {
	if d.Email != "" && !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is malformed"}
	}
	if d.Status != "" && !ValidStatus(d.Status) {
		return ValidationError{Msg: "status must be Active or Inactive"}
	}
	if d.Role != "" && !ValidRole(d.Role) {
		return ValidationError{Msg: "unknown role"}
	}
	if !ValidPermissions(d.Permissions) {
		return ValidationError{Msg: "unknown permission tag"}
	}
	if d.Age < 0 {
		return ValidationError{Msg: "age must not be negative"}
	}
	return nil
}
