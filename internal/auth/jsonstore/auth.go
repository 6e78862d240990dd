// Package jsonstore adapts the document store to the auth repository
// contract.
package jsonstore

import (
	"admin-dashboard/internal"
	"admin-dashboard/internal/auth"
	"admin-dashboard/internal/store"
)

type Repository struct {
	store *store.DocumentStore
}

var _ auth.Repository = (*Repository)(nil)

func NewRepository(s *store.DocumentStore) *Repository {
	return &Repository{store: s}
}

// GetByEmail finds an administrator by exact email match.
func (r *Repository) GetByEmail(email string) (*store.Admin, error) {
	var found *store.Admin

	err := r.store.View(func(doc *store.Document) error {
		for i := range doc.Admins {
			if doc.Admins[i].Email == email {
				admin := doc.Admins[i]
				found = &admin
				return nil
			}
		}
		return internal.ErrAdminNotFound
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, internal.NewInternalError("failed to read document", err)
	}

	return found, nil
}

// Create appends a new administrator. The duplicate-email check and the id
// assignment happen inside the store's single-writer critical section.
func (r *Repository) Create(admin *store.Admin) error {
	err := r.store.Update(func(doc *store.Document) error {
		for i := range doc.Admins {
			if doc.Admins[i].Email == admin.Email {
				return internal.ErrAdminExists
			}
		}
		admin.ID = doc.NextAdminID()
		doc.Admins = append(doc.Admins, *admin)
		return nil
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		return internal.NewInternalError("failed to persist admin", err)
	}
	return nil
}
