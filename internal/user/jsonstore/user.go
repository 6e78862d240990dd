// Package jsonstore adapts the document store to the user repository
// contract.
package jsonstore

import (
	"admin-dashboard/internal"
	"admin-dashboard/internal/store"
	"admin-dashboard/internal/user"
)

type Repository struct {
	store *store.DocumentStore
}

var _ user.Repository = (*Repository)(nil)

func NewRepository(s *store.DocumentStore) *Repository {
	return &Repository{store: s}
}

func (r *Repository) GetByID(id int64) (*store.User, error) {
	var found *store.User

	err := r.store.View(func(doc *store.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				record := doc.Users[i]
				found = &record
				return nil
			}
		}
		return internal.ErrUserNotFound
	})
	if err != nil {
		return nil, wrap(err, "failed to read document")
	}

	return found, nil
}

func (r *Repository) List() ([]store.User, error) {
	var records []store.User

	err := r.store.View(func(doc *store.Document) error {
		records = append([]store.User{}, doc.Users...)
		return nil
	})
	if err != nil {
		return nil, wrap(err, "failed to read document")
	}

	return records, nil
}

// Create appends a new user. Duplicate-email check and id assignment run
// inside the store's single-writer critical section.
func (r *Repository) Create(u *store.User) error {
	err := r.store.Update(func(doc *store.Document) error {
		for i := range doc.Users {
			if doc.Users[i].Email == u.Email {
				return internal.ErrEmailExists
			}
		}
		u.ID = doc.NextUserID()
		doc.Users = append(doc.Users, *u)
		return nil
	})
	return wrap(err, "failed to persist user")
}

// Update applies mutate to the stored record and re-checks the email
// uniqueness invariant before saving.
func (r *Repository) Update(id int64, mutate func(*store.User)) (*store.User, error) {
	var updated *store.User

	err := r.store.Update(func(doc *store.Document) error {
		idx := -1
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return internal.ErrUserNotFound
		}

		mutate(&doc.Users[idx])

		for i := range doc.Users {
			if i != idx && doc.Users[i].Email == doc.Users[idx].Email {
				return internal.ErrEmailExists
			}
		}

		record := doc.Users[idx]
		updated = &record
		return nil
	})
	if err != nil {
		return nil, wrap(err, "failed to persist user")
	}

	return updated, nil
}

func (r *Repository) Delete(id int64) error {
	err := r.store.Update(func(doc *store.Document) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
				return nil
			}
		}
		return internal.ErrUserNotFound
	})
	return wrap(err, "failed to persist user")
}

func wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := internal.IsAppError(err); ok {
		return err
	}
	return internal.NewInternalError(message, err)
}
