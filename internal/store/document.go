package store

import (
	"encoding/json"
	"time"
)

// Record is a schemaless row held in one of the document's extra collections.
type Record = map[string]any

// Admin is the persisted shape of an administrator account. The bcrypt hash
// is stored under the "password" key; plaintext never reaches the document.
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// User is the persisted shape of a managed user record.
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

// Document is the entire persisted state. The admins and users collections
// are typed; every other top-level collection round-trips untouched so the
// generic record API can serve it.
type Document struct {
	Admins      []Admin
	Users       []User
	Collections map[string][]Record
}

func NewDocument() *Document {
	return &Document{
		Admins:      []Admin{},
		Users:       []User{},
		Collections: map[string][]Record{},
	}
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Admins = []Admin{}
	d.Users = []User{}
	d.Collections = map[string][]Record{}

	for name, payload := range raw {
		switch name {
		case "admins":
			if err := json.Unmarshal(payload, &d.Admins); err != nil {
				return err
			}
		case "users":
			if err := json.Unmarshal(payload, &d.Users); err != nil {
				return err
			}
		default:
			var records []Record
			if err := json.Unmarshal(payload, &records); err != nil {
				return err
			}
			d.Collections[name] = records
		}
	}
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Collections)+2)
	out["admins"] = d.Admins
	out["users"] = d.Users
	if d.Admins == nil {
		out["admins"] = []Admin{}
	}
	if d.Users == nil {
		out["users"] = []User{}
	}
	for name, records := range d.Collections {
		out[name] = records
	}
	return json.Marshal(out)
}

// NextAdminID returns the next monotonic admin id. Must be called inside the
// store's Update critical section.
func (d *Document) NextAdminID() int64 {
	var max int64
	for _, a := range d.Admins {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

// NextUserID returns the next monotonic user id.
func (d *Document) NextUserID() int64 {
	var max int64
	for _, u := range d.Users {
		if u.ID > max {
			max = u.ID
		}
	}
	return max + 1
}

// NextRecordID returns the next monotonic id within an extra collection.
func (d *Document) NextRecordID(collection string) int64 {
	var max int64
	for _, rec := range d.Collections[collection] {
		if id, ok := RecordID(rec); ok && id > max {
			max = id
		}
	}
	return max + 1
}

// RecordID extracts the numeric id of a schemaless record. JSON decoding
// yields float64 for numbers; ids written by this process are int64.
func RecordID(rec Record) (int64, bool) {
	switch v := rec["id"].(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	default:
		return 0, false
	}
}

// Collection returns the named collection as schemaless records. The typed
// admins and users collections are converted so the generic API sees the
// same document json-server style.
func (d *Document) Collection(name string) ([]Record, error) {
	switch name {
	case "admins":
		return toRecords(d.Admins)
	case "users":
		return toRecords(d.Users)
	default:
		records := d.Collections[name]
		if records == nil {
			records = []Record{}
		}
		return records, nil
	}
}

// SetCollection replaces the named collection from schemaless records,
// converting back into the typed slices for admins and users.
func (d *Document) SetCollection(name string, records []Record) error {
	switch name {
	case "admins":
		return fromRecords(records, &d.Admins)
	case "users":
		return fromRecords(records, &d.Users)
	default:
		d.Collections[name] = records
		return nil
	}
}

func toRecords(v any) ([]Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func fromRecords(records []Record, target any) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
