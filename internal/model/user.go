package model

// User represents an entry of the users collection.  Identity is the
// ID field; it is unique within the collection.  Only admin callers
// may create, rename or delete users.
//
// Fields:
//  ID      – unique user identifier.
//  Name    – display name, mutable by admins.
//  IsAdmin – whether the user holds admin privileges.
type User struct {
	ID      string `json:"id"`       // users[].id
	Name    string `json:"name"`     // users[].name
	IsAdmin bool   `json:"is_admin"` // users[].is_admin
}

// AdminStatus is the answer of the is_admin lookup consumed by every
// service's admin guard.
type AdminStatus struct {
	ID      string `json:"id"`
	IsAdmin bool   `json:"is_admin"`
}
