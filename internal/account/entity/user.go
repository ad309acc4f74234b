package entity

// User is a registered account. PasswordHash is stored under "password" to
// stay compatible with existing documents and is never sent to clients.
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"password" db:"password_hash"`
	Name         string `json:"name" db:"name"`
}

// PublicView is the projection returned to clients.
type PublicView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Public() PublicView {
	return PublicView{ID: u.ID, Email: u.Email, Name: u.Name}
}
