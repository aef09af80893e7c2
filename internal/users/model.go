package users

import "time"

// User is an account that owns candidates and jobs. PasswordHash is empty
// for accounts created through OAuth.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	CompanyName  *string   `json:"companyName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
