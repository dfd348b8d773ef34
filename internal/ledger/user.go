package ledger

// DefaultUserID owns every transaction recorded through the HTTP API.
const DefaultUserID = 1

// User owns transactions. Only the bcrypt hash of the password is kept.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"-"`
}
