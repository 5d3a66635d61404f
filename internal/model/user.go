package model

import "time"

// DefaultAvatarURL is applied by the database when a user registers without
// a profile picture.
const DefaultAvatarURL = "https://i.pinimg.com/564x/af/0a/0a/af0a0af3734b37b50e7f48eacb3b09a6.jpg"

// User represents a row in the `users` table. Passwords are stored as bcrypt
// hashes; the plain password never leaves the registration or login handler.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	Username     – display name, defaults to "Guest".
//	Pfp          – profile picture URL, defaults to DefaultAvatarURL.
//	CreatedAt    – timestamp of creation.
//	EditedAt     – when the profile was last edited (nil until first edit).
type User struct {
	ID           uint64     // users.id
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Username     string     // users.username
	Pfp          string     // users.pfp
	CreatedAt    time.Time  // users.created_at
	EditedAt     *time.Time // users.edited_at (nullable)
}

// Public returns the payload-safe view of the user. The password hash is
// never serialized into a response payload.
func (u User) Public() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"username":  u.Username,
		"pfp":       u.Pfp,
		"createdAt": u.CreatedAt,
	}
}
