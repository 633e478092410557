package models

// User is the stored form of an account. Optional credentials are omitted
// from documents so the sparse unique indexes skip them.
type User struct {
	UserID           string  `bson:"_id" db:"user_id"`
	Email            string  `bson:"email" db:"email"`
	PasswordHash     *string `bson:"password,omitempty" db:"password_hash"`
	GoogleID         *string `bson:"googleId,omitempty" db:"google_id"`
	Provider         string  `bson:"provider" db:"provider"`
	FirstName        string  `bson:"firstName" db:"first_name"`
	LastName         string  `bson:"lastName" db:"last_name"`
	Photo            string  `bson:"photo" db:"photo"`
	ProfileCompleted bool    `bson:"profileCompleted" db:"profile_completed"`
	Bio              string  `bson:"bio" db:"bio"`
	Gender           string  `bson:"gender" db:"gender"`
	Phone            string  `bson:"phone" db:"phone"`
	Username         string  `bson:"username" db:"username"`
	DateOfBirth      string  `bson:"dob,omitempty" db:"dob"`

	AuditFields `bson:",inline"`
}
