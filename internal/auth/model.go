package auth

// Account is a registered identity. UserName is immutable and globally
// unique; ID is the owner key for every other entity.
type Account struct {
	ID             int64
	UserName       string
	PasswordDigest string
}

// NewAccount carries the raw registration input. The password is kept in
// plain form only until the digest is computed.
type NewAccount struct {
	UserName        string
	Password        string
	PasswordConfirm string
}

type Credentials struct {
	UserName string
	Password string
}
