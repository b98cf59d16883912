package model

// PasswordHasher derives and verifies slow salted hashes. The same
// primitive is used for passwords and for 2FA backup codes.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}
