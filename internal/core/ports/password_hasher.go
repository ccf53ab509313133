package ports

// PasswordHasher wraps a salted one-way hash. Hashing the same plaintext
// twice yields different strings; Verify compares in constant time.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
