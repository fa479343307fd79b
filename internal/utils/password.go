package utils // package utils provides helper primitives shared across handlers

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt with a configurable cost factor. bcrypt salts every
// hash itself, so two hashes of the same password differ while both
// verify. Costs outside bcrypt's supported range are clamped to the
// library default.
type Hasher struct{ cost int }

// NewHasher returns a Hasher using the given bcrypt cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify safely compares a stored digest against a plaintext candidate.
func (h *Hasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
