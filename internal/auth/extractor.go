package auth

import "strings"

// authScheme is the credential scheme expected in the Authorization header,
// compared case-insensitively.
const authScheme = "token"

// Authorize parses a bearer credential of the form "token <jwt>", verifies
// it and returns the decoded claims. A missing header, a wrong scheme or a
// missing token part all yield ErrNoToken; verification failures surface as
// ErrTokenExpired or ErrInvalidToken from the codec. Permission checks on
// the returned claims are the caller's job.
func (s *Service) Authorize(header string) (*Claims, error) {
	if strings.TrimSpace(header) == "" {
		return nil, ErrNoToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) {
		return nil, ErrNoToken
	}
	return s.codec.Decode(parts[1])
}
