package auth

import (
	"context"

	"github.com/iliyamo/todo-auth/internal/model"
)

// maxChainHops bounds family-invalidation traversal. Chains grow by one per
// legitimate rotation, so anywhere near this length means corrupt data.
const maxChainHops = 4096

// Rotate exchanges a presented refresh token for a new access/refresh pair.
//
// A refresh token is one-time use. Presenting a token that is already
// inactive is a reuse signal (theft, or a stale client replaying an earlier
// token) and invalidates every descendant reachable through token_child
// links, returning RefreshRejectedError with the count.
//
// The lookup→consume→insert sequence is a critical section: rotation is
// serialized per token value by the configured Locker, and the store-level
// conditional consume (MarkConsumed) is the cross-process guard. A rotation
// that loses the conditional write withdraws its freshly issued token and
// rejects.
func (s *Service) Rotate(ctx context.Context, presented string) (*model.TokenPair, error) {
	release, err := s.locks.Lock(ctx, presented)
	if err != nil {
		return nil, err
	}
	defer release()

	tok, err := s.tokens.Find(ctx, presented)
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, &RefreshRejectedError{}
	}

	if !tok.Active {
		n, err := s.invalidateFamily(ctx, tok)
		if err != nil {
			return nil, err
		}
		if s.audit != nil {
			s.audit.TokenReuseDetected(ctx, ReuseReport{
				UserID:      tok.UserID,
				Invalidated: n,
				DetectedAt:  s.now(),
			})
		}
		return nil, &RefreshRejectedError{Invalidated: n}
	}

	if tok.NotAfter.Before(s.now()) {
		// Expiry is not a reuse signal; the token stays active and the
		// chain stays intact.
		return nil, ErrRefreshExpired
	}

	user, err := s.users.FindByID(ctx, tok.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidUser
	}

	access, err := s.codec.Encode(user, s.now())
	if err != nil {
		return nil, err
	}
	child, err := s.issueRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	won, err := s.tokens.MarkConsumed(ctx, presented, child.Token)
	if err != nil {
		return nil, err
	}
	if !won {
		// Another rotation consumed the token between our lookup and the
		// conditional write. Withdraw the token we just issued.
		if err := s.tokens.Deactivate(ctx, child.Token); err != nil {
			return nil, err
		}
		return nil, &RefreshRejectedError{}
	}

	return &model.TokenPair{AuthToken: access, RefreshToken: child.Token}, nil
}

// invalidateFamily deactivates every descendant of from, following
// token_child links iteratively. A visited set and hop bound guard against
// cycles in malformed data. The count includes every node walked, whether
// or not it was still active.
func (s *Service) invalidateFamily(ctx context.Context, from *model.RefreshToken) (int, error) {
	invalidated := 0
	visited := map[string]bool{from.Token: true}
	next := from.TokenChild
	for hops := 0; next != nil && hops < maxChainHops; hops++ {
		value := *next
		if visited[value] {
			break
		}
		visited[value] = true

		if err := s.tokens.Deactivate(ctx, value); err != nil {
			return invalidated, err
		}
		invalidated++

		node, err := s.tokens.Find(ctx, value)
		if err != nil {
			return invalidated, err
		}
		if node == nil {
			break
		}
		next = node.TokenChild
	}
	return invalidated, nil
}
