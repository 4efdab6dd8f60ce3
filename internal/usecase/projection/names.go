// Package projection resolves owner names for the read views returned by the
// loan and receipt usecases.
package projection

import (
	"context"

	"agricredit-backend/internal/domain/user"
)

// Names maps user id to full name, loaded with a single batched lookup.
// Zero ids are ignored; ids without a user are absent from the map.
func Names(ctx context.Context, users user.Repository, ids ...uint64) (map[uint64]string, error) {
	seen := make(map[uint64]struct{}, len(ids))
	uniq := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	out := make(map[uint64]string, len(uniq))
	if len(uniq) == 0 {
		return out, nil
	}
	found, err := users.GetByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	for _, u := range found {
		out[u.ID] = u.FullName
	}
	return out, nil
}
