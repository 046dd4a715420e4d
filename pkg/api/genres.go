package api

import "context"

// Genres lists the active genres. Inactive genres are dropped.
func (c *Client) Genres(ctx context.Context, refresh bool) ([]Genre, error) {
	var all []Genre
	err := c.cached(ctx, "genres", "all", refresh, &all, func() error {
		var err error
		all, err = getList[Genre](ctx, c, "/api/genres", authNone)
		return err
	})
	if err != nil {
		return nil, err
	}
	active := make([]Genre, 0, len(all))
	for _, g := range all {
		if g.Active {
			active = append(active, g)
		}
	}
	return active, nil
}
