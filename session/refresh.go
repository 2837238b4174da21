package session

import (
	"context"
	"encoding/json"
	"net/http"

	apierrors "github.com/ludmilpaulo/rayleneimmigration.co.za/internal/errors"
)

// refreshKey is the singleflight key; there is only ever one refresh to share
const refreshKey = "refresh"

// refresh mints a new access token from the refresh endpoint. Concurrent
// callers share one network call and its outcome: the first 401 starts the
// refresh, later 401s wait on it. On failure the persisted token is cleared
// and the redirect hook fires exactly once for the whole group.
func (c *Client) refresh(ctx context.Context) (string, error) {
	result, err, _ := c.refreshGroup.Do(refreshKey, func() (any, error) {
		return c.doRefresh()
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) doRefresh() (string, error) {
	started := c.nowTime()
	c.logger.Debug().Msg("refreshing access token")

	// Detached from any single request's context: N requests may be waiting
	// on this one call, so only the dedicated refresh timeout bounds it.
	ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
	defer cancel()

	// The refresh credential travels as a same-origin cookie via the jar; no
	// bearer header here.
	resp, err := c.dispatch(ctx, http.MethodPost, "/auth/refresh/", nil, "")
	if err != nil {
		return "", c.failRefresh(apierrors.Wrapf(apierrors.ErrRefreshFailed, "refresh: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drain(resp.Body)
		return "", c.failRefresh(apierrors.Wrapf(apierrors.ErrRefreshFailed, "refresh: status %d", resp.StatusCode))
	}

	var tokens tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return "", c.failRefresh(apierrors.Wrapf(apierrors.ErrRefreshFailed, "refresh: decode response: %v", err))
	}
	if tokens.Access == "" {
		return "", c.failRefresh(apierrors.Wrapf(apierrors.ErrRefreshFailed, "refresh: empty access token"))
	}

	if err := c.tokens.Set(tokens.Access); err != nil {
		return "", c.failRefresh(apierrors.Wrapf(apierrors.ErrRefreshFailed, "refresh: persist token: %v", err))
	}
	c.logger.Debug().Dur("took", c.nowTime().Sub(started)).Msg("access token refreshed")
	return tokens.Access, nil
}

// failRefresh clears the dead session and sends the caller back to the login
// entry point. Runs inside the singleflight call, so concurrent waiters see
// one cleanup and one redirect.
func (c *Client) failRefresh(err error) error {
	c.logger.Warn().Err(err).Msg("token refresh failed, session is over")
	c.setUser(nil)
	if clearErr := c.tokens.Clear(); clearErr != nil {
		c.logger.Warn().Err(clearErr).Msg("clearing token after failed refresh")
	}
	c.redirect(c.loginPath)
	return err
}
