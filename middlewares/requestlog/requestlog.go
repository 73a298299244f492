// Package requestlog logs one line per request round trip.
package requestlog

import (
	"context"
	"time"

	"github.com/projectdiscovery/gologger"

	"github.com/cacexp/wrequest"
)

// New returns the middleware. Completed requests log at debug level,
// failed ones at warning level, both with the elapsed time.
func New() wrequest.Middleware {
	return func(next wrequest.Handler) wrequest.Handler {
		return func(ctx context.Context, req *wrequest.PreparedRequest) (*wrequest.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			elapsed := time.Since(start)
			if err != nil {
				gologger.Warning().Msgf("%s %s failed after %v: %v", req.Method(), req.U, elapsed, err)
				return resp, err
			}
			gologger.Debug().Msgf("%s %s %d (%v)", req.Method(), req.U, resp.StatusCode(), elapsed)
			return resp, nil
		}
	}
}
