// SPDX-License-Identifier: MIT

package server

import (
	"context"

	"github.com/katalvlaran/boltzmann/boltzmann"
)

// ExecuteRequest prepares req and drives it through execute, returning the
// records emitted and the iterations the run performed.
func ExecuteRequest(ctx context.Context, s *Server, req Request, emit func(boltzmann.Record) error) (records, iterations int, err error) {
	p, err := prepare(req, s.cfg, s.guard)
	if err != nil {
		return 0, 0, err
	}
	records, err = s.execute(ctx, s.logger, "run-under-test", p, emit)

	return records, p.run.Iterations(), err
}
