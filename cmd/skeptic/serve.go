package main

import (
	skephttp "github.com/fwojciec/skeptic/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := skephttp.NewServer(deps.Pipeline, deps.Logger)
	return srv.ListenAndServe(deps.Ctx, deps.Config.Addr)
}
