package main

import (
	"fmt"

	"github.com/TheOne1006/kbsite/gin"
	gingonic "github.com/gin-gonic/gin"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	gingonic.SetMode(gingonic.ReleaseMode)

	s := gin.NewServer(deps.Registry)
	s.Addr = c.Addr
	s.Manager = deps.Manager
	s.Extractor = deps.Extractor
	s.Syncer = deps.Syncer
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot listen on %s: %v\n", c.Addr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", s.URL())

	<-deps.Ctx.Done()
	return s.Close()
}
