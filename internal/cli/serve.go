package cli

import "context"

// ServeCmd runs the HTTP and gRPC servers with the streak reconciler
type ServeCmd struct{}

func (c *ServeCmd) Run(ctx *Context) error {
	a, _, log, err := ctx.app(context.Background())
	if err != nil {
		return err
	}
	defer log.Sync()

	return a.Run(context.Background())
}
