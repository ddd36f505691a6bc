package main

import (
	"context"
	"time"

	"github.com/dsmarket/product-service/config"
	"github.com/dsmarket/product-service/internal/app"
	"github.com/dsmarket/product-service/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	productService := app.New(sigCtx, cfg)

	productService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	productService.Close(ctx)
}
