package main

import (
	"context"
	"fmt"
	"os"

	"ocr-gateway/internal/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "ocr-gateway failed: %v\n", err)
		os.Exit(1)
	}
}
