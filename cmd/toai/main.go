package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/temirov/toai/internal/cli"
	"github.com/temirov/toai/internal/utils"
)

// main is the entry point for the toai command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() { _ = loggerInstance.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if applicationExecutionError := cli.Execute(ctx); applicationExecutionError != nil {
		stop()
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}
}
