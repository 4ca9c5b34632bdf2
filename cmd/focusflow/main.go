package main

import (
	"os"

	"github.com/ajshul/focusflow/assistantservice"
)

func main() {
	if err := assistantservice.Run(); err != nil {
		os.Exit(1)
	}
}
