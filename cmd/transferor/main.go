package main

import (
	"github.com/gridwm/transferor/cmd/transferor/cmd"
	"github.com/gridwm/transferor/internal/common"
)

func main() {
	common.ConfigureCommandLineLogging()
	cmd.Execute()
}
