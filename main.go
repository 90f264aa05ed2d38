package main

import (
	"github.com/mj1618/grabtext/cmd"

	// Platform backends register themselves with internal/platform.
	_ "github.com/mj1618/grabtext/internal/platform/linux"
	_ "github.com/mj1618/grabtext/internal/platform/windows"
)

func main() {
	cmd.Execute()
}
