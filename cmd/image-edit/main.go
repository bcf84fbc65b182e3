package main

import (
	"context"
	"os"

	"github.com/ironsheep/image-edit-tools/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd := cli.NewCLI(cli.BuildInfo{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit})
	os.Exit(cli.Execute(context.Background(), cmd))
}
