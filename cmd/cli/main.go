package main

import (
	"fmt"
	"os"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/sec-atlas/pkg/runtime/terminal"
	checksaws "github.com/de-tools/sec-atlas/pkg/services/checks/aws"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Factory: checksaws.RegistryFactory,
		Catalog: checksaws.NewRegistry(awssdk.Config{}),
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
