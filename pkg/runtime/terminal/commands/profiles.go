package commands

import (
	"fmt"

	"github.com/de-tools/sec-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct {
	configPath      string
	credentialsPath string
}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the AWS profiles found in the shared config files",
		RunE:  pc.run,
	}

	configPath, credentialsPath, _ := config.DefaultProfilePaths()
	cmd.Flags().StringVar(&pc.configPath, "config", configPath, "Path to the shared AWS config file")
	cmd.Flags().StringVar(&pc.credentialsPath, "credentials", credentialsPath, "Path to the shared AWS credentials file")

	return cmd
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	registry, err := config.NewProfileRegistry(pc.configPath, pc.credentialsPath)
	if err != nil {
		return fmt.Errorf("failed to load AWS profiles: %w", err)
	}

	profiles, err := registry.GetProfiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No AWS profiles found")
		return nil
	}

	for _, profile := range profiles {
		region, err := registry.GetRegion(profile)
		if err != nil || region == "" {
			region = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Name: `%s`, Region: `%s`\n", profile, region)
	}
	return nil
}
