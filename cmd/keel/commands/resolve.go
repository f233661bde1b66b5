package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/keel/internal/app"
)

// addResolveFlags registers the flags shared by every command that resolves a graph.
func addResolveFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("keelfile", "f", "", "Path to the consumer manifest (default keelfile.yaml)")
	flags.StringArrayP("require", "r", nil, "Resolve this requirement instead of the keelfile")
	flags.StringP("profile", "p", "", "Host profile name or path (default: detected)")
	flags.String("profile-build", "", "Build profile name or path (default: host profile)")
	flags.StringArrayP("settings", "s", nil, "Host setting override, e.g. build_type=Debug")
	flags.StringArrayP("options", "o", nil, "Option assignment, e.g. zlib:shared=True")
	flags.StringArrayP("build", "b", nil, "Build policy: never, missing, always or reference patterns")
	flags.StringP("lockfile", "l", "", "Pin every package to the references of a lockfile")
	flags.String("settings-schema", "", "Path to a settings schema")
}

func resolveOptions(cmd *cobra.Command) app.ResolveOptions {
	flags := cmd.Flags()
	keelfile, _ := flags.GetString("keelfile")
	requires, _ := flags.GetStringArray("require")
	host, _ := flags.GetString("profile")
	build, _ := flags.GetString("profile-build")
	settings, _ := flags.GetStringArray("settings")
	options, _ := flags.GetStringArray("options")
	policy, _ := flags.GetStringArray("build")
	lockfile, _ := flags.GetString("lockfile")
	schema, _ := flags.GetString("settings-schema")

	return app.ResolveOptions{
		Keelfile:     keelfile,
		Requires:     requires,
		HostProfile:  host,
		BuildProfile: build,
		Settings:     settings,
		Options:      options,
		Build:        policy,
		Lockfile:     lockfile,
		Schema:       schema,
	}
}
