package cmd

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/rpmbuilder/rpmbuilder/cli/fileset"
	"github.com/rpmbuilder/rpmbuilder/cli/pack"
)

// buildFlags collects the raw command line of one build invocation.
type buildFlags struct {
	version     string
	release     string
	epoch       int32
	arch        string
	license     string
	summary     string
	description string

	compression string
	format      string
	out         string

	files       []string
	execFiles   []string
	configFiles []string
	docFiles    []string
	dirs        []string

	changelog []string

	requires    []string
	provides    []string
	conflicts   []string
	obsoletes   []string
	recommends  []string
	suggests    []string
	supplements []string
	enhances    []string

	preInstallScript    string
	postInstallScript   string
	preUninstallScript  string
	postUninstallScript string

	signWithPGPAsc string
}

// NewBuildCmd creates a new build command.
func NewBuildCmd() *cobra.Command {
	var flags buildFlags

	buildCmd := &cobra.Command{
		Use:   "build <name>",
		Short: "Build a binary rpm package",
		Example: `$ rpmbuilder build myapp --version 1.2.3 \
      --exec-file target/myapp:/usr/bin/myapp \
      --config-file myapp.conf:/etc/myapp.conf \
      --requires "libc.so.6()(64bit)" -o out/`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := runBuild(args[0], &flags); err != nil {
				log.Fatalf(err.Error())
			}
		},
	}

	buildCmd.Flags().StringVar(&flags.version, "version", "1.0.0",
		"Package version")
	buildCmd.Flags().StringVar(&flags.release, "release", "1",
		"Package release")
	buildCmd.Flags().Int32Var(&flags.epoch, "epoch", 0,
		"Package epoch")
	buildCmd.Flags().StringVarP(&flags.arch, "arch", "a", "x86_64",
		"Target architecture")
	buildCmd.Flags().StringVar(&flags.license, "license", "",
		"Package license")
	buildCmd.Flags().StringVarP(&flags.summary, "summary", "s", "",
		"One line package summary")
	buildCmd.Flags().StringVar(&flags.description, "description", "",
		"Package description")

	buildCmd.Flags().StringVar(&flags.compression, "compression", "gzip",
		"Payload compression: gzip, zstd or none")
	buildCmd.Flags().StringVar(&flags.format, "format", "modern",
		"Package digest set: modern or classic")
	buildCmd.Flags().StringVarP(&flags.out, "out", "o", "",
		"Output file or directory")

	buildCmd.Flags().StringArrayVar(&flags.files, "file", nil,
		"Add a file: <source>:<target>")
	buildCmd.Flags().StringArrayVar(&flags.execFiles, "exec-file", nil,
		"Add an executable file: <source>:<target>")
	buildCmd.Flags().StringArrayVar(&flags.configFiles, "config-file", nil,
		"Add a config file: <source>:<target>")
	buildCmd.Flags().StringArrayVar(&flags.docFiles, "doc-file", nil,
		"Add a documentation file: <source>:<target>")
	buildCmd.Flags().StringArrayVar(&flags.dirs, "dir", nil,
		"Add a directory recursively: <source>:<target>")

	buildCmd.Flags().StringArrayVar(&flags.changelog, "changelog", nil,
		"Add a changelog entry: <author>:<text>:<yyyy-mm-dd>")

	buildCmd.Flags().StringArrayVar(&flags.requires, "requires", nil,
		"Add a required dependency: <name> [<op> <version>]")
	buildCmd.Flags().StringArrayVar(&flags.provides, "provides", nil,
		"Add a provided capability: <name> [<op> <version>]")
	buildCmd.Flags().StringArrayVar(&flags.conflicts, "conflicts", nil,
		"Add a conflicting package: <name> [<op> <version>]")
	buildCmd.Flags().StringArrayVar(&flags.obsoletes, "obsoletes", nil,
		"Add an obsoleted package: <name> [<op> <version>]")
	buildCmd.Flags().StringArrayVar(&flags.recommends, "recommends", nil,
		"Add a recommended dependency: <name> [<op> <version>]")
	buildCmd.Flags().StringArrayVar(&flags.suggests, "suggests", nil,
		"Add a suggested dependency: <name> [<op> <version>]")
	buildCmd.Flags().StringArrayVar(&flags.supplements, "supplements", nil,
		"Add a supplemented package: <name> [<op> <version>]")
	buildCmd.Flags().StringArrayVar(&flags.enhances, "enhances", nil,
		"Add an enhanced package: <name> [<op> <version>]")

	buildCmd.Flags().StringVar(&flags.preInstallScript, "pre-install-script", "",
		"Path to the pre-install script")
	buildCmd.Flags().StringVar(&flags.postInstallScript, "post-install-script", "",
		"Path to the post-install script")
	buildCmd.Flags().StringVar(&flags.preUninstallScript, "pre-uninstall-script", "",
		"Path to the pre-uninstall script")
	buildCmd.Flags().StringVar(&flags.postUninstallScript, "post-uninstall-script", "",
		"Path to the post-uninstall script")

	buildCmd.Flags().StringVar(&flags.signWithPGPAsc, "sign-with-pgp-asc", "",
		"Path to an armored PGP private key to sign the package with")

	return buildCmd
}

// collectFileGroup resolves "<source>:<target>" pairs of one file role into
// payload entries and appends them to files.
func collectFileGroup(rawMappings []string, role pack.FileRole,
	files *[]pack.FileEntry,
) error {
	mappings, err := fileset.ParseMappings(rawMappings)
	if err != nil {
		return err
	}

	for _, mapping := range mappings {
		entry, err := fileset.CollectFile(mapping, role)
		if err != nil {
			return err
		}
		*files = append(*files, entry)
	}

	return nil
}

// loadScript reads a scriptlet body from scriptPath. An empty path means
// no scriptlet.
func loadScript(scriptPath string) (string, error) {
	if scriptPath == "" {
		return "", nil
	}

	body, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// runBuild resolves the command line into a package descriptor, assembles
// the package and writes it to the output path.
func runBuild(name string, flags *buildFlags) error {
	descriptor := pack.Descriptor{
		Name:        name,
		Version:     flags.version,
		Release:     flags.release,
		Epoch:       flags.epoch,
		Arch:        flags.arch,
		License:     flags.license,
		Summary:     flags.summary,
		Description: flags.description,
		Compression: pack.Compression(flags.compression),
	}

	switch flags.format {
	case "modern":
		descriptor.Format = pack.FormatModern
	case "classic":
		descriptor.Format = pack.FormatClassic
	default:
		return fmt.Errorf("unknown package format %q", flags.format)
	}

	fileGroups := []struct {
		rawMappings []string
		role        pack.FileRole
	}{
		{flags.files, pack.RoleRegular},
		{flags.execFiles, pack.RoleExecutable},
		{flags.configFiles, pack.RoleConfig},
		{flags.docFiles, pack.RoleDoc},
	}
	for _, group := range fileGroups {
		err := collectFileGroup(group.rawMappings, group.role, &descriptor.Files)
		if err != nil {
			return err
		}
	}

	dirMappings, err := fileset.ParseMappings(flags.dirs)
	if err != nil {
		return err
	}
	for _, mapping := range dirMappings {
		entries, err := fileset.CollectDir(mapping)
		if err != nil {
			return err
		}
		descriptor.Files = append(descriptor.Files, entries...)
	}

	if descriptor.Changelog, err = pack.ParseChangelog(flags.changelog); err != nil {
		return err
	}

	dependencyGroups := []struct {
		rawDeps []string
		dest    *[]pack.Constraint
	}{
		{flags.requires, &descriptor.Requires},
		{flags.provides, &descriptor.Provides},
		{flags.conflicts, &descriptor.Conflicts},
		{flags.obsoletes, &descriptor.Obsoletes},
		{flags.recommends, &descriptor.Recommends},
		{flags.suggests, &descriptor.Suggests},
		{flags.supplements, &descriptor.Supplements},
		{flags.enhances, &descriptor.Enhances},
	}
	for _, group := range dependencyGroups {
		if *group.dest, err = pack.ParseConstraints(group.rawDeps); err != nil {
			return err
		}
	}

	if descriptor.PreInstall, err = loadScript(flags.preInstallScript); err != nil {
		return err
	}
	if descriptor.PostInstall, err = loadScript(flags.postInstallScript); err != nil {
		return err
	}
	if descriptor.PreUninstall, err = loadScript(flags.preUninstallScript); err != nil {
		return err
	}
	if descriptor.PostUninstall, err = loadScript(flags.postUninstallScript); err != nil {
		return err
	}

	var signer pack.Signer
	if flags.signWithPGPAsc != "" {
		keyFile, err := os.Open(flags.signWithPGPAsc)
		if err != nil {
			return err
		}
		defer keyFile.Close()

		pgpSigner, err := pack.NewPGPSigner(keyFile)
		if err != nil {
			return err
		}
		signer = pgpSigner
	}

	builder := pack.Builder{Descriptor: &descriptor, Signer: signer}
	artifact, err := builder.Build()
	if err != nil {
		return err
	}

	outPath := fileset.ResolveOutPath(flags.out, artifact.Filename)
	if err := fileset.WriteArtifact(artifact, outPath); err != nil {
		return err
	}

	log.Infof("Package saved to %s", outPath)

	return nil
}
