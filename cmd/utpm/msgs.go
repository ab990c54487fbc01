package utpm

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "An unofficial package manager for Typst"
	MsgWorkspaceShort   = "Create, edit and publish the package in the current directory"
	MsgPackagesShort    = "Inspect and remove installed packages"
	MsgLinkShort        = "Link the workspace into the local package directory"
	MsgInitShort        = "Create typst.toml for a new package"
	MsgInstallShort     = "Install a package from git or a path, or every [tool.utpm] dependency"
	MsgAddShort         = "Add dependencies to typst.toml and install them"
	MsgDeleteShort      = "Remove dependencies from typst.toml"
	MsgBumpShort        = "Set a new package version"
	MsgSyncShort        = "Update imports to the newest available versions"
	MsgCloneShort       = "Copy a package, typically a template, into a directory"
	MsgPublishShort     = "Submit the package to typst/packages"
	MsgMetadataShort    = "Print fields of typst.toml"
	MsgTestShort        = "Run the package tests with Tytanic"
	MsgTreeShort        = "Show installed packages as a tree"
	MsgListShort        = "List installed packages"
	MsgPathShort        = "Print the local package directory"
	MsgUnlinkShort      = "Remove an installed namespace, package or version"
	MsgBulkDeleteShort  = "Remove several installed packages at once"
	MsgGetShort         = "Show Typst Universe entries"
	MsgGenerateShort    = "Generate a shell completion script"
	MsgGuideShort       = "Read the utpm guide"
	MsgVersionShort     = "Print version information"
	MsgGenConfigShort   = "Print or write the default configuration"
	MsgNoCommand        = "no command specified"
	MsgUnsupportedShell = "unsupported shell %q (expected bash, zsh, fish or powershell)"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun       = "Preview changes without executing them"
	MsgFlagOutput       = "Output format: text, json, yaml or toml"
	MsgFlagConfig       = "Config file (default $XDG_CONFIG_HOME/utpm/config.toml)"
	MsgFlagForce        = "Overwrite what is already there"
	MsgFlagNamespace    = "Namespace to use instead of [tool.utpm] and the configured default"
	MsgFlagNoCopy       = "Create a symlink instead of copying"
	MsgFlagIgnore       = "Honour .ignore files"
	MsgFlagGitIgnore    = "Honour .gitignore files"
	MsgFlagTypstIgnore  = "Honour .typstignore files"
	MsgFlagGitGlobal    = "Honour the global gitignore"
	MsgFlagGitExclude   = "Honour .git/info/exclude"
	MsgFlagCustomIgnore = "Name of an extra ignore file"
	MsgFlagHidden       = "Include hidden files"
	MsgFlagCli          = "Do not ask questions, use the flags only"
	MsgFlagPopulate     = "Create README, LICENSE, examples and the entrypoint"
	MsgFlagInclude      = "Replace the version in these files too"
	MsgFlagCheck        = "Report outdated imports without rewriting them"
	MsgFlagDownloadOnly = "Download the package without copying it"
	MsgFlagRedownload   = "Download @preview packages again even when cached"
	MsgFlagSymlink      = "Symlink the cached package instead of copying it"
	MsgFlagMessage      = "Commit message"
	MsgFlagPrepareOnly  = "Commit locally but do not push or open a pull request"
	MsgFlagPath         = "Package directory (default current directory)"
	MsgFlagPattern      = "Tytanic test set expression"
	MsgFlagFailFast     = "Stop at the first failing test"
	MsgFlagThreads      = "Number of test threads"
	MsgFlagAll          = "Include downloaded @preview packages"
	MsgFlagIncludeList  = "Only show these packages or namespaces"
	MsgFlagYes          = "Do not ask for confirmation"
	MsgFlagList         = "List the guide topics"
	MsgFlagWrite        = "Write the file instead of printing it"
	MsgFlagRefresh      = "Fetch the index again instead of using the cache"
)

// Flag descriptions of `ws init`
const (
	MsgInitName        = "Package name"
	MsgInitVersion     = "Package version (default 1.0.0)"
	MsgInitEntrypoint  = "Entrypoint file (default main.typ)"
	MsgInitAuthors     = "Authors"
	MsgInitLicense     = "SPDX license identifier"
	MsgInitDescription = "Short description"
	MsgInitRepository  = "Repository URL"
	MsgInitHomepage    = "Homepage URL"
	MsgInitKeywords    = "Keywords"
	MsgInitCategories  = "Typst Universe categories"
	MsgInitDisciplines = "Typst Universe disciplines"
	MsgInitCompiler    = "Minimum compiler version"
	MsgInitExclude     = "Files excluded from the package"
	MsgInitTemplate    = "Template directory"
	MsgInitTemplEntry  = "Template entry file"
	MsgInitThumbnail   = "Template thumbnail"
)

// MsgRootLong is shown by `utpm --help`.
const MsgRootLong = `utpm manages Typst packages on your machine.

It links the package you are working on into Typst's local package directory,
installs dependencies declared in typst.toml, lists and removes installed
packages, downloads packages from Typst Universe and prepares submissions to
typst/packages.`

// MsgGenerateLong documents where completion scripts go.
const MsgGenerateLong = `Generate a completion script for bash, zsh, fish or powershell.

Bash:
  $ source <(utpm generate bash)

Zsh:
  $ utpm generate zsh > "${fpath[1]}/_utpm"

Fish:
  $ utpm generate fish > ~/.config/fish/completions/utpm.fish

PowerShell:
  PS> utpm generate powershell | Out-String | Invoke-Expression`

// MsgGenConfigLong explains where gen-config writes.
const MsgGenConfigLong = `Print the default configuration, or write it with --write.

Without a path the file goes to $XDG_CONFIG_HOME/utpm/config.toml, or to
UTPM_CONFIG_FILE when it is set. An existing file is kept unless --force is given.`

// MsgUsageTemplate replaces cobra's usage template with grouped, bold headers.
const MsgUsageTemplate = `{{boldUpper "Usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases"}}:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples"}}:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Commands"}}:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold .Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
