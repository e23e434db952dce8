package app

// Command selects the application start-up mode.
type Command string

const (
	// CommandServe starts the web portal.
	CommandServe Command = "serve"
	// CommandMigrate applies pending database migrations.
	CommandMigrate Command = "migrate"
	// CommandHealthcheck probes the /health endpoint of a running server.
	// Used as the Docker healthcheck in distroless images.
	CommandHealthcheck Command = "healthcheck"
	// CommandInspect prints the schema and the registered accounts.
	// Operator convenience for poking at the database file.
	CommandInspect Command = "inspect"
)

// ParseCommand parses the subcommand from the command-line arguments.
// Empty or unrecognized arguments fall back to CommandServe.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandServe
	}

	switch args[0] {
	case "serve":
		return CommandServe
	case "migrate":
		return CommandMigrate
	case "healthcheck":
		return CommandHealthcheck
	case "inspect":
		return CommandInspect
	default:
		return CommandServe
	}
}
