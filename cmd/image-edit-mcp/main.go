package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-edit-mcp/internal/cli"
	"github.com/ironsheep/image-edit-mcp/internal/config"
	"github.com/ironsheep/image-edit-mcp/internal/editor"
	"github.com/ironsheep/image-edit-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("%s %s\n", server.Name, Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Printf("%s - MCP server for image editing\n", server.Name)
			fmt.Println()
			fmt.Printf("Usage: %s [options]\n", server.Name)
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug    Enable debug logging\n", cli.LogLevelEnv)
			fmt.Printf("  %s=<file>      YAML defaults for quality, colors and fonts\n", config.EnvPath)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(config.Path(""))
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	var opts []editor.Option
	if os.Getenv(cli.LogLevelEnv) == "debug" {
		log.Printf("Image edit MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		opts = append(opts, editor.WithLogger(log.Default()))
	}

	srv := server.New(editor.New(cfg, opts...))
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
