package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tberndt/sheetfeed/internal/creds"
	"github.com/tberndt/sheetfeed/internal/manager"
)

// rootCmd represents the base command for the sheetfeed application
var rootCmd = &cobra.Command{
	Use:   "sheetfeed",
	Short: "Publishes tabular datasets into Google Sheets with Drive-hosted images",
	Long: `sheetfeed authenticates against Google Drive and Google Sheets with a
service account and publishes tabular datasets into spreadsheets, resolving
Drive-hosted files into embeddable images.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// Global credential and folder flags, shared by every subcommand.
var (
	folderID        string
	credentialsFile string
	envFile         string
	credentialsEnv  string
	debugMode       bool
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "sheetfeed version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&folderID, "folder", "", "Google Drive folder ID to operate on. Can also use SHEETFEED_FOLDER env var.")
	rootCmd.PersistentFlags().StringVar(&credentialsFile, "credentials-file", "", "Path to a service account JSON file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a dotenv file holding the service account JSON in an environment variable")
	rootCmd.PersistentFlags().StringVar(&credentialsEnv, "credentials-env", "", fmt.Sprintf("Environment variable holding the service account JSON (default: %s)", creds.DefaultEnvVar))
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// credentialSource picks the source the flags describe. Precedence follows
// specificity: an explicit file beats a dotenv file beats the plain
// environment variable fallback.
func credentialSource() creds.Source {
	switch {
	case credentialsFile != "":
		return creds.FromFile(credentialsFile)
	case envFile != "":
		return creds.FromEnvFile(envFile, credentialsEnv)
	default:
		return creds.FromEnvVar(credentialsEnv)
	}
}

// resolveFolderID falls back to the SHEETFEED_FOLDER environment variable
// when the --folder flag is not set.
func resolveFolderID() (string, error) {
	if folderID != "" {
		return folderID, nil
	}
	if id := os.Getenv("SHEETFEED_FOLDER"); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("a Drive folder is required: set --folder or SHEETFEED_FOLDER")
}

// newManager builds the authenticated manager from the global flags.
func newManager(ctx context.Context) (*manager.Manager, error) {
	folder, err := resolveFolderID()
	if err != nil {
		return nil, err
	}

	return manager.New(ctx, manager.Config{
		Source:   credentialSource(),
		FolderID: folder,
		Logger:   newLogger(),
	})
}

// newLogger builds the CLI logger. Logs go to stderr so command output on
// stdout stays machine-readable.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
