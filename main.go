package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"pbrconvert/database"
	"pbrconvert/logging"
	"pbrconvert/pbr"
	"pbrconvert/scanner"
	"pbrconvert/signalhandler"
	"pbrconvert/utils"
)

func main() {
	// Set the optimal number of CPUs to use
	runtime.GOMAXPROCS(runtime.NumCPU())

	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run executes one CLI invocation and returns the process exit status
func run(argv []string, stdin io.Reader, stdout io.Writer) int {
	// Parse command line arguments into a map
	args := utils.ParseArguments(argv)
	program := filepath.Base(os.Args[0])

	command, hasCommand := args["command"]
	if !hasCommand {
		utils.PrintUsage(stdout, program)
		return 1
	}

	// Set default database path
	dbPath := utils.GetDefaultDatabasePath()
	if customDB, ok := args["database"]; ok && customDB != "" {
		dbPath = customDB
	} else if customDB, ok := args["db"]; ok && customDB != "" {
		// Allow --db as an alias for --database
		dbPath = customDB
	}

	// Setup file logging; debug output only in debug mode
	_, debugMode := args["debug"]
	logPath, hasLogPath := args["logfile"]
	if debugMode || hasLogPath {
		if logPath == "" || logPath == "true" {
			logPath = utils.DefaultLogPath
		}
		if err := logging.SetupLogger(logPath, debugMode); err != nil {
			fmt.Fprintf(stdout, "Warning: Failed to setup logging: %v\n", err)
		} else {
			defer logging.CloseLogger()
			if debugMode {
				fmt.Fprintf(stdout, "Debug mode enabled. Logging to: %s\n", logPath)
			}
		}
	}

	switch command {
	case "convert":
		return handleConvertCommand(args, dbPath, debugMode, stdin, stdout)
	case "stats":
		return handleStatsCommand(args, dbPath, stdout)
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n", command)
		utils.PrintUsage(stdout, program)
		return 1
	}
}

// resolveFolder returns the absolute texture folder from --folder or the prompt
func resolveFolder(args map[string]string, stdin io.Reader, stdout io.Writer) (string, error) {
	folderPath := args["folder"]
	if folderPath == "" || folderPath == "true" {
		var err error
		folderPath, err = utils.PromptForFolder(stdin, stdout)
		if err != nil {
			return "", err
		}
	}

	folderInfo, err := os.Stat(folderPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("folder path does not exist: %s", folderPath)
		}
		return "", fmt.Errorf("cannot access folder path: %s (%v)", folderPath, err)
	}
	if !folderInfo.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", folderPath)
	}

	return filepath.Abs(folderPath)
}

func handleConvertCommand(args map[string]string, dbPath string, debugMode bool, stdin io.Reader, stdout io.Writer) int {
	folderPath, err := resolveFolder(args, stdin, stdout)
	if err != nil {
		logging.LogError("%v", err)
		return 1
	}

	maxWorkers := signalhandler.GetOptimalProcs()
	if workersStr, ok := args["workers"]; ok {
		parsed, err := utils.ParseWorkers(workersStr, maxWorkers)
		if err != nil {
			fmt.Fprintf(stdout, "Warning: %v\n", err)
		}
		maxWorkers = parsed
	}

	_, forceRewrite := args["force"]
	_, includeGenerated := args["include-generated"]
	_, noDatabase := args["no-database"]

	scanOptions := scanner.ScanOptions{
		FolderPath:       folderPath,
		ForceRewrite:     forceRewrite,
		DebugMode:        debugMode,
		IncludeGenerated: includeGenerated,
		MaxWorkers:       maxWorkers,
		Pipeline:         pbr.Options{Normal: pbr.DefaultNormalOptions()},
		Progress:         stdout,
	}

	if !noDatabase {
		db, err := database.InitDatabase(dbPath)
		if err != nil {
			logging.LogError("Error initializing database: %v", err)
			return 1
		}
		defer db.Close()

		manifest := database.NewManifest(db)
		scanOptions.Manifest = manifest
		if debugMode {
			logging.DebugLog("Manifest %s, run %s", dbPath, manifest.RunID())
		}
	}

	// Cancel between textures on SIGINT/SIGTERM
	ctx, cancel := signalhandler.SetupHandler()
	defer cancel()

	report, err := scanner.ConvertFolder(ctx, scanOptions)
	if err != nil {
		logging.LogError("Error converting folder: %v", err)
		return 1
	}

	scanner.PrintCompletionStats(stdout, report)
	if !noDatabase {
		fmt.Fprintf(stdout, "Database: %s\n", dbPath)
	}

	if !report.OK() {
		return 1
	}
	return 0
}

func handleStatsCommand(args map[string]string, dbPath string, stdout io.Writer) int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		logging.LogError("Database does not exist: %s. Run convert command first.", dbPath)
		return 1
	}

	folder := ""
	if f, ok := args["folder"]; ok && f != "" {
		abs, err := filepath.Abs(f)
		if err != nil {
			logging.LogError("Invalid folder %s: %v", f, err)
			return 1
		}
		folder = abs
	}

	db, err := database.OpenDatabase(dbPath)
	if err != nil {
		logging.LogError("Error opening database: %v", err)
		return 1
	}
	defer db.Close()

	return printStats(db, folder, stdout)
}

func printStats(db *sql.DB, folder string, stdout io.Writer) int {
	stats, err := database.GetConversionStats(db, folder)
	if err != nil {
		logging.LogError("Error reading statistics: %v", err)
		return 1
	}

	fmt.Fprintf(stdout, "Summary:\n")
	if folder != "" {
		fmt.Fprintf(stdout, "- Folder: %s\n", folder)
	}
	fmt.Fprintf(stdout, "- Converted textures: %d\n", stats.TotalTextures)
	fmt.Fprintf(stdout, "- Runs: %d\n", stats.Runs)
	for _, c := range stats.Categories {
		fmt.Fprintf(stdout, "  %-16s %d\n", c.Category, c.Count)
	}
	return 0
}
