package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultLogPath is used when --debug is given without --logfile
const DefaultLogPath = "pbrconvert.log"

// Commands understood by the CLI
var commands = map[string]bool{
	"convert": true,
	"stats":   true,
}

// ParseArguments converts command-line arguments (without the program name)
// into a map of flags and values. The command, if any, is stored under "command".
func ParseArguments(argv []string) map[string]string {
	args := make(map[string]string)

	// First, identify the command (convert/stats)
	commandIndex := -1
	for i, arg := range argv {
		if commands[arg] {
			args["command"] = arg
			commandIndex = i
			break
		}
	}

	// Process all arguments, skipping the command
	for i := 0; i < len(argv); i++ {
		if i == commandIndex {
			continue
		}

		arg := argv[i]

		// Handle flags with equals sign (--key=value)
		if strings.HasPrefix(arg, "--") && strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flagName := strings.TrimPrefix(parts[0], "--")
			args[flagName] = parts[1]
			continue
		}

		// Handle flags without equals sign (--key value)
		if strings.HasPrefix(arg, "--") {
			flagName := strings.TrimPrefix(arg, "--")

			// Boolean flag when nothing follows or another flag or the command does
			if i+1 >= len(argv) || strings.HasPrefix(argv[i+1], "--") || i+1 == commandIndex {
				args[flagName] = "true"
			} else {
				args[flagName] = argv[i+1]
				i++ // Skip the value in the next iteration
			}
		}
	}

	return args
}

// GetDefaultDatabasePath returns the default path for the manifest database
func GetDefaultDatabasePath() string {
	exePath, err := os.Executable()
	if err != nil {
		// Fallback to current directory if executable path can't be determined
		return "pbrconvert.db"
	}

	return filepath.Join(filepath.Dir(exePath), "pbrconvert.db")
}

// PrintUsage outputs the command-line usage instructions
func PrintUsage(out io.Writer, program string) {
	fmt.Fprintf(out, "Usage:\n")
	fmt.Fprintf(out, "  %s convert [--folder=PATH] [--database=PATH] [--no-database] [--force] [--workers=N] [--include-generated] [--debug] [--logfile=PATH]\n", program)
	fmt.Fprintf(out, "  %s stats [--database=PATH] [--folder=PATH]\n", program)
	fmt.Fprintf(out, "\nParameters:\n")
	fmt.Fprintf(out, "  --folder            : Folder containing the textures (prompted for when omitted)\n")
	fmt.Fprintf(out, "  --database          : Path to manifest database (default: %s)\n", GetDefaultDatabasePath())
	fmt.Fprintf(out, "  --no-database       : Convert without reading or writing the manifest\n")
	fmt.Fprintf(out, "  --force             : Convert textures even if they are unchanged since the last run\n")
	fmt.Fprintf(out, "  --workers           : Number of textures converted in parallel (default: CPU count)\n")
	fmt.Fprintf(out, "  --include-generated : Also convert *_mer and *_normal files\n")
	fmt.Fprintf(out, "  --debug             : Enable debug mode (logs detailed information)\n")
	fmt.Fprintf(out, "  --logfile           : Specify custom log file path (default: %s)\n", DefaultLogPath)
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  %s convert --folder=/path/to/textures/blocks --debug\n", program)
	fmt.Fprintf(out, "  %s stats --folder=/path/to/textures/blocks\n", program)
}

// ParseWorkers parses and validates the worker count from string
func ParseWorkers(workersStr string, fallback int) (int, error) {
	workers, err := strconv.Atoi(workersStr)
	if err != nil || workers < 1 {
		return fallback, fmt.Errorf("invalid worker count '%s', using default (%d)", workersStr, fallback)
	}
	return workers, nil
}

// PromptForFolder asks for the texture folder until an existing directory is
// entered
func PromptForFolder(in io.Reader, out io.Writer) (string, error) {
	reader := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Texture folder: ")
		if !reader.Scan() {
			if err := reader.Err(); err != nil {
				return "", fmt.Errorf("failed to read folder: %w", err)
			}
			return "", fmt.Errorf("no folder given")
		}

		folder := strings.Trim(strings.TrimSpace(reader.Text()), `"'`)
		if folder == "" {
			continue
		}

		info, err := os.Stat(folder)
		if err != nil {
			fmt.Fprintf(out, "Cannot access %s: %v\n", folder, err)
			continue
		}
		if !info.IsDir() {
			fmt.Fprintf(out, "Not a directory: %s\n", folder)
			continue
		}
		return folder, nil
	}
}
