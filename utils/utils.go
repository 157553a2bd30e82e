package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseArguments converts command-line arguments into a map of flags and
// values. The first bare "hash" or "scan" token is treated as the command.
func ParseArguments() map[string]string {
	args := make(map[string]string)

	command := ""
	commandIndex := -1
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "hash" || os.Args[i] == "scan" {
			command = os.Args[i]
			commandIndex = i
			break
		}
	}

	if command != "" {
		args["command"] = command
	}

	// Process all arguments, skipping the command.
	for i := 1; i < len(os.Args); i++ {
		if i == commandIndex {
			continue
		}

		arg := os.Args[i]

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

			if i+1 >= len(os.Args) || strings.HasPrefix(os.Args[i+1], "--") {
				args[flagName] = "true"
			} else {
				args[flagName] = os.Args[i+1]
				i++ // Skip the value in the next iteration
			}
		}
	}

	return args
}

// PrintUsage outputs the command-line usage instructions.
func PrintUsage() {
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s hash --image=PATH [--variants] [--debug] [--logfile=PATH]\n", os.Args[0])
	fmt.Printf("  %s scan --folder=PATH [--distance=BITS] [--debug] [--logfile=PATH]\n", os.Args[0])
	fmt.Printf("\nParameters:\n")
	fmt.Printf("  --image       : Path to the image to fingerprint\n")
	fmt.Printf("  --folder      : Path to folder to scan for near-duplicate images\n")
	fmt.Printf("  --distance    : Hamming distance threshold for grouping (0-64, default: 15)\n")
	fmt.Printf("  --variants    : Also print the 8 dihedral hash variants\n")
	fmt.Printf("  --debug       : Enable debug mode (logs detailed information)\n")
	fmt.Printf("  --logfile     : Specify custom log file path (default: rupphash.log)\n")
	fmt.Printf("\nExamples:\n")
	fmt.Printf("  %s hash --image=/path/to/photo.jpg\n", os.Args[0])
	fmt.Printf("  %s scan --folder=/path/to/photos --distance=10\n", os.Args[0])
}

// ParseDistance parses and validates a Hamming distance threshold.
func ParseDistance(distanceStr string, defaultValue int) (int, error) {
	parsed, err := strconv.Atoi(distanceStr)
	if err != nil || parsed < 0 || parsed > 64 {
		return defaultValue, fmt.Errorf("invalid distance value '%s', using default (%d)", distanceStr, defaultValue)
	}
	return parsed, nil
}
