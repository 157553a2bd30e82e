package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/Safari77/rupphash/imageloader"
	"github.com/Safari77/rupphash/logging"
	"github.com/Safari77/rupphash/phash"
	"github.com/Safari77/rupphash/scanner"
	"github.com/Safari77/rupphash/signalhandler"
	"github.com/Safari77/rupphash/utils"
)

func main() {
	// Set up proper signal handling
	signalhandler.SetupHandler()

	runtime.GOMAXPROCS(signalhandler.GetMaxWorkers())

	// Parse command line arguments into a map
	args := utils.ParseArguments()

	command, hasCommand := args["command"]

	// Setup debug logging if enabled
	debugMode := false
	if _, ok := args["debug"]; ok {
		debugMode = true
		logPath := "rupphash.log"
		if customLogPath, ok := args["logfile"]; ok && customLogPath != "" {
			logPath = customLogPath
		}
		if err := logging.SetupLogger(logPath); err != nil {
			fmt.Printf("Warning: Failed to setup logging: %v\n", err)
		} else {
			fmt.Printf("Debug mode enabled. Logging to: %s\n", logPath)
		}
		defer logging.CloseLogger()
	}

	// Check if required arguments are missing
	showUsage := !hasCommand

	if hasCommand && command == "hash" && args["image"] == "" {
		showUsage = true
	}

	if hasCommand && command == "scan" && args["folder"] == "" {
		showUsage = true
	}

	if showUsage {
		utils.PrintUsage()
		os.Exit(1)
	}

	switch command {
	case "hash":
		handleHashCommand(args, debugMode)
	case "scan":
		handleScanCommand(args, debugMode)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		utils.PrintUsage()
		os.Exit(1)
	}
}

// handleHashCommand fingerprints a single image and prints the native hash,
// the per-rotation hashes and the rotation-invariant minimum.
func handleHashCommand(args map[string]string, debugMode bool) {
	imagePath, hasImage := args["image"]
	if !hasImage {
		fmt.Println("Error: Missing image path (use --image=PATH)")
		os.Exit(1)
	}

	if _, err := os.Stat(imagePath); os.IsNotExist(err) {
		fmt.Printf("Image does not exist: %s\n", imagePath)
		os.Exit(1)
	}

	img, err := imageloader.LoadImage(imagePath)
	if err != nil {
		fmt.Printf("Error opening image: %v\n", err)
		os.Exit(1)
	}

	native, canonical, err := phash.ComputeCanonical(img)
	if err != nil {
		fmt.Printf("Error computing hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File: %s\n", imagePath)
	if imageloader.IsRawFormat(imagePath) {
		fmt.Printf("EXIF orientation: %d\n", imageloader.Orientation(imagePath))
	}
	fmt.Printf("Standard pHash (Hex): %s\n", native)
	fmt.Printf("Standard pHash (Bin): %s\n", native.Binary())

	fmt.Printf("\nRotational variations:\n")
	angles := []phash.Rotation{phash.Rotate0, phash.Rotate90, phash.Rotate180, phash.Rotate270}
	for _, angle := range angles {
		h, err := phash.ComputeRotated(img, angle)
		if err != nil {
			fmt.Printf("Error computing hash for rotation %d: %v\n", angle, err)
			os.Exit(1)
		}
		fmt.Printf("Rot %3d°: %s  (Bin: %s)\n", angle, h, h.Binary())
	}

	fmt.Printf("Min Hash: %s\n", canonical)

	if _, ok := args["variants"]; ok {
		fmt.Printf("\nDihedral variants (hash domain):\n")
		names := []string{"original", "rot90", "rot180", "rot270",
			"flip", "flip+rot90", "flip+rot180", "flip+rot270"}
		for i, v := range native.Variants() {
			fmt.Printf("%-12s: %s\n", names[i], v)
		}
	}

	if debugMode {
		logging.DebugLog("Hashed %s - native: %s, canonical: %s", imagePath, native, canonical)
	}
}

// handleScanCommand hashes every image under a folder and prints groups of
// near-duplicates.
func handleScanCommand(args map[string]string, debugMode bool) {
	folderPath, hasFolder := args["folder"]
	if !hasFolder {
		fmt.Println("Error: Missing folder path (use --folder=PATH)")
		os.Exit(1)
	}

	// Verify folder path exists and is accessible
	folderInfo, err := os.Stat(folderPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("Folder path does not exist: %s\n", folderPath)
		} else {
			fmt.Printf("Cannot access folder path: %s (%v)\n", folderPath, err)
		}
		os.Exit(1)
	}
	if !folderInfo.IsDir() {
		fmt.Printf("Path is not a directory: %s\n", folderPath)
		os.Exit(1)
	}

	maxDistance := phash.DefaultMaxDistance
	if distanceStr, ok := args["distance"]; ok {
		parsed, err := utils.ParseDistance(distanceStr, phash.DefaultMaxDistance)
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		maxDistance = parsed
	}

	startTime := time.Now()

	scanOptions := scanner.ScanOptions{
		FolderPath:  folderPath,
		MaxDistance: maxDistance,
		DebugMode:   debugMode,
		MaxWorkers:  signalhandler.GetMaxWorkers(),
	}

	infos, err := scanner.ScanFolder(scanOptions)
	if err != nil {
		fmt.Printf("Error scanning folder: %v\n", err)
		os.Exit(1)
	}

	groups := scanner.GroupDuplicates(infos, maxDistance)

	if len(groups) == 0 {
		fmt.Println("\nNo duplicate groups found.")
	} else {
		fmt.Printf("\nFound %d duplicate group(s):\n", len(groups))
		for i, group := range groups {
			fmt.Printf("\nGroup %d (max distance %d bits):\n", i+1, group.MaxDist)
			for _, file := range group.Files {
				fmt.Printf("  %s  %dx%d  %d bytes  %s\n",
					file.CanonicalHash, file.Width, file.Height, file.Size, file.Path)
			}
		}
	}

	duration := time.Since(startTime)
	fmt.Printf("\nTotal scan time: %v\n", duration)
}
