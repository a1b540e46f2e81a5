package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/joe/folder-manager/internal/config"
	"github.com/joe/folder-manager/internal/engine"
	"github.com/joe/folder-manager/internal/session"
	"github.com/joe/folder-manager/internal/tui/shared"
)

// errConfirmationRequired is returned when a mutating tool runs without a
// terminal and without --yes.
var errConfirmationRequired = errors.New("refusing to modify folders without confirmation; pass --yes")

// runHeadless executes the selected tool without the TUI, printing plain
// text. Mutating tools still honor the preview/confirm contract: without
// --yes they stop after printing the plan.
func runHeadless(cfg *config.Config, logger *session.Logger) error {
	eng := engine.New(engine.Options{Excludes: cfg.Exclude, Logger: logger})

	switch cfg.Tool {
	case config.ToolPrune:
		return headlessPrune(eng, cfg)
	case config.ToolClone:
		return headlessClone(eng, cfg)
	case config.ToolCount:
		return headlessCount(eng, cfg)
	case config.ToolFlatten:
		return headlessFlatten(eng, cfg)
	case config.ToolNone:
		return nil
	default:
		return fmt.Errorf("unknown tool: %v", cfg.Tool)
	}
}

func headlessPrune(eng *engine.Engine, cfg *config.Config) error {
	scan, err := eng.ScanEmpty(cfg.Path)
	if err != nil {
		return err
	}

	fmt.Printf("Empty folder structures under %s: %d\n", cfg.Path, len(scan.Empty))

	for _, folder := range scan.Empty {
		fmt.Println("  " + folder)
	}

	if len(scan.Empty) == 0 {
		return nil
	}

	if !cfg.SkipConfirmation {
		return errConfirmationRequired
	}

	result, err := eng.DeleteEmpty(cfg.Path, scan.Empty)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d, skipped %d\n", len(result.Deleted), len(result.Skipped))

	return firstError(result.Errors)
}

func headlessClone(eng *engine.Engine, cfg *config.Config) error {
	scan, err := eng.ScanStructure(cfg.SourcePath)
	if err != nil {
		return err
	}

	fmt.Printf("Folders to create under %s: %d (%d files ignored)\n",
		cfg.DestPath, len(scan.Folders), scan.FilesSkipped)

	if !cfg.SkipConfirmation {
		return errConfirmationRequired
	}

	result, err := eng.CloneStructure(cfg.DestPath, scan.Folders)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d folders, %d already existed\n", len(result.Created), len(result.Existed))

	return firstError(result.Errors)
}

func headlessCount(eng *engine.Engine, cfg *config.Config) error {
	result, err := eng.CountFiles(cfg.Path)
	if err != nil {
		return err
	}

	fmt.Printf("Files at root level:     %d\n", result.RootOnly)
	fmt.Printf("Files in all subfolders: %d\n", result.Recursive)
	fmt.Printf("Folders:                 %d\n", result.Folders)
	fmt.Printf("Total size:              %s\n", shared.FormatBytes(result.TotalBytes))

	exts := make([]string, 0, len(result.ByExtension))
	for ext := range result.ByExtension {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	for _, ext := range exts {
		fmt.Printf("  %-12s %d\n", ext, result.ByExtension[ext])
	}

	return firstError(result.Errors)
}

func headlessFlatten(eng *engine.Engine, cfg *config.Config) error {
	plan, err := eng.PlanFlatten(cfg.Path)
	if err != nil {
		return err
	}

	fmt.Printf("Files to move to root: %d (%d conflicts)\n", len(plan.Moves), plan.Conflicts())

	if len(plan.Moves) == 0 {
		return nil
	}

	if !cfg.SkipConfirmation {
		return errConfirmationRequired
	}

	result, err := eng.ApplyFlatten(plan, cfg.Conflict)
	if err != nil {
		return err
	}

	fmt.Printf("Moved %d files, skipped %d, removed %d emptied folders\n",
		len(result.Moved), len(result.Skipped), len(result.RemovedFolders))

	return firstError(result.Errors)
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%d operations failed, first: %w", len(errs), errs[0])
}
