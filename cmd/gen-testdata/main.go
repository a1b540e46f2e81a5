// Package main generates a playground folder tree for exercising the folder
// manager: nested folders with files, scattered empty structures, and name
// collisions for the flatten tool to resolve. The same seed always produces
// the same tree.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexflint/go-arg"
	"github.com/brianvoe/gofakeit/v6"
)

// Generation shape. Mirrors the kind of tree the tools are built for:
// mostly-populated folders with a scattering of empty subtrees.
const (
	maxDepth         = 4
	maxFoldersPerDir = 4
	maxFilesPerDir   = 5
	emptyChance      = 0.3
	descendChance    = 0.7
	dirPermissions   = 0o750
	filePermissions  = 0o600
	sentenceWords    = 12
)

type args struct {
	Dir   string `arg:"-d,--dir" default:"Test_Folder_Structure" help:"Directory to create the tree in"`
	Seed  int64  `arg:"-s,--seed" help:"Seed for deterministic output (0 = random)"`
	Force bool   `arg:"-f,--force" help:"Remove the target directory first if it exists"`
}

// Description returns the program description for go-arg
func (args) Description() string {
	return "Generate a folder tree with empty structures and file collisions for testing"
}

// Version returns the version string for go-arg
func (args) Version() string {
	return "gen-testdata 1.0.0"
}

//nolint:gochecknoglobals // Static name pools, read-only after init
var (
	folderNames = []string{
		"Projects", "Documents", "Downloads", "Photos", "Videos", "Music",
		"Work", "Personal", "Archive", "Backup", "Temp", "Cache",
		"Reports", "Drafts", "Final", "Review", "Approved",
		"Client_A", "Client_B", "Project_X", "Project_Y",
		"2023", "2024", "2025", "Q1", "Q2", "Q3", "Q4",
		"Alpha", "Beta", "Production", "Development", "Testing",
	}

	fileNames = []string{
		"readme.txt", "notes.txt", "todo.txt", "summary.txt",
		"report.docx", "data.xlsx", "config.json", "settings.ini",
		"log.txt", "error.log", "document.pdf", "guide.txt",
		"budget.xlsx", "meeting_notes.txt", "agenda.txt",
	}

	// Purely empty subtrees for the prune tool to find.
	emptyStructures = [][]string{
		{"Old_Projects", "Project_2022", "Client_Work", "Abandoned"},
		{"Temp_Files", "Cache", "Browser_Cache", "System_Cache"},
		{"Backup_Old", "Archive_2023", "Documents", "Drafts"},
		{"Empty_Structure", "Level_2", "Level_3", "Level_4"},
	}
)

type generator struct {
	faker   *gofakeit.Faker
	folders int
	files   int
	empty   int
}

func main() {
	var parsed args

	arg.MustParse(&parsed)

	err := run(parsed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(parsed args) error {
	_, err := os.Stat(parsed.Dir)
	if err == nil {
		if !parsed.Force {
			return fmt.Errorf("refusing to overwrite existing %s (use --force)", parsed.Dir)
		}

		err = os.RemoveAll(parsed.Dir)
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", parsed.Dir, err)
		}
	}

	err = os.MkdirAll(parsed.Dir, dirPermissions)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", parsed.Dir, err)
	}

	gen := &generator{faker: gofakeit.New(parsed.Seed)}

	err = gen.nested(parsed.Dir, 0)
	if err != nil {
		return err
	}

	err = gen.emptyTrees(parsed.Dir)
	if err != nil {
		return err
	}

	err = gen.collisions(parsed.Dir)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d folders (%d empty) and %d files in %s\n",
		gen.folders, gen.empty, gen.files, parsed.Dir)

	return nil
}

// nested builds the main structure: random folders, each either left empty
// or filled with files, recursing with decreasing probability.
func (g *generator) nested(parent string, depth int) error {
	if depth >= maxDepth {
		return nil
	}

	count := g.faker.Number(1, maxFoldersPerDir)

	for i := 0; i < count; i++ {
		path, err := g.makeFolder(parent, g.faker.RandomString(folderNames))
		if err != nil {
			return err
		}

		if g.faker.Float64Range(0, 1) < emptyChance {
			g.empty++
		} else {
			err = g.fillFolder(path)
			if err != nil {
				return err
			}
		}

		if g.faker.Float64Range(0, 1) < descendChance {
			err = g.nested(path, depth+1)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// emptyTrees creates the fixed all-empty subtrees.
func (g *generator) emptyTrees(root string) error {
	for _, structure := range emptyStructures {
		current := root

		for _, name := range structure {
			current = filepath.Join(current, name)

			err := os.MkdirAll(current, dirPermissions)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", current, err)
			}

			g.folders++
			g.empty++
		}
	}

	return nil
}

// collisions plants same-named files at the root and in a subfolder so a
// flatten run has conflicts to resolve.
func (g *generator) collisions(root string) error {
	sub := filepath.Join(root, "Conflict_Source")

	err := os.MkdirAll(sub, dirPermissions)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", sub, err)
	}

	g.folders++

	for _, name := range []string{"readme.txt", "notes.txt"} {
		for _, dir := range []string{root, sub} {
			err = g.writeFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (g *generator) makeFolder(parent, name string) (string, error) {
	path := filepath.Join(parent, name)
	for counter := 1; pathExists(path); counter++ {
		path = filepath.Join(parent, fmt.Sprintf("%s_%d", name, counter))
	}

	err := os.Mkdir(path, dirPermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	g.folders++

	return path, nil
}

func (g *generator) fillFolder(dir string) error {
	count := g.faker.Number(0, maxFilesPerDir)

	for i := 0; i < count; i++ {
		name := g.faker.RandomString(fileNames)

		path := filepath.Join(dir, name)
		for counter := 1; pathExists(path); counter++ {
			ext := filepath.Ext(name)
			stem := name[:len(name)-len(ext)]
			path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		}

		err := g.writeFile(path)
		if err != nil {
			return err
		}
	}

	return nil
}

func (g *generator) writeFile(path string) error {
	content := g.faker.Sentence(sentenceWords)

	err := os.WriteFile(path, []byte(content), filePermissions)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	g.files++

	return nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
