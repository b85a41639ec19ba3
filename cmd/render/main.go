// Command render serializes a layout JSON file to static HTML on stdout.
// With -shell it emits the full page instead of the bare fragment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/seorender/internal/layout"
	"github.com/dgallion1/seorender/internal/page"
	"github.com/dgallion1/seorender/internal/render"
)

func main() {
	var (
		shellPath  = flag.String("shell", "", "HTML shell file to inject the fragment into")
		jsonldPath = flag.String("jsonld", "", "JSON-LD file to add to the shell head")
		exclude    = flag.String("exclude", "", "comma-separated component kinds to exclude (default: built-in set)")
		mountID    = flag.String("mount", page.DefaultMountID, "id of the mount element in the shell")
		maxDepth   = flag.Int("max-depth", 0, "maximum tree depth (0 = default)")
	)
	flag.Parse()

	if err := run(flag.Arg(0), *shellPath, *jsonldPath, *exclude, *mountID, *maxDepth); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

func run(layoutPath, shellPath, jsonldPath, exclude, mountID string, maxDepth int) error {
	data, err := readInput(layoutPath)
	if err != nil {
		return fmt.Errorf("read layout: %w", err)
	}

	root, err := layout.Parse(data)
	if err != nil {
		return err
	}

	opts := render.Options{MaxDepth: maxDepth}
	if exclude != "" {
		for _, kind := range strings.Split(exclude, ",") {
			if kind = strings.TrimSpace(kind); kind != "" {
				opts.Excluded = append(opts.Excluded, kind)
			}
		}
	}

	out, err := render.New(opts).Render(root)
	if err != nil {
		return err
	}

	if shellPath != "" {
		shell, err := os.ReadFile(shellPath)
		if err != nil {
			return fmt.Errorf("read shell: %w", err)
		}
		out, err = page.Inject(string(shell), out, page.Options{MountID: mountID})
		if err != nil {
			return err
		}
		if jsonldPath != "" {
			out, err = injectJSONLD(out, jsonldPath)
			if err != nil {
				return err
			}
		}
	} else if jsonldPath != "" {
		return fmt.Errorf("-jsonld requires -shell")
	}

	fmt.Println(out)
	return nil
}

func injectJSONLD(doc, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read jsonld: %w", err)
	}
	var jsonld any
	if err := json.Unmarshal(raw, &jsonld); err != nil {
		return "", fmt.Errorf("parse jsonld: %w", err)
	}
	return page.InjectJSONLD(doc, jsonld)
}

// readInput reads the layout from a file, or stdin when no path is given.
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
