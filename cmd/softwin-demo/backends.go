package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/gogpu/softwin/surface"
	_ "github.com/gogpu/softwin/surface/file"
	_ "github.com/gogpu/softwin/surface/memory"
)

// windowedBackend is the only backend that needs a real window.
const windowedBackend = "glfw"

// List registered presentation backends.
func listBackends(ctx *cli.Context) error {
	available := make(map[string]bool)
	for _, name := range surface.Available() {
		available[name] = true
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Backend", "Priority", "Available", "Window"})
	for _, name := range surface.List() {
		entry, _ := surface.Get(name)
		kind := "headless"
		if name == windowedBackend {
			kind = "glfw"
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", entry.Priority),
			fmt.Sprintf("%t", available[name]),
			kind,
		})
	}
	table.Render()

	_, err := buf.WriteTo(os.Stdout)
	return err
}

// resolveBackend picks the registry's best backend when name is empty.
func resolveBackend(name string) (string, error) {
	if name != "" {
		if _, ok := surface.Get(name); !ok {
			return "", &surface.BackendNotFoundError{Name: name}
		}
		return name, nil
	}
	names := surface.Available()
	if len(names) == 0 {
		return "", surface.ErrNoBackendAvailable
	}
	return names[0], nil
}
