// Command softwin-demo renders an animated gg scene through a softwin
// WindowRenderer, either into a GLFW window or into one of the headless
// presentation backends, and prints a frame-time summary on exit.
//
// Usage:
//
//	softwin-demo run                       # GLFW window
//	softwin-demo run --backend file -o out # BMP frames in ./out
//	softwin-demo -vv run --backend memory --frames 300
//	softwin-demo backends
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "softwin-demo"
	app.Usage = "render gg scenes into a window on the CPU"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML configuration file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "render the animated demo scene",
			Description: `
Open a window (or a headless presentation backend) and render an animated
scene until the window is closed or the frame limit is reached.

Headless runs suspend and resume the renderer halfway through, at half the
size, the way a minimize/restore cycle would.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "backend, b",
					Usage: "presentation backend (see the backends command)",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "window height",
				},
				cli.IntFlag{
					Name:  "frames, n",
					Usage: "number of frames to render (0: until closed)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frames",
					Usage: "output directory of the file backend",
				},
				cli.StringFlag{
					Name:  "shm",
					Value: "softwin.shm",
					Usage: "mapped file of the shm backend",
				},
				cli.BoolFlag{
					Name:  "symmetric-clamp",
					Usage: "clamp the scene size to 1x1 like the surface",
				},
				cli.BoolFlag{
					Name:  "no-vsync",
					Usage: "disable vertical sync",
				},
			},
			Action: runDemo,
		},
		{
			Name:   "backends",
			Usage:  "list presentation backends",
			Action: listBackends,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "softwin-demo:", err)
		os.Exit(1)
	}
}
