package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"instancing-renderer/internal/mathutil"
	"instancing-renderer/internal/sample"
	"instancing-renderer/internal/scene"
	"instancing-renderer/internal/viewmatrix"
)

func main() {
	app := &cli.App{
		Name:  "inspect",
		Usage: "print the instance and view matrices after a number of frames",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "frames", Value: 1, Usage: "frames to advance before printing"},
			&cli.StringFlag{Name: "view", Value: "0", Usage: "camera view index, name or label"},
			&cli.IntFlag{Name: "width", Value: 512},
			&cli.IntFlag{Name: "height", Value: 512},
			&cli.BoolFlag{Name: "wrap", Usage: "keep the angle in [0, 2π)"},
			&cli.BoolFlag{Name: "float32", Usage: "print the float32 upload layout"},
		},
		Action: func(c *cli.Context) error {
			opt, ok := viewmatrix.Parse(c.String("view"))
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown view %q, falling back to %s\n", c.String("view"), viewmatrix.Front.Label())
			}
			s := sample.New(sample.Options{
				Width:     c.Int("width"),
				Height:    c.Int("height"),
				WrapAngle: c.Bool("wrap"),
			})
			s.Update(int(opt))
			var inst []mathutil.Mat4
			for i := 0; i < c.Int("frames"); i++ {
				inst = s.PopulateInstanceBuffer()
			}
			if inst == nil {
				inst = scene.Generate(scene.Layout(), s.Angle(), nil)
			}

			w := os.Stdout
			fmt.Fprintf(w, "Angle: %.6f rad after %d frame(s)\n", s.Angle(), c.Int("frames"))
			fmt.Fprintf(w, "View: %d %s (%s)\n", int(s.View()), s.View().Label(), s.View())
			printMat(w, "View matrix", viewmatrix.Select(int(opt)), c.Bool("float32"))
			printMat(w, "ViewProj", s.ViewProj(), c.Bool("float32"))
			for i, m := range inst {
				printMat(w, fmt.Sprintf("Instance[%d]", i), m, c.Bool("float32"))
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printMat(w io.Writer, name string, m mathutil.Mat4, f32 bool) {
	fmt.Fprintf(w, "%s:\n", name)
	if f32 {
		f := m.Float32()
		for r := 0; r < 4; r++ {
			fmt.Fprintf(w, "  [%10.5f %10.5f %10.5f %10.5f]\n", f[r*4], f[r*4+1], f[r*4+2], f[r*4+3])
		}
		return
	}
	for r := 0; r < 4; r++ {
		fmt.Fprintf(w, "  [%12.8f %12.8f %12.8f %12.8f]\n", m[r*4], m[r*4+1], m[r*4+2], m[r*4+3])
	}
}
