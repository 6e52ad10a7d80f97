// Command vec2mesh converts a vector graphics file (.svg, .pdf, .ai,
// .eps) into a Wavefront OBJ mesh. Options may come from a YAML file
// and are overridden by flags:
//
//	vec2mesh -config options.yaml -extrude 1 -o out.obj drawing.svg
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/benoitkugler/vecmesh"
	"github.com/benoitkugler/vecmesh/vecflat"
	"gopkg.in/yaml.v3"
)

// config mirrors ImportOptions with optional keys, so a file only
// overrides what it mentions.
type config struct {
	Smoothness        *int     `yaml:"smoothness"`
	Scale             *float64 `yaml:"scale"`
	SubdivisionPolicy *string  `yaml:"subdivision_policy"`
	FilledPathsOnly   *bool    `yaml:"filled_paths_only"`
	IgnoreWhiteFill   *bool    `yaml:"ignore_white_fill"`
	CombinePaths      *bool    `yaml:"combine_paths"`
	UseColors         *bool    `yaml:"use_colors"`
	ExtrudeDepth      *float64 `yaml:"extrude_depth"`
	BevelAmount       *float64 `yaml:"bevel_amount"`
	BevelPitch        *float64 `yaml:"bevel_pitch"`
	CapBack           *bool    `yaml:"cap_back"`
}

func (c config) apply(o *vecmesh.ImportOptions) error {
	if c.SubdivisionPolicy != nil {
		p, err := vecflat.PolicyFromString(*c.SubdivisionPolicy)
		if err != nil {
			return err
		}
		o.Policy = p
	}
	if c.Smoothness != nil {
		o.Smoothness = *c.Smoothness
	}
	if c.Scale != nil {
		o.Scale = *c.Scale
	}
	if c.FilledPathsOnly != nil {
		o.FilledOnly = *c.FilledPathsOnly
	}
	if c.IgnoreWhiteFill != nil {
		o.IgnoreWhite = *c.IgnoreWhiteFill
	}
	if c.CombinePaths != nil {
		o.Combine = *c.CombinePaths
	}
	if c.UseColors != nil {
		o.UseColors = *c.UseColors
	}
	if c.ExtrudeDepth != nil {
		o.ExtrudeDepth = *c.ExtrudeDepth
	}
	if c.BevelAmount != nil {
		o.BevelAmount = *c.BevelAmount
	}
	if c.BevelPitch != nil {
		o.BevelPitch = *c.BevelPitch
	}
	if c.CapBack != nil {
		o.CapBack = *c.CapBack
	}
	return nil
}

func main() {
	log.SetFlags(0)
	opts := vecmesh.DefaultOptions()

	var (
		configPath = flag.String("config", "", "YAML options file")
		output     = flag.String("o", "out.obj", "output OBJ file")
		policy     = flag.String("policy", "", "subdivision policy: uniform, adaptive or even")
		smoothness = flag.Int("smoothness", opts.Smoothness, "curve subdivision amount")
		scale      = flag.Float64("scale", opts.Scale, "target size of the longest dimension")
		combine    = flag.Bool("combine", opts.Combine, "resolve holes across separate paths")
		useColors  = flag.Bool("colors", opts.UseColors, "assign materials from fill colors")
		extrude    = flag.Float64("extrude", opts.ExtrudeDepth, "extrusion depth, 0 keeps the mesh flat")
		capBack    = flag.Bool("capback", opts.CapBack, "close the back of the extruded solid")
		bevel      = flag.Float64("bevel", opts.BevelAmount, "bevel inset amount, 0 disables")
		pitch      = flag.Float64("pitch", opts.BevelPitch, "bevel slope in degrees")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [options] input\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		var c config
		if err := yaml.Unmarshal(data, &c); err != nil {
			log.Fatalf("reading %s: %s", *configPath, err)
		}
		if err := c.apply(&opts); err != nil {
			log.Fatalf("reading %s: %s", *configPath, err)
		}
	}

	// flags given on the command line win over the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "policy":
			p, err := vecflat.PolicyFromString(*policy)
			if err != nil {
				log.Fatal(err)
			}
			opts.Policy = p
		case "smoothness":
			opts.Smoothness = *smoothness
		case "scale":
			opts.Scale = *scale
		case "combine":
			opts.Combine = *combine
		case "colors":
			opts.UseColors = *useColors
		case "extrude":
			opts.ExtrudeDepth = *extrude
		case "capback":
			opts.CapBack = *capBack
		case "bevel":
			opts.BevelAmount = *bevel
		case "pitch":
			opts.BevelPitch = *pitch
		}
	})

	mesh, sum, err := vecmesh.ReadFile(flag.Arg(0), opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := mesh.WriteOBJFile(*output); err != nil {
		log.Fatal(err)
	}
	log.Printf("%s: %d vertices, %d faces, %d regions", *output, sum.Vertices, sum.Faces, sum.Regions)
	if n := len(sum.Warnings); n > 0 {
		log.Printf("%d shape(s) skipped or truncated", n)
	}
}
