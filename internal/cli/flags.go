package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/units"
)

// configFlags binds the settings shared by the sheet and layout commands.
//
// Flags write into their own Config seeded with the defaults. [configFlags.resolve]
// copies only the flags the user actually set onto the defaults-plus-file
// configuration, which gives the precedence defaults < TOML file < flags.
type configFlags struct {
	file   string
	values *config.Config
	fields []flagField
}

// flagField copies one flag's value from src to dst.
type flagField struct {
	name string
	copy func(dst, src *config.Config)
}

func newConfigFlags() *configFlags {
	return &configFlags{values: config.Default()}
}

// registerGeometry adds the page and grid flags.
func (f *configFlags) registerGeometry(fs *pflag.FlagSet) {
	v := f.values
	fs.StringVar(&f.file, "config", "", "TOML file with settings (flags override it)")
	f.stringVar(fs, "paper", &v.Paper, "paper size: "+strings.Join(units.PaperNames(), ", "),
		func(d, s *config.Config) { d.Paper = s.Paper })
	f.floatVar(fs, "card-w", &v.Card.Width, "card width in mm",
		func(d, s *config.Config) { d.Card.Width = s.Card.Width })
	f.floatVar(fs, "card-h", &v.Card.Height, "card height in mm",
		func(d, s *config.Config) { d.Card.Height = s.Card.Height })
	f.intVar(fs, "cols", &v.Grid.Columns, "cards per row",
		func(d, s *config.Config) { d.Grid.Columns = s.Grid.Columns })
	f.intVar(fs, "rows", &v.Grid.Rows, "rows per page",
		func(d, s *config.Config) { d.Grid.Rows = s.Grid.Rows })
	f.floatVar(fs, "margin-left", &v.Margins.Left, "left page margin in mm",
		func(d, s *config.Config) { d.Margins.Left = s.Margins.Left })
	f.floatVar(fs, "margin-right", &v.Margins.Right, "right page margin in mm",
		func(d, s *config.Config) { d.Margins.Right = s.Margins.Right })
	f.floatVar(fs, "margin-top", &v.Margins.Top, "top page margin in mm",
		func(d, s *config.Config) { d.Margins.Top = s.Margins.Top })
	f.floatVar(fs, "margin-bottom", &v.Margins.Bottom, "bottom page margin in mm",
		func(d, s *config.Config) { d.Margins.Bottom = s.Margins.Bottom })
	f.floatVar(fs, "gap-x", &v.Gap.X, "horizontal gap between cards in mm",
		func(d, s *config.Config) { d.Gap.X = s.Gap.X })
	f.floatVar(fs, "gap-y", &v.Gap.Y, "vertical gap between cards in mm",
		func(d, s *config.Config) { d.Gap.Y = s.Gap.Y })
}

// registerSheet adds the flags that only matter when images are placed.
func (f *configFlags) registerSheet(fs *pflag.FlagSet) {
	v := f.values
	f.stringVar(fs, "fronts", &v.Fronts, "directory of front images",
		func(d, s *config.Config) { d.Fronts = s.Fronts })
	f.stringVar(fs, "backs", &v.Backs, "directory of back images",
		func(d, s *config.Config) { d.Backs = s.Backs })
	f.stringVarP(fs, "output", "o", &v.Output, "output PDF file",
		func(d, s *config.Config) { d.Output = s.Output })
	f.stringVar(fs, "match", &v.Match, "pairing mode: by-name, by-order",
		func(d, s *config.Config) { d.Match = s.Match })
	f.boolVar(fs, "cut-marks", &v.CutMarks.Enabled, "draw corner cut marks",
		func(d, s *config.Config) { d.CutMarks.Enabled = s.CutMarks.Enabled })
	f.floatVar(fs, "mark-length", &v.CutMarks.Length, "cut mark arm length in mm (half the mark)",
		func(d, s *config.Config) { d.CutMarks.Length = s.CutMarks.Length })
	f.floatVar(fs, "mark-stroke", &v.CutMarks.Stroke, "cut mark line width in points",
		func(d, s *config.Config) { d.CutMarks.Stroke = s.CutMarks.Stroke })
	f.boolVar(fs, "optimize", &v.Optimize, "optimise the written PDF",
		func(d, s *config.Config) { d.Optimize = s.Optimize })
}

func (f *configFlags) stringVar(fs *pflag.FlagSet, name string, p *string, usage string, cp func(d, s *config.Config)) {
	f.stringVarP(fs, name, "", p, usage, cp)
}

func (f *configFlags) stringVarP(fs *pflag.FlagSet, name, short string, p *string, usage string, cp func(d, s *config.Config)) {
	fs.StringVarP(p, name, short, *p, usage)
	f.fields = append(f.fields, flagField{name, cp})
}

func (f *configFlags) floatVar(fs *pflag.FlagSet, name string, p *float64, usage string, cp func(d, s *config.Config)) {
	fs.Float64Var(p, name, *p, usage)
	f.fields = append(f.fields, flagField{name, cp})
}

func (f *configFlags) intVar(fs *pflag.FlagSet, name string, p *int, usage string, cp func(d, s *config.Config)) {
	fs.IntVar(p, name, *p, usage)
	f.fields = append(f.fields, flagField{name, cp})
}

func (f *configFlags) boolVar(fs *pflag.FlagSet, name string, p *bool, usage string, cp func(d, s *config.Config)) {
	fs.BoolVar(p, name, *p, usage)
	f.fields = append(f.fields, flagField{name, cp})
}

// resolve builds the effective configuration: defaults, then the --config
// file if given, then every flag that was set on the command line.
func (f *configFlags) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if f.file != "" {
		if err := cfg.Merge(f.file); err != nil {
			return nil, err
		}
	}
	for _, field := range f.fields {
		if fs.Changed(field.name) {
			field.copy(cfg, f.values)
		}
	}
	return cfg, nil
}
