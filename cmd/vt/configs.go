package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/vtree"
	"github.com/signadot/vtree/config"
	"github.com/signadot/vtree/encode"
	"github.com/signadot/vtree/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='output with color'"`
	WireOut bool   `cli:"name=wire desc='output in compact format'"`
	Verbose bool   `cli:"name=v desc='log debug messages to stderr'"`
	Config  string `cli:"name=config desc='settings file (yaml)'"`
	Env     string `cli:"name=env desc='.env file with VTREE_ settings' default=.env"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Settings *config.Config

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// inCodec picks the input format: -I first, then -j/-y, then the file
// extension, then json.
func (cfg *MainConfig) inCodec(path string) *vtree.Codec {
	switch {
	case cfg.InFormat != nil:
		return vtree.NewCodec(*cfg.InFormat)
	case cfg.Y:
		return vtree.NewCodec(format.YAMLFormat)
	case cfg.J:
		return vtree.NewCodec(format.JSONFormat)
	}
	if c, err := vtree.CodecFor(path); err == nil {
		return c
	}
	return vtree.NewCodec(format.JSONFormat)
}

// outCodec is inCodec for output, defaulting to the input format.
func (cfg *MainConfig) outCodec(path string, w io.Writer) *vtree.Codec {
	var c *vtree.Codec
	switch {
	case cfg.OutFormat != nil:
		c = vtree.NewCodec(*cfg.OutFormat)
	case cfg.Y:
		c = vtree.NewCodec(format.YAMLFormat)
	case cfg.J:
		c = vtree.NewCodec(format.JSONFormat)
	default:
		c = cfg.inCodec(path)
	}
	c.EncodeOpts = []encode.EncodeOption{encode.EncodeWire(cfg.WireOut)}
	if colors := cfg.colors(w); colors != nil {
		c.EncodeOpts = append(c.EncodeOpts, encode.EncodeColors(colors))
	}
	return c
}

// colors returns nil when w should not get escape sequences.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return nil
	}
	switch cfg.Settings.Color {
	case "always":
		return encode.NewColors()
	case "never":
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

type ViewConfig struct {
	*MainConfig
	Depth        int  `cli:"name=depth desc='levels to expand (default from settings)' default=-1"`
	PreviewDepth int  `cli:"name=pd desc='levels folded into previews' default=-1"`
	Sort         bool `cli:"name=sort desc='sort map keys'"`

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type FindConfig struct {
	*MainConfig
	Mode  string `cli:"name=mode desc='contains, wildcard, regex or fixed'"`
	Scope string `cli:"name=scope desc='comma separated key, value, type or all'"`
	Case  bool   `cli:"name=c desc='case sensitive'"`
	Depth int    `cli:"name=depth desc='max search depth, 1 for top level rows (default from settings)' default=-1"`
	Tree  bool   `cli:"name=tree desc='show the filtered tree'"`

	Find *cli.Command
}

// EditFlags are the options of every command changing a document.
type EditFlags struct {
	Write bool
	Show  bool
}

type SetConfig struct {
	*MainConfig
	Write bool   `cli:"name=w desc='write the result back to the file'"`
	Show  bool   `cli:"name=show desc='print the changes to stderr'"`
	Text  bool   `cli:"name=text desc='set the value from text, keeping its type'"`
	As    string `cli:"name=as desc='type to parse text as'"`

	Set *cli.Command
}

type SetTypeConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`
	Show  bool `cli:"name=show desc='print the changes to stderr'"`
	Force bool `cli:"name=force desc='use the zero value when conversion fails'"`

	SetType *cli.Command
}

type InsertConfig struct {
	*MainConfig
	Write  bool   `cli:"name=w desc='write the result back to the file'"`
	Show   bool   `cli:"name=show desc='print the changes to stderr'"`
	Before bool   `cli:"name=before desc='insert before the addressed list item'"`
	After  bool   `cli:"name=after desc='insert after the addressed list item'"`
	Key    string `cli:"name=k desc='key for inserting into a map'"`

	Insert *cli.Command
}

type RemoveConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`
	Show  bool `cli:"name=show desc='print the changes to stderr'"`

	Remove *cli.Command
}

type RenameConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`
	Show  bool `cli:"name=show desc='print the changes to stderr'"`

	Rename *cli.Command
}

type ApplyConfig struct {
	*MainConfig
	Write bool   `cli:"name=w desc='write the result back to the file'"`
	Show  bool   `cli:"name=show desc='print the changes to stderr'"`
	File  string `cli:"name=f desc='yaml or json file with a list of ops'"`
	Ops   bool   `cli:"name=ops desc='list available ops'"`

	Apply *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='print a json merge patch'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Write bool   `cli:"name=w desc='write the result back to the file'"`
	Show  bool   `cli:"name=show desc='print the changes to stderr'"`
	File  string `cli:"name=f desc='patch file'"`
	Merge bool   `cli:"name=merge desc='patch is a json merge patch'"`

	Patch *cli.Command
}
