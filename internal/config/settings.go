package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/superstore-dash/internal/common"
	"github.com/Veraticus/superstore-dash/internal/dataset"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyDataPath       = "data.path"
	KeyDataEncoding   = "data.encoding"
	KeyFilterSegment  = "filters.segment"
	KeyFilterCategory = "filters.category"
	KeyFilterRegion   = "filters.region"
	KeyServerAddr     = "server.addr"
	KeyRenderDir      = "render.dir"
	KeyRenderWidth    = "render.width"
	KeyRenderHeight   = "render.height"
	KeyRenderBins     = "render.histogram_bins"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SUPERSTORE"

// FlagData is the command line flag bound to KeyDataPath.
const FlagData = "data"

// Minimum chart size the renderer can lay out.
const (
	MinRenderWidth  = 320
	MinRenderHeight = 240
)

// EnvKeyReplacer maps config keys to environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Settings is the typed application configuration.
type Settings struct {
	Data    DataSettings
	Filters FilterSettings
	Server  ServerSettings
	Render  RenderSettings
}

// DataSettings locates and decodes the sales file.
type DataSettings struct {
	Path     string
	Encoding dataset.Encoding
}

// FilterSettings holds default filter values. An empty list means every value.
type FilterSettings struct {
	Segments   []string
	Categories []string
	Regions    []string
}

// Selection applies the defaults to the available options. Dimensions
// without configured values select every option.
func (f FilterSettings) Selection(opts model.FilterOptions) model.FilterSelection {
	sel := opts.SelectAll()
	overrides := f.Overrides()
	for _, d := range model.Dimensions {
		if set := overrides.Set(d); set != nil {
			sel = sel.With(d, set)
		}
	}
	return sel
}

// Overrides returns the configured dimensions as a selection, leaving
// unconfigured dimensions nil.
func (f FilterSettings) Overrides() model.FilterSelection {
	var sel model.FilterSelection
	if len(f.Segments) > 0 {
		sel.Segments = model.NewValueSet(f.Segments...)
	}
	if len(f.Categories) > 0 {
		sel.Categories = model.NewValueSet(f.Categories...)
	}
	if len(f.Regions) > 0 {
		sel.Regions = model.NewValueSet(f.Regions...)
	}
	return sel
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	Addr string
}

// RenderSettings configures chart output.
type RenderSettings struct {
	Dir           string
	Width         int
	Height        int
	HistogramBins int
}

// fromConfigFile reports whether the effective value of key comes from the
// config file rather than a flag or the environment.
func fromConfigFile(v *viper.Viper, flags *pflag.FlagSet, key, flag string) bool {
	if !v.InConfig(key) {
		return false
	}
	if flags != nil {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			return false
		}
	}
	if _, ok := os.LookupEnv(EnvName(key)); ok {
		return false
	}
	return true
}

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(EnvKeyReplacer.Replace(key))
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataPath, "Global_Superstore2.csv")
	v.SetDefault(KeyDataEncoding, string(dataset.EncodingAuto))
	v.SetDefault(KeyFilterSegment, []string{})
	v.SetDefault(KeyFilterCategory, []string{})
	v.SetDefault(KeyFilterRegion, []string{})
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyRenderDir, "charts")
	v.SetDefault(KeyRenderWidth, 1024)
	v.SetDefault(KeyRenderHeight, 576)
	v.SetDefault(KeyRenderBins, 50)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads settings from v. A relative data path taken from the config
// file is resolved against the file's directory; one given by flag or
// environment stays relative to the working directory. flags may be nil.
func Load(v *viper.Viper, flags *pflag.FlagSet) (*Settings, error) {
	baseDir := ""
	if used := v.ConfigFileUsed(); used != "" && fromConfigFile(v, flags, KeyDataPath, FlagData) {
		baseDir = filepath.Dir(used)
	}

	s := &Settings{
		Data: DataSettings{
			Path:     ResolvePath(v.GetString(KeyDataPath), baseDir),
			Encoding: dataset.Encoding(v.GetString(KeyDataEncoding)),
		},
		Filters: FilterSettings{
			Segments:   v.GetStringSlice(KeyFilterSegment),
			Categories: v.GetStringSlice(KeyFilterCategory),
			Regions:    v.GetStringSlice(KeyFilterRegion),
		},
		Server: ServerSettings{
			Addr: v.GetString(KeyServerAddr),
		},
		Render: RenderSettings{
			Dir:           ExpandPath(v.GetString(KeyRenderDir)),
			Width:         v.GetInt(KeyRenderWidth),
			Height:        v.GetInt(KeyRenderHeight),
			HistogramBins: v.GetInt(KeyRenderBins),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings for values the application cannot use.
func (s *Settings) Validate() error {
	if s.Data.Path == "" {
		return fmt.Errorf("%w: %s is required", common.ErrInvalidConfig, KeyDataPath)
	}
	if !s.Data.Encoding.Valid() {
		return fmt.Errorf("%w: %s %q is not one of auto, latin1, utf-8",
			common.ErrInvalidConfig, KeyDataEncoding, s.Data.Encoding)
	}
	if s.Render.Width < MinRenderWidth || s.Render.Height < MinRenderHeight {
		return fmt.Errorf("%w: render size must be at least %dx%d, got %dx%d",
			common.ErrInvalidConfig, MinRenderWidth, MinRenderHeight, s.Render.Width, s.Render.Height)
	}
	if s.Render.HistogramBins <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d",
			common.ErrInvalidConfig, KeyRenderBins, s.Render.HistogramBins)
	}
	return nil
}
