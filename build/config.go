package build

import (
	"brik/common"
	"brik/platform"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// Options are the settings of one build.
type Options struct {
	// Name is the name of the project: it names the produced files.
	Name string

	Target platform.Target

	// OutDir is the root of the output tree.
	OutDir string

	// Debug enables the compilation trace.
	Debug bool

	// Assembler and Linker are the external tools invoked by a build.  An
	// empty linker selects the default linker of the target's OS family.
	Assembler string
	Linker    string
}

// DefaultOptions returns the default options for a project.
func DefaultOptions(name string) *Options {
	return &Options{
		Name:      name,
		Target:    platform.LinuxX86_64,
		OutDir:    "bin",
		Assembler: "nasm",
	}
}

// LinkerFor returns the default linker of a target.
func LinkerFor(target platform.Target) string {
	switch target {
	case platform.WindowsX86, platform.WindowsX86_64:
		return "link"
	default:
		return "ld"
	}
}

// EffectiveLinker returns the linker the options select.
func (o *Options) EffectiveLinker() string {
	if o.Linker != "" {
		return o.Linker
	}

	return LinkerFor(o.Target)
}

// -----------------------------------------------------------------------------

// tomlConfigFile represents the project file as it is encoded in TOML.
type tomlConfigFile struct {
	Project *tomlProject `toml:"project"`
}

// tomlProject represents the project settings as they are encoded in TOML.
type tomlProject struct {
	Name      string `toml:"name"`
	Target    string `toml:"target"`
	OutDir    string `toml:"out-dir"`
	Debug     bool   `toml:"debug"`
	Assembler string `toml:"assembler,omitempty"`
	Linker    string `toml:"linker,omitempty"`
}

// LoadConfig loads the project file in dir into opts.  Fields missing from the
// file keep their value in opts.  It returns whether a project file was found.
func LoadConfig(dir string, opts *Options) (bool, error) {
	f, err := os.Open(filepath.Join(dir, common.ConfigFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return true, err
	}

	return true, DecodeConfig(buff, opts)
}

// DecodeConfig decodes the contents of a project file into opts.
func DecodeConfig(buff []byte, opts *Options) error {
	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return fmt.Errorf("error decoding %s: %w", common.ConfigFileName, err)
	}

	if tcf.Project == nil {
		return fmt.Errorf("%s is missing a [project] table", common.ConfigFileName)
	}

	proj := tcf.Project
	if proj.Name != "" {
		opts.Name = proj.Name
	}

	if proj.Target != "" {
		target, err := platform.ParseTarget(proj.Target)
		if err != nil {
			return fmt.Errorf("%s: %w", common.ConfigFileName, err)
		}

		opts.Target = target
	}

	if proj.OutDir != "" {
		opts.OutDir = proj.OutDir
	}

	if proj.Assembler != "" {
		opts.Assembler = proj.Assembler
	}

	if proj.Linker != "" {
		opts.Linker = proj.Linker
	}

	opts.Debug = opts.Debug || proj.Debug
	return nil
}

// InitConfig creates a new project file with default settings in dir.
func InitConfig(dir, name string) error {
	cfgPath := filepath.Join(dir, common.ConfigFileName)

	// check to see if a project file already exists
	_, err := os.Stat(cfgPath)
	if err == nil {
		return errors.New("project file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("project file error: %s", err.Error())
	}

	opts := DefaultOptions(name)
	proj := &tomlProject{
		Name:      opts.Name,
		Target:    opts.Target.String(),
		OutDir:    opts.OutDir,
		Debug:     opts.Debug,
		Assembler: opts.Assembler,
		Linker:    opts.EffectiveLinker(),
	}

	f, err := os.Create(cfgPath)
	if err != nil {
		return fmt.Errorf("error creating project file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlConfigFile{Project: proj}); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}
