package target

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnsupportedTarget is returned for an unknown name or an OS/architecture
// pair with no configuration.
var ErrUnsupportedTarget = errors.New("unsupported target")

// Architecture is a target CPU architecture.
type Architecture int

const (
	AMD64 Architecture = iota
	AMD32
	ARMV9
	ARMV8
	ARMV7
	RV64I
	RV64E
	RV32I
	RV32E
	POWERPC64
	POWERPC32
	MIPS64
	MIPS32
	MICRO_MIPS
	OPENRISC64
	OPENRISC32
	LOONGARCH64
	LOONGARCH32
	SPARCV9
	SPARCV8
	SPARCV7
	numArchitectures
)

var architectureNames = [...]string{
	AMD64:       "AMD64",
	AMD32:       "AMD32",
	ARMV9:       "ARMV9",
	ARMV8:       "ARMV8",
	ARMV7:       "ARMV7",
	RV64I:       "RV64I",
	RV64E:       "RV64E",
	RV32I:       "RV32I",
	RV32E:       "RV32E",
	POWERPC64:   "POWERPC64",
	POWERPC32:   "POWERPC32",
	MIPS64:      "MIPS64",
	MIPS32:      "MIPS32",
	MICRO_MIPS:  "MICRO_MIPS",
	OPENRISC64:  "OPENRISC64",
	OPENRISC32:  "OPENRISC32",
	LOONGARCH64: "LOONGARCH64",
	LOONGARCH32: "LOONGARCH32",
	SPARCV9:     "SPARCV9",
	SPARCV8:     "SPARCV8",
	SPARCV7:     "SPARCV7",
}

func (a Architecture) String() string {
	if a >= 0 && a < numArchitectures {
		return architectureNames[a]
	}
	return "UNKNOWN_ARCH"
}

// ParseArchitecture accepts an architecture name in any case.
func ParseArchitecture(name string) (Architecture, error) {
	upper := strings.ToUpper(name)
	for a := Architecture(0); a < numArchitectures; a++ {
		if architectureNames[a] == upper {
			return a, nil
		}
	}
	return 0, fmt.Errorf("architecture %q: %w", name, ErrUnsupportedTarget)
}

// OperatingSystem is a target operating system.
type OperatingSystem int

const (
	LINUX OperatingSystem = iota
	WINDOWS
	BAREMETAL
	ANDROID
	IOS
	MACOS
	RISCOS
	HAIKU
	KOLIBRIOS
	REACTOS
	UNIX
	numOperatingSystems
)

var operatingSystemNames = [...]string{
	LINUX:     "LINUX",
	WINDOWS:   "WINDOWS",
	BAREMETAL: "BAREMETAL",
	ANDROID:   "ANDROID",
	IOS:       "IOS",
	MACOS:     "MACOS",
	RISCOS:    "RISCOS",
	HAIKU:     "HAIKU",
	KOLIBRIOS: "KOLIBRIOS",
	REACTOS:   "REACTOS",
	UNIX:      "UNIX",
}

func (o OperatingSystem) String() string {
	if o >= 0 && o < numOperatingSystems {
		return operatingSystemNames[o]
	}
	return "UNKNOWN_OS"
}

// ParseOperatingSystem accepts an operating system name in any case.
func ParseOperatingSystem(name string) (OperatingSystem, error) {
	upper := strings.ToUpper(name)
	for o := OperatingSystem(0); o < numOperatingSystems; o++ {
		if operatingSystemNames[o] == upper {
			return o, nil
		}
	}
	return 0, fmt.Errorf("operating system %q: %w", name, ErrUnsupportedTarget)
}

// Config describes one supported OS/architecture pair. The compiler core
// carries it through without interpreting it.
type Config struct {
	OS        OperatingSystem
	Arch      Architecture
	WordSize  int // bits
	ByteOrder binary.ByteOrder
	Registers int // general purpose registers
}

func (c *Config) String() string {
	return strings.ToLower(c.OS.String() + "/" + c.Arch.String())
}

type archInfo struct {
	wordSize  int
	byteOrder binary.ByteOrder
	registers int
}

var architectures = [numArchitectures]archInfo{
	AMD64:       {64, binary.LittleEndian, 16},
	AMD32:       {32, binary.LittleEndian, 8},
	ARMV9:       {64, binary.LittleEndian, 31},
	ARMV8:       {64, binary.LittleEndian, 31},
	ARMV7:       {32, binary.LittleEndian, 16},
	RV64I:       {64, binary.LittleEndian, 32},
	RV64E:       {64, binary.LittleEndian, 16},
	RV32I:       {32, binary.LittleEndian, 32},
	RV32E:       {32, binary.LittleEndian, 16},
	POWERPC64:   {64, binary.BigEndian, 32},
	POWERPC32:   {32, binary.BigEndian, 32},
	MIPS64:      {64, binary.BigEndian, 32},
	MIPS32:      {32, binary.BigEndian, 32},
	MICRO_MIPS:  {32, binary.BigEndian, 32},
	OPENRISC64:  {64, binary.BigEndian, 32},
	OPENRISC32:  {32, binary.BigEndian, 32},
	LOONGARCH64: {64, binary.LittleEndian, 32},
	LOONGARCH32: {32, binary.LittleEndian, 32},
	SPARCV9:     {64, binary.BigEndian, 32},
	SPARCV8:     {32, binary.BigEndian, 32},
	SPARCV7:     {32, binary.BigEndian, 32},
}

func allArchitectures() []Architecture {
	out := make([]Architecture, 0, numArchitectures)
	for a := Architecture(0); a < numArchitectures; a++ {
		out = append(out, a)
	}
	return out
}

// support lists the architectures each operating system has a configuration for.
var support = map[OperatingSystem][]Architecture{
	LINUX:     allArchitectures(),
	WINDOWS:   {AMD64, AMD32, ARMV9, ARMV8},
	BAREMETAL: allArchitectures(),
	ANDROID:   {AMD64, AMD32, ARMV9, ARMV8, ARMV7},
	IOS:       {ARMV9, ARMV8, ARMV7},
	MACOS:     {AMD64, AMD32, ARMV9},
	RISCOS:    {ARMV7},
	HAIKU:     {AMD64, AMD32},
	KOLIBRIOS: {AMD64, AMD32},
	REACTOS:   {AMD64, AMD32, ARMV7},
	UNIX:      allArchitectures(),
}

// Lookup returns the configuration for os/arch.
func Lookup(os OperatingSystem, arch Architecture) (*Config, error) {
	for _, supported := range support[os] {
		if supported == arch {
			info := architectures[arch]
			return &Config{
				OS:        os,
				Arch:      arch,
				WordSize:  info.wordSize,
				ByteOrder: info.byteOrder,
				Registers: info.registers,
			}, nil
		}
	}
	return nil, fmt.Errorf("%s on %s: %w", arch, os, ErrUnsupportedTarget)
}

// Parse looks up a target written as "os/arch", for example "linux/amd64".
func Parse(name string) (*Config, error) {
	osName, archName, ok := strings.Cut(name, "/")
	if !ok {
		return nil, fmt.Errorf("target %q must be os/arch: %w", name, ErrUnsupportedTarget)
	}

	os, err := ParseOperatingSystem(osName)
	if err != nil {
		return nil, err
	}
	arch, err := ParseArchitecture(archName)
	if err != nil {
		return nil, err
	}
	return Lookup(os, arch)
}

// Supported returns every valid pair, ordered by operating system then architecture.
func Supported() []*Config {
	var out []*Config
	for os := OperatingSystem(0); os < numOperatingSystems; os++ {
		for _, arch := range support[os] {
			cfg, _ := Lookup(os, arch)
			out = append(out, cfg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OS != out[j].OS {
			return out[i].OS < out[j].OS
		}
		return out[i].Arch < out[j].Arch
	})
	return out
}

// Default is the target used when none is requested.
func Default() *Config {
	cfg, _ := Lookup(LINUX, AMD64)
	return cfg
}
