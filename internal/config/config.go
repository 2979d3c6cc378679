// Package config reads runtime resource limits for the virtual machine from
// the environment, the way a long-running server in the wider ecosystem
// configures itself without a flags dependency for every knob.
package config

import "github.com/caarlos0/env/v6"

// VM holds the virtual machine's fixed resource limits. Defaults mirror the
// sizes fixed at compile time: a 1024-slot operand stack and a 1024-deep
// call-frame stack.
type VM struct {
	StackSize  int `env:"SLOTH_STACK_SIZE" envDefault:"1024"`
	CallFrames int `env:"SLOTH_CALL_FRAMES" envDefault:"1024"`
	MaxSteps   int `env:"SLOTH_MAX_STEPS" envDefault:"0"` // 0: unbounded
}

// LoadVM reads VM limits from the environment, falling back to the default
// sizes when a variable is unset.
func LoadVM() (VM, error) {
	var c VM
	if err := env.Parse(&c); err != nil {
		return VM{}, err
	}
	return c, nil
}
