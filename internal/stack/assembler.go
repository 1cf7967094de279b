package stack

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Assembler holds the current inputs and renders artifacts from them. It
// is the surface forms and commands talk to.
type Assembler struct {
	inputs    InputSet
	inputsSet bool
	gen       *SecretGenerator
	logger    hclog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithGenerator sets the secret generator.
func WithGenerator(gen *SecretGenerator) Option {
	return func(a *Assembler) {
		if gen != nil {
			a.gen = gen
		}
	}
}

// WithInputs starts the Assembler from an existing InputSet instead of
// generating a new one.
func WithInputs(in InputSet) Option {
	return func(a *Assembler) {
		a.inputs = in
		a.inputsSet = true
	}
}

// NewAssembler returns an Assembler with secrets populated.
func NewAssembler(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		gen:    NewSecretGenerator(nil),
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if !a.inputsSet {
		in, err := NewInputSet(a.gen)
		if err != nil {
			return nil, err
		}
		a.inputs = in
	}

	a.logger.Debug("assembler ready", "inputs", a.inputs.Redacted())
	return a, nil
}

// Inputs returns the current InputSet.
func (a *Assembler) Inputs() InputSet {
	return a.inputs
}

// SetField updates one field.
func (a *Assembler) SetField(name, value string) error {
	in, err := a.inputs.SetField(name, value)
	if err != nil {
		return err
	}
	a.inputs = in
	a.logger.Trace("field updated", "field", name)
	return nil
}

// RegenerateSecrets replaces every generated secret.
func (a *Assembler) RegenerateSecrets() error {
	in, err := a.inputs.RegenerateSecrets(a.gen)
	if err != nil {
		return err
	}
	a.inputs = in
	a.logger.Info("secrets regenerated")
	return nil
}

// Produce renders one artifact for the current inputs.
func (a *Assembler) Produce(kind Kind) (string, error) {
	out, err := Produce(a.inputs, kind)
	if err != nil {
		return "", err
	}
	a.logger.Debug("artifact rendered", "kind", kind, "bytes", len(out))
	return out, nil
}

// Artifact is one rendered output.
type Artifact struct {
	Kind    Kind
	Content string
}

// ProduceAll renders every artifact kind in display order.
func (a *Assembler) ProduceAll() ([]Artifact, error) {
	out := make([]Artifact, 0, len(kindInfos))
	for _, ki := range kindInfos {
		content, err := a.Produce(ki.Kind)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", ki.Kind, err)
		}
		out = append(out, Artifact{Kind: ki.Kind, Content: content})
	}
	return out, nil
}
