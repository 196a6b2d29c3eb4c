// Package script reads layer programs written in YAML.
//
// A program lists command blocks, each addressed to one layer:
//
//	layers:
//	  - layer: 2
//	    commands:
//	      - load: bg/sky.s25
//	      - entries: [0, 4]
//	      - opacity: 0
//	      - animate: {duration: 1s, opacity: 1, easing: out-quad}
//	      - delay: 500ms
//	      - wait: redraw
//
// Every command sets exactly one key. JSON is accepted too.
package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/matt-g-everett/layertx/layer"
	"gopkg.in/yaml.v2"
)

var (
	// ErrEmptyCommand is returned for a command entry with no recognised key.
	ErrEmptyCommand = errors.New("empty command")
	// ErrAmbiguousCommand is returned for a command entry with several keys.
	ErrAmbiguousCommand = errors.New("ambiguous command")
)

// Program is a decoded layer program.
type Program struct {
	Blocks []Block
}

// Block is a run of commands for one layer.
type Block struct {
	Layer    int
	Commands []layer.Command
}

// Len returns the number of top level commands in the program.
func (p *Program) Len() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Commands)
	}
	return n
}

// Apply queues every block on its layer, in program order.
func (p *Program) Apply(s *layer.Set) error {
	for _, b := range p.Blocks {
		if err := s.Send(b.Layer, b.Commands...); err != nil {
			return err
		}
	}
	return nil
}

// Load reads and decodes a program file.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Decode parses a whole program.
func Decode(data []byte) (*Program, error) {
	var raw rawProgram
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, err
	}

	p := new(Program)
	for i, rb := range raw.Layers {
		b, err := rb.block()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		p.Blocks = append(p.Blocks, b)
	}
	return p, nil
}

// DecodeBlock parses a single block, {layer: n, commands: [...]}.
func DecodeBlock(data []byte) (Block, error) {
	var raw rawBlock
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return Block{}, err
	}
	return raw.block()
}

// DecodeCommands parses a bare command list.
func DecodeCommands(data []byte) ([]layer.Command, error) {
	var raw []rawCommand
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, err
	}
	return commands(raw)
}
