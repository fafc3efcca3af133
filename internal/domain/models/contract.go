package models

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact is a compiled contract resolved from the build output
type Artifact struct {
	Name            string
	SourcePath      string // e.g. "src/Counter.sol"
	ArtifactPath    string // relative to the project root
	CompilerVersion string
	ABI             abi.ABI
	Bytecode        []byte
	BytecodeHash    common.Hash
}

// FullName returns the "path:Name" form that uniquely identifies the artifact
func (a *Artifact) FullName() string {
	return fmt.Sprintf("%s:%s", a.SourcePath, a.Name)
}

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// ArtifactFile is the on-disk Foundry compilation artifact
type ArtifactFile struct {
	ABI              json.RawMessage  `json:"abi"`
	Bytecode         BytecodeObject   `json:"bytecode"`
	DeployedBytecode BytecodeObject   `json:"deployedBytecode"`
	Metadata         ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Language string `json:"language"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}
