//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/naga"
)

// ShaderSource returns the WGSL source of the rect pipeline.
func ShaderSource() string {
	return bordersShaderSource
}

// CompileShaderSPIRV compiles the rect shader to SPIR-V words, for hosts
// that build pipelines from SPIR-V instead of WGSL.
func CompileShaderSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(bordersShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile borders shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile borders shader: %d bytes is not whole words", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}
