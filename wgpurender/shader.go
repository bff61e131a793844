package wgpurender

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed shaders/skinning.wgsl
var skinningShaderTemplate string

// skinningShader returns the WGSL source sized for jointCount joints.
func skinningShader(jointCount int) string {
	return strings.ReplaceAll(skinningShaderTemplate, "JOINT_COUNT", strconv.Itoa(jointCount))
}
