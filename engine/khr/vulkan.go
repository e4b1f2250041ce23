package khr

import (
	"fmt"
	"sort"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/glengine/engine/core"
)

// Vulkan resolves instance extensions through the Vulkan loader found by GLFW.
type Vulkan struct {
	available map[string]uint32
}

func NewVulkan() *Vulkan {
	return &Vulkan{
		available: make(map[string]uint32),
	}
}

func (v *Vulkan) Load(required []string) error {
	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return fmt.Errorf("GetInstanceProcAddress is nil: %w", core.ErrExtensionMissing)
	}
	vk.SetGetInstanceProcAddr(procAddr)

	if err := vk.Init(); err != nil {
		return fmt.Errorf("failed to initialize vk: %w", err)
	}

	var count uint32
	if res := vk.EnumerateInstanceExtensionProperties("", &count, nil); res != vk.Success {
		return fmt.Errorf("failed to count instance extensions: %w", vk.Error(res))
	}
	properties := make([]vk.ExtensionProperties, count)
	if res := vk.EnumerateInstanceExtensionProperties("", &count, properties); res != vk.Success {
		return fmt.Errorf("failed to enumerate instance extensions: %w", vk.Error(res))
	}

	available := make(map[string]uint32, count)
	for i := range properties {
		properties[i].Deref()
		name := extensionName(properties[i].ExtensionName[:])
		available[name] = properties[i].SpecVersion
		core.LogDebug("Available extension: `%s` (spec %d)", name, properties[i].SpecVersion)
	}
	v.available = available

	return checkRequired(required, v.IsSupported)
}

func (v *Vulkan) IsSupported(name string) bool {
	_, ok := v.available[name]
	return ok
}

func (v *Vulkan) Extensions() []string {
	names := make([]string, 0, len(v.available))
	for name := range v.available {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v *Vulkan) Shutdown() {
	v.available = make(map[string]uint32)
}

// extensionName trims the fixed size, zero terminated name buffer.
func extensionName(raw []byte) string {
	end := findFirstZero(raw)
	if end < 0 {
		return string(raw)
	}
	return string(raw[:end])
}

func findFirstZero(arr []byte) int {
	for i, b := range arr {
		if b == 0 {
			return i
		}
	}
	return -1
}
